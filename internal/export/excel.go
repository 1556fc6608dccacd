package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Pratik-Gohel/Viva-management/internal/models"
	"github.com/Pratik-Gohel/Viva-management/internal/reports"
	"github.com/Pratik-Gohel/Viva-management/internal/store"
)

// Column describes one spreadsheet column: its header, a value lookup by
// row index, and the display width in characters.
type Column struct {
	Header string
	Width  float64
	Value  func(i int) interface{}
}

// Workbook is a single-sheet xlsx ready to be streamed to a client or a
// file. Rows are materialized lazily through the column value funcs.
type Workbook struct {
	sheet   string
	columns []Column
	rows    int
}

func NewWorkbook(sheet string, columns []Column, rows int) *Workbook {
	return &Workbook{sheet: sheet, columns: columns, rows: rows}
}

func (w *Workbook) WriteTo(out io.Writer) (int64, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(w.sheet)
	if err != nil {
		return 0, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return 0, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for c, col := range w.columns {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return 0, fmt.Errorf("failed to resolve column name: %w", err)
		}
		if err := f.SetCellValue(w.sheet, name+"1", col.Header); err != nil {
			return 0, fmt.Errorf("failed to write header: %w", err)
		}
		if col.Width > 0 {
			if err := f.SetColWidth(w.sheet, name, name, col.Width); err != nil {
				return 0, fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	for r := 0; r < w.rows; r++ {
		for c, col := range w.columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return 0, fmt.Errorf("failed to resolve cell name: %w", err)
			}
			if err := f.SetCellValue(w.sheet, cell, col.Value(r)); err != nil {
				return 0, fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	return f.WriteTo(out)
}

// reformatDate rewrites a stored day-granularity date into the given
// layout. Values that do not parse (like the joined date lists on grouped
// payment rows) pass through untouched.
func reformatDate(iso, layout string) string {
	t, err := time.Parse(models.DateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format(layout)
}

// DailySheet lays out the register clerks print each evening. The last two
// columns stay blank for handwritten ticks.
func DailySheet(rows []store.EntryRow, sheet string) *Workbook {
	return NewWorkbook(sheet, []Column{
		{Header: "Sr. No.", Width: 8, Value: func(i int) interface{} { return i + 1 }},
		{Header: "Branch", Width: 10, Value: func(i int) interface{} { return rows[i].Branch }},
		{Header: "Sem", Width: 6, Value: func(i int) interface{} { return rows[i].Semester }},
		{Header: "Examiner Type", Width: 15, Value: func(i int) interface{} { return string(rows[i].ExaminerType) }},
		{Header: "Date", Width: 12, Value: func(i int) interface{} { return reformatDate(rows[i].ExamDate, "01-02-2006") }},
		{Header: "Subject Code", Width: 12, Value: func(i int) interface{} { return rows[i].SubjectCode }},
		{Header: "Person Name", Width: 25, Value: func(i int) interface{} { return rows[i].ExaminerName }},
		{Header: "Amount of TA", Width: 12, Value: func(i int) interface{} { return rows[i].TAAmount }},
		{Header: "Amount of DA", Width: 12, Value: func(i int) interface{} { return rows[i].DAAmount }},
		{Header: "Amount of Honorarium", Width: 12, Value: func(i int) interface{} { return rows[i].Honorarium }},
		{Header: "Total Amount", Width: 12, Value: func(i int) interface{} { return rows[i].BillAmount }},
		{Header: "Original Bill/RC Book with True Copy Attached", Width: 20, Value: func(i int) interface{} { return "" }},
		{Header: "Remark", Width: 15, Value: func(i int) interface{} { return "" }},
	}, len(rows))
}

// CoverSheet lays out the paperwork stapled to each answer-script bundle.
// Every bundle carries exactly one marksheet cover and one remuneration
// bill.
func CoverSheet(rows []reports.CoverRow, sheet string) *Workbook {
	return NewWorkbook(sheet, []Column{
		{Header: "Semester", Width: 10, Value: func(i int) interface{} { return rows[i].Semester }},
		{Header: "branchCode", Width: 10, Value: func(i int) interface{} { return rows[i].BranchCode }},
		{Header: "Subject Code", Width: 12, Value: func(i int) interface{} { return rows[i].SubjectCode }},
		{Header: "Date", Width: 12, Value: func(i int) interface{} { return reformatDate(rows[i].ExamDate, "02-01-2006") }},
		{Header: "Examiner Type", Width: 15, Value: func(i int) interface{} { return string(rows[i].ExaminerType) }},
		{Header: "Examiner Name", Width: 25, Value: func(i int) interface{} { return rows[i].ExaminerName }},
		{Header: "No. of Students", Width: 12, Value: func(i int) interface{} { return rows[i].NumberOfStudents }},
		{Header: "No. of Marksheet Cover", Width: 18, Value: func(i int) interface{} { return "1" }},
		{Header: "No. of Remuneration Bill", Width: 18, Value: func(i int) interface{} { return "1" }},
	}, len(rows))
}

// PaymentSheet lays out the bank upload file in the column order the bank
// portal expects.
func PaymentSheet(rows []reports.PaymentRow, sheet string) *Workbook {
	return NewWorkbook(sheet, []Column{
		{Header: "Amount", Width: 12, Value: func(i int) interface{} { return rows[i].Amount }},
		{Header: "IFSC Number", Width: 15, Value: func(i int) interface{} { return rows[i].IFSCCode }},
		{Header: "Account Number", Width: 20, Value: func(i int) interface{} { return rows[i].AccountNo }},
		{Header: "Fixed Column 1", Width: 8, Value: func(i int) interface{} { return rows[i].FixedColumn }},
		{Header: "Name of the examiner", Width: 30, Value: func(i int) interface{} { return rows[i].ExaminerName }},
		{Header: "Fixed Column 2", Width: 12, Value: func(i int) interface{} { return rows[i].Location }},
		{Header: "Fixed Column 3", Width: 8, Value: func(i int) interface{} { return rows[i].PaymentMode }},
		{Header: "Fixed Column 4", Width: 8, Value: func(i int) interface{} { return rows[i].Institution }},
	}, len(rows))
}

// Download filenames match what the office already archives.
func DailySheetFilename(now time.Time) string {
	return fmt.Sprintf("viva_daily_sheet_%s.xlsx", now.Format("2006-01-02"))
}

func CoverSheetFilename(time.Time) string {
	return "viva-cover-sheet.xlsx"
}

func PaymentSheetFilename(now time.Time) string {
	return fmt.Sprintf("Viva_Payment_Details_%s.xlsx", now.Format("01-02-2006"))
}
