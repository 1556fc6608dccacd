package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Pratik-Gohel/Viva-management/internal/models"
	"github.com/Pratik-Gohel/Viva-management/internal/reports"
	"github.com/Pratik-Gohel/Viva-management/internal/store"
)

func renderRows(t *testing.T, wb *Workbook, sheet string) [][]string {
	t.Helper()

	var buf bytes.Buffer
	_, err := wb.WriteTo(&buf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestDailySheetLayout(t *testing.T) {
	accountNo := "123456789012"
	ifsc := "SBIN0000042"
	entries := []store.EntryRow{
		{
			ExamEntry: models.ExamEntry{
				Branch:       "CE",
				Semester:     "6",
				ExaminerType: models.ExaminerExternal,
				ExamDate:     "2024-01-10",
				SubjectCode:  "3160714",
				ExaminerName: "A. Shah",
				TAAmount:     100,
				DAAmount:     150,
				Honorarium:   250,
				BillAmount:   500,
			},
			BankAccountNo: &accountNo,
			BankIFSC:      &ifsc,
		},
	}

	rows := renderRows(t, DailySheet(entries, "Viva Daily Sheet"), "Viva Daily Sheet")

	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"Sr. No.", "Branch", "Sem", "Examiner Type", "Date", "Subject Code",
		"Person Name", "Amount of TA", "Amount of DA", "Amount of Honorarium",
		"Total Amount", "Original Bill/RC Book with True Copy Attached", "Remark",
	}, rows[0])

	// trailing blank columns collapse when reading back
	data := rows[1]
	require.GreaterOrEqual(t, len(data), 11)
	assert.Equal(t, "1", data[0])
	assert.Equal(t, "CE", data[1])
	assert.Equal(t, "01-10-2024", data[4], "dates render mm-dd-yyyy")
	assert.Equal(t, "A. Shah", data[6])
	assert.Equal(t, "500", data[10])
}

func TestCoverSheetLayout(t *testing.T) {
	rows := renderRows(t, CoverSheet([]reports.CoverRow{
		{
			Serial:           1,
			ExamDate:         "2024-01-10",
			BranchCode:       7,
			Semester:         "6",
			SubjectCode:      "3160714",
			ExaminerType:     models.ExaminerExternal,
			ExaminerName:     "A. Shah",
			NumberOfStudents: 30,
		},
	}, "Viva Cover Sheet"), "Viva Cover Sheet")

	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"Semester", "branchCode", "Subject Code", "Date", "Examiner Type",
		"Examiner Name", "No. of Students", "No. of Marksheet Cover",
		"No. of Remuneration Bill",
	}, rows[0])

	data := rows[1]
	assert.Equal(t, "7", data[1])
	assert.Equal(t, "10-01-2024", data[3], "dates render dd-mm-yyyy")
	assert.Equal(t, "1", data[7])
	assert.Equal(t, "1", data[8])
}

func TestPaymentSheetLayout(t *testing.T) {
	rows := renderRows(t, PaymentSheet([]reports.PaymentRow{
		{
			Amount:       1200,
			IFSCCode:     "SBIN0000042",
			AccountNo:    "123456789012",
			FixedColumn:  "10",
			ExaminerName: "A. Shah",
			Location:     "Bhavnagar",
			PaymentMode:  "NEFT",
			Institution:  "GEC",
			ExamDate:     "2024-01-10, 2024-01-11",
			ExaminerType: models.ExaminerInternal,
		},
	}, "Viva Payment Details"), "Viva Payment Details")

	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"Amount", "IFSC Number", "Account Number", "Fixed Column 1",
		"Name of the examiner", "Fixed Column 2", "Fixed Column 3", "Fixed Column 4",
	}, rows[0])

	data := rows[1]
	assert.Equal(t, "1200", data[0])
	assert.Equal(t, "123456789012", data[2])
	assert.Equal(t, "NEFT", data[6])
}

func TestExportFilenames(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "viva_daily_sheet_2024-01-15.xlsx", DailySheetFilename(now))
	assert.Equal(t, "viva-cover-sheet.xlsx", CoverSheetFilename(now))
	assert.Equal(t, "Viva_Payment_Details_01-15-2024.xlsx", PaymentSheetFilename(now))
}
