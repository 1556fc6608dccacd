package reports

import (
	"sort"
	"strings"

	"github.com/Pratik-Gohel/Viva-management/internal/models"
	"github.com/Pratik-Gohel/Viva-management/internal/store"
)

// dateSeparator joins the distinct exam dates of a grouped payment row.
// Consumers must check for it before parsing ExamDate as a single date.
const dateSeparator = ", "

// Constants are the fixed descriptive columns every payment row carries.
// They are deployment configuration, not derived data.
type Constants struct {
	FixedColumn string `toml:"fixed_column"`
	Location    string `toml:"location"`
	PaymentMode string `toml:"payment_mode"`
	Institution string `toml:"institution"`
}

// PaymentRow is one bank-transfer instruction line. External examiners get
// one row per entry; internal staff sharing (name, account) are merged with
// summed amounts and ExamDate holding the sorted, comma-joined date list.
type PaymentRow struct {
	Amount       float64             `json:"amount"`
	IFSCCode     string              `json:"ifscCode"`
	AccountNo    string              `json:"accountNo"`
	FixedColumn  string              `json:"fixedColumn"`
	ExaminerName string              `json:"examinerName"`
	Location     string              `json:"location"`
	PaymentMode  string              `json:"paymentMode"`
	Institution  string              `json:"institution"`
	ExamDate     string              `json:"examDate"`
	ExaminerType models.ExaminerType `json:"examinerType"`
}

// FirstDate returns the earliest date behind this row, whether ExamDate is
// a single date or a joined list.
func (r PaymentRow) FirstDate() string {
	if i := strings.Index(r.ExamDate, dateSeparator); i >= 0 {
		return r.ExamDate[:i]
	}
	return r.ExamDate
}

// Grouped reports whether this row aggregates more than one exam date.
func (r PaymentRow) Grouped() bool {
	return strings.Contains(r.ExamDate, dateSeparator)
}

type paymentGroup struct {
	name         string
	examinerType models.ExaminerType
	ifsc         string
	accountNo    string
	total        float64
	dates        map[string]struct{}
}

// PaymentSheet builds the bank-transfer rows and their grand total.
// External rows come first, then the grouped internal rows; each partition
// is ordered by its first exam date ascending.
func PaymentSheet(rows []store.EntryRow, consts Constants) ([]PaymentRow, float64) {
	external := []PaymentRow{}
	groups := map[string]*paymentGroup{}
	var groupOrder []string

	for _, r := range rows {
		if !r.ExaminerType.Internal() {
			external = append(external, PaymentRow{
				Amount:       r.BillAmount,
				IFSCCode:     r.IFSC(),
				AccountNo:    r.AccountNo(),
				FixedColumn:  consts.FixedColumn,
				ExaminerName: r.ExaminerName,
				Location:     consts.Location,
				PaymentMode:  consts.PaymentMode,
				Institution:  consts.Institution,
				ExamDate:     r.ExamDate,
				ExaminerType: r.ExaminerType,
			})
			continue
		}

		key := r.ExaminerName + "\x00" + r.AccountNo()
		g, ok := groups[key]
		if !ok {
			g = &paymentGroup{
				name:         r.ExaminerName,
				examinerType: r.ExaminerType,
				ifsc:         r.IFSC(),
				accountNo:    r.AccountNo(),
				dates:        map[string]struct{}{},
			}
			groups[key] = g
			groupOrder = append(groupOrder, key)
		}
		g.total += r.BillAmount
		g.dates[r.ExamDate] = struct{}{}
	}

	internal := make([]PaymentRow, 0, len(groupOrder))
	for _, key := range groupOrder {
		g := groups[key]

		dates := make([]string, 0, len(g.dates))
		for d := range g.dates {
			dates = append(dates, d)
		}
		sort.Strings(dates)

		internal = append(internal, PaymentRow{
			Amount:       g.total,
			IFSCCode:     g.ifsc,
			AccountNo:    g.accountNo,
			FixedColumn:  consts.FixedColumn,
			ExaminerName: g.name,
			Location:     consts.Location,
			PaymentMode:  consts.PaymentMode,
			Institution:  consts.Institution,
			ExamDate:     strings.Join(dates, dateSeparator),
			ExaminerType: g.examinerType,
		})
	}

	sort.SliceStable(external, func(i, j int) bool {
		return external[i].FirstDate() < external[j].FirstDate()
	})
	sort.SliceStable(internal, func(i, j int) bool {
		return internal[i].FirstDate() < internal[j].FirstDate()
	})

	out := append(external, internal...)

	var total float64
	for _, r := range out {
		total += r.Amount
	}
	return out, total
}
