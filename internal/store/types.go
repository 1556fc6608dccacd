package store

import (
	"errors"
	"strings"

	"github.com/Pratik-Gohel/Viva-management/internal/models"
)

type DatabaseType string

const (
	DBTypePostgres DatabaseType = "postgres"
	DBTypeSQLite   DatabaseType = "sqlite"
)

var ErrNotFound = errors.New("not found")

// FilterAll is the sentinel meaning "do not narrow by this field". The
// legacy client sent both spellings, so matching is case-insensitive.
const FilterAll = "ALL"

func isAll(v string) bool {
	return v == "" || strings.EqualFold(v, FilterAll)
}

// EntryFilter narrows report and listing queries. Empty or ALL/all fields
// are skipped; set fields are combined with AND.
type EntryFilter struct {
	ExamName     string
	Branch       string
	ExamDate     string
	ExaminerType string
}

// EntryRow is an exam entry joined with its bank account. The bank fields
// are pointers because the referenced account may have been deleted; reports
// degrade such rows to empty bank details rather than failing.
type EntryRow struct {
	models.ExamEntry
	BankName      *string `db:"bank_name"`
	BankBranch    *string `db:"bank_branch"`
	BankAccountNo *string `db:"bank_account_no"`
	BankIFSC      *string `db:"bank_ifsc"`
}

// AccountNo returns the joined account number, or "" for a dangling ref.
func (r *EntryRow) AccountNo() string {
	if r.BankAccountNo == nil {
		return ""
	}
	return *r.BankAccountNo
}

// IFSC returns the joined IFSC code, or "" for a dangling ref.
func (r *EntryRow) IFSC() string {
	if r.BankIFSC == nil {
		return ""
	}
	return *r.BankIFSC
}

// ExaminerHistoryRow is one historical (examiner, account) pairing used by
// the data-entry autofill lookup. The bank columns are nullable for entries
// whose account was deleted. Grouping by examiner name happens in the
// service layer.
type ExaminerHistoryRow struct {
	ExaminerName string              `db:"examiner_name"`
	ExaminerType models.ExaminerType `db:"examiner_type"`
	PANCard      string              `db:"pan_card"`
	AccountID    *int64              `db:"account_id"`
	BankName     *string             `db:"bank_name"`
	BankBranch   *string             `db:"bank_branch"`
	BranchCode   *string             `db:"branch_code"`
	AccountNo    *string             `db:"account_no"`
	IFSCCode     *string             `db:"ifsc_code"`
}
