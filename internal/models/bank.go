package models

import (
	"fmt"
	"regexp"
	"time"
)

var ifscRegex = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

// BankAccount rows are unique per (examiner_name, account_no); inserting a
// duplicate resolves to the existing row instead of erroring.
type BankAccount struct {
	ID           int64     `db:"id" json:"id"`
	ExaminerName string    `db:"examiner_name" json:"examinerName" validate:"required"`
	PANCard      string    `db:"pan_card" json:"panCard,omitempty"`
	BankName     string    `db:"bank_name" json:"bankName" validate:"required"`
	BranchName   string    `db:"branch_name" json:"branchName" validate:"required"`
	BranchCode   string    `db:"branch_code" json:"branchCode" validate:"required"`
	AccountNo    string    `db:"account_no" json:"accountNo" validate:"required,min=9,max=18"`
	IFSCCode     string    `db:"ifsc_code" json:"ifscCode" validate:"required"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

func (b *BankAccount) Validate() error {
	if err := validate.Struct(b); err != nil {
		return err
	}
	if !ifscRegex.MatchString(b.IFSCCode) {
		return fmt.Errorf("ifscCode: invalid IFSC code format")
	}
	if b.PANCard != "" && !panRegex.MatchString(b.PANCard) {
		return fmt.Errorf("panCard: invalid PAN card format")
	}
	return nil
}

// DisplayName is the label the data-entry dropdown shows for this account.
func (b *BankAccount) DisplayName() string {
	return fmt.Sprintf("%s - %s - %s", b.ExaminerName, b.BankName, b.AccountNo)
}
