package models

import (
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	panRegex    = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	mobileRegex = regexp.MustCompile(`^[0-9]{10}$`)

	validate = validator.New()
)

type ExaminerType string

const (
	ExaminerExternal     ExaminerType = "External"
	ExaminerInternal     ExaminerType = "Internal"
	ExaminerLabAssistant ExaminerType = "Lab Assistant"
	ExaminerPeon         ExaminerType = "Peon"
)

// Rank gives the daily-sheet ordering for examiner types. Unknown types
// sort after every known one.
func (t ExaminerType) Rank() int {
	switch t {
	case ExaminerExternal:
		return 1
	case ExaminerInternal:
		return 2
	case ExaminerLabAssistant:
		return 3
	case ExaminerPeon:
		return 4
	default:
		return 5
	}
}

// Internal reports whether payments for this type are grouped per payee
// on the payment sheet. External examiners are paid per line item.
func (t ExaminerType) Internal() bool {
	switch t {
	case ExaminerInternal, ExaminerLabAssistant, ExaminerPeon:
		return true
	default:
		return false
	}
}

// DateLayout is the day-granularity format exam dates are stored in.
// Lexical order of this layout matches chronological order.
const DateLayout = "2006-01-02"

type ExamEntry struct {
	ID               int64        `db:"id" json:"id"`
	ExamName         string       `db:"exam_name" json:"examName" validate:"required"`
	ExamDate         string       `db:"exam_date" json:"examDate" validate:"required,datetime=2006-01-02"`
	Branch           string       `db:"branch" json:"branch" validate:"required"`
	Semester         string       `db:"semester" json:"semester" validate:"required"`
	SubjectCode      string       `db:"subject_code" json:"subjectCode" validate:"required"`
	ExaminerType     ExaminerType `db:"examiner_type" json:"examinerType" validate:"required,oneof=External Internal 'Lab Assistant' Peon"`
	ExaminerName     string       `db:"examiner_name" json:"examinerName" validate:"required"`
	ExaminerID       int64        `db:"examiner_id" json:"-"`
	MobileNo         string       `db:"mobile_no" json:"mobileNo" validate:"required"`
	PANCard          string       `db:"pan_card" json:"panCard,omitempty"`
	DocumentAttached string       `db:"document_attached" json:"documentAttached" validate:"omitempty,oneof=YES NO"`
	NumberOfStudents int          `db:"number_of_students" json:"numberOfStudents" validate:"min=0"`
	TAAmount         float64      `db:"ta_amount" json:"taAmount" validate:"min=0"`
	DAAmount         float64      `db:"da_amount" json:"daAmount" validate:"min=0"`
	Honorarium       float64      `db:"honorarium" json:"honorarium" validate:"min=0"`
	BillAmount       float64      `db:"bill_amount" json:"billAmount" validate:"min=0"`
	BankAccountID    int64        `db:"bank_account_id" json:"bankAccountId" validate:"required"`
	CreatedAt        time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time    `db:"updated_at" json:"updatedAt"`
}

func (e *ExamEntry) Validate() error {
	if err := validate.Struct(e); err != nil {
		return err
	}
	if !mobileRegex.MatchString(e.MobileNo) {
		return fmt.Errorf("mobileNo: must be exactly 10 digits")
	}
	if e.PANCard != "" && !panRegex.MatchString(e.PANCard) {
		return fmt.Errorf("panCard: invalid PAN card format")
	}
	return nil
}
