package store

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Pratik-Gohel/Viva-management/internal/models"
)

type PaymentStore interface {
	Close() error
	ApplyMigrations(dir string) error

	CreateEntry(entry *models.ExamEntry) error
	ListEntries(filter EntryFilter) ([]EntryRow, error)
	LatestEntryByExaminer(name string) (*EntryRow, error)

	GetOrCreateExaminer(name, panCard, mobileNo string) (*models.Examiner, error)
	ListExaminerHistory(branch string, examinerType models.ExaminerType) ([]ExaminerHistoryRow, error)

	CreateBankAccount(account *models.BankAccount) (*models.BankAccount, error)
	GetBankAccount(id int64) (*models.BankAccount, error)
	ListBankAccounts() ([]models.BankAccount, error)
	UpdateBankAccount(id int64, account *models.BankAccount) (*models.BankAccount, error)
	DeleteBankAccount(id int64) error

	DistinctExamNames() ([]string, error)
	DistinctBranches(examName string) ([]string, error)
	DistinctDates(examName, branch string) ([]string, error)
	DistinctExaminerTypes(examName, branch, date string) ([]string, error)
}

// BaseStore provides the SQL shared between the Postgres and SQLite
// implementations. Dialect differences are injected: Converter rewrites
// ?-placeholders, InsertID runs a named insert and reports the new row id,
// IsUniqueViolation classifies duplicate-key errors.
type BaseStore struct {
	DB                *sqlx.DB
	Converter         func(string) string
	InsertID          func(query string, arg interface{}) (int64, error)
	IsUniqueViolation func(error) bool
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// ApplyMigrations applies SQL migrations from a directory, translating dialect if needed
func (s *BaseStore) ApplyMigrations(dir string, translateSQL func(string) string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		content, err := os.ReadFile(fmt.Sprintf("%s/%s", dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}

		stmts := string(content)
		if translateSQL != nil {
			stmts = translateSQL(stmts)
		}

		if _, err := s.DB.Exec(stmts); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Name(), err)
		}
	}

	return nil
}

const entryInsert = `
	INSERT INTO exam_entries (
		exam_name, exam_date, branch, semester, subject_code,
		examiner_type, examiner_name, examiner_id, mobile_no, pan_card,
		document_attached, number_of_students,
		ta_amount, da_amount, honorarium, bill_amount,
		bank_account_id, created_at, updated_at
	) VALUES (
		:exam_name, :exam_date, :branch, :semester, :subject_code,
		:examiner_type, :examiner_name, :examiner_id, :mobile_no, :pan_card,
		:document_attached, :number_of_students,
		:ta_amount, :da_amount, :honorarium, :bill_amount,
		:bank_account_id, :created_at, :updated_at
	)`

func (s *BaseStore) CreateEntry(entry *models.ExamEntry) error {
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	if entry.DocumentAttached == "" {
		entry.DocumentAttached = "NO"
	}

	id, err := s.InsertID(entryInsert, entry)
	if err != nil {
		return fmt.Errorf("failed to create exam entry: %w", err)
	}
	entry.ID = id
	return nil
}

// entryColumns selects the full entry plus its bank account fields. The
// join is LEFT so deleted accounts surface as NULLs instead of dropping
// the row from reports.
const entryColumns = `
	e.id, e.exam_name, e.exam_date, e.branch, e.semester, e.subject_code,
	e.examiner_type, e.examiner_name, e.examiner_id, e.mobile_no, e.pan_card,
	e.document_attached, e.number_of_students,
	e.ta_amount, e.da_amount, e.honorarium, e.bill_amount,
	e.bank_account_id, e.created_at, e.updated_at,
	b.bank_name AS bank_name,
	b.branch_name AS bank_branch,
	b.account_no AS bank_account_no,
	b.ifsc_code AS bank_ifsc`

func (f EntryFilter) where() (string, []interface{}) {
	var conds []string
	var args []interface{}

	if !isAll(f.ExamName) {
		conds = append(conds, "e.exam_name = ?")
		args = append(args, f.ExamName)
	}
	if !isAll(f.Branch) {
		conds = append(conds, "e.branch = ?")
		args = append(args, f.Branch)
	}
	if !isAll(f.ExamDate) {
		conds = append(conds, "e.exam_date = ?")
		args = append(args, f.ExamDate)
	}
	if !isAll(f.ExaminerType) {
		conds = append(conds, "e.examiner_type = ?")
		args = append(args, f.ExaminerType)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *BaseStore) ListEntries(filter EntryFilter) ([]EntryRow, error) {
	where, args := filter.where()
	query := s.Converter(`
		SELECT ` + entryColumns + `
		FROM exam_entries e
		LEFT JOIN bank_accounts b ON b.id = e.bank_account_id` +
		where + `
		ORDER BY e.exam_date ASC, e.id ASC
	`)

	entries := []EntryRow{}
	if err := s.DB.Select(&entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list exam entries: %w", err)
	}
	return entries, nil
}

func (s *BaseStore) LatestEntryByExaminer(name string) (*EntryRow, error) {
	query := s.Converter(`
		SELECT ` + entryColumns + `
		FROM exam_entries e
		LEFT JOIN bank_accounts b ON b.id = e.bank_account_id
		WHERE e.examiner_name = ?
		ORDER BY e.updated_at DESC, e.id DESC
		LIMIT 1
	`)

	var row EntryRow
	err := s.DB.Get(&row, query, name)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest entry for examiner: %w", err)
	}
	return &row, nil
}

func (s *BaseStore) GetOrCreateExaminer(name, panCard, mobileNo string) (*models.Examiner, error) {
	existing, err := s.examinerByName(name)
	if err != nil && err != ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return s.refreshExaminer(existing, panCard, mobileNo)
	}

	now := time.Now().UTC()
	examiner := &models.Examiner{
		Name:      name,
		PANCard:   panCard,
		MobileNo:  mobileNo,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.InsertID(`
		INSERT INTO examiners (name, pan_card, mobile_no, created_at, updated_at)
		VALUES (:name, :pan_card, :mobile_no, :created_at, :updated_at)
	`, examiner)
	if err != nil {
		// Lost a create race: reuse whichever row won.
		if s.IsUniqueViolation(err) {
			return s.examinerByName(name)
		}
		return nil, fmt.Errorf("failed to create examiner: %w", err)
	}
	examiner.ID = id
	return examiner, nil
}

func (s *BaseStore) examinerByName(name string) (*models.Examiner, error) {
	var examiner models.Examiner
	query := s.Converter(`
		SELECT id, name, pan_card, mobile_no, created_at, updated_at
		FROM examiners
		WHERE name = ?
	`)

	err := s.DB.Get(&examiner, query, name)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get examiner: %w", err)
	}
	return &examiner, nil
}

// refreshExaminer keeps the profile current with the latest submitted
// PAN/mobile without erasing known values with blanks.
func (s *BaseStore) refreshExaminer(examiner *models.Examiner, panCard, mobileNo string) (*models.Examiner, error) {
	changed := false
	if panCard != "" && panCard != examiner.PANCard {
		examiner.PANCard = panCard
		changed = true
	}
	if mobileNo != "" && mobileNo != examiner.MobileNo {
		examiner.MobileNo = mobileNo
		changed = true
	}
	if !changed {
		return examiner, nil
	}

	examiner.UpdatedAt = time.Now().UTC()
	_, err := s.DB.NamedExec(`
		UPDATE examiners
		SET pan_card = :pan_card, mobile_no = :mobile_no, updated_at = :updated_at
		WHERE id = :id
	`, examiner)
	if err != nil {
		return nil, fmt.Errorf("failed to update examiner: %w", err)
	}
	return examiner, nil
}

func (s *BaseStore) ListExaminerHistory(branch string, examinerType models.ExaminerType) ([]ExaminerHistoryRow, error) {
	query := s.Converter(`
		SELECT
			e.examiner_name,
			e.examiner_type,
			e.pan_card,
			b.id AS account_id,
			b.bank_name AS bank_name,
			b.branch_name AS bank_branch,
			b.branch_code AS branch_code,
			b.account_no AS account_no,
			b.ifsc_code AS ifsc_code
		FROM exam_entries e
		LEFT JOIN bank_accounts b ON b.id = e.bank_account_id
		WHERE e.branch = ?
		AND e.examiner_type = ?
		GROUP BY e.examiner_name, e.examiner_type, e.pan_card,
			b.id, b.bank_name, b.branch_name, b.branch_code, b.account_no, b.ifsc_code
		ORDER BY MAX(e.updated_at) DESC, e.examiner_name ASC
	`)

	rows := []ExaminerHistoryRow{}
	if err := s.DB.Select(&rows, query, branch, examinerType); err != nil {
		return nil, fmt.Errorf("failed to list examiner history: %w", err)
	}
	return rows, nil
}

const bankAccountInsert = `
	INSERT INTO bank_accounts (
		examiner_name, pan_card, bank_name, branch_name, branch_code,
		account_no, ifsc_code, created_at, updated_at
	) VALUES (
		:examiner_name, :pan_card, :bank_name, :branch_name, :branch_code,
		:account_no, :ifsc_code, :created_at, :updated_at
	)`

// CreateBankAccount is create-or-get: a duplicate (examiner_name, account_no)
// pair resolves to the stored row, including under concurrent creation.
func (s *BaseStore) CreateBankAccount(account *models.BankAccount) (*models.BankAccount, error) {
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	id, err := s.InsertID(bankAccountInsert, account)
	if err != nil {
		if s.IsUniqueViolation(err) {
			return s.bankAccountByOwner(account.ExaminerName, account.AccountNo)
		}
		return nil, fmt.Errorf("failed to create bank account: %w", err)
	}
	account.ID = id
	return account, nil
}

func (s *BaseStore) bankAccountByOwner(examinerName, accountNo string) (*models.BankAccount, error) {
	var account models.BankAccount
	query := s.Converter(`
		SELECT id, examiner_name, pan_card, bank_name, branch_name, branch_code,
			account_no, ifsc_code, created_at, updated_at
		FROM bank_accounts
		WHERE examiner_name = ?
		AND account_no = ?
	`)

	err := s.DB.Get(&account, query, examinerName, accountNo)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bank account: %w", err)
	}
	return &account, nil
}

func (s *BaseStore) GetBankAccount(id int64) (*models.BankAccount, error) {
	var account models.BankAccount
	query := s.Converter(`
		SELECT id, examiner_name, pan_card, bank_name, branch_name, branch_code,
			account_no, ifsc_code, created_at, updated_at
		FROM bank_accounts
		WHERE id = ?
	`)

	err := s.DB.Get(&account, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bank account: %w", err)
	}
	return &account, nil
}

func (s *BaseStore) ListBankAccounts() ([]models.BankAccount, error) {
	accounts := []models.BankAccount{}
	err := s.DB.Select(&accounts, `
		SELECT id, examiner_name, pan_card, bank_name, branch_name, branch_code,
			account_no, ifsc_code, created_at, updated_at
		FROM bank_accounts
		ORDER BY examiner_name, bank_name, account_no
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	return accounts, nil
}

func (s *BaseStore) accountReferenced(id int64) (bool, error) {
	var count int
	query := s.Converter(`SELECT COUNT(*) FROM exam_entries WHERE bank_account_id = ?`)
	if err := s.DB.Get(&count, query, id); err != nil {
		return false, fmt.Errorf("failed to count account references: %w", err)
	}
	return count > 0, nil
}

// UpdateBankAccount mutates an account in place only while nothing
// references it. Once an exam entry points at the row, edits become new
// accounts so historical payment sheets keep the details they were paid
// with.
func (s *BaseStore) UpdateBankAccount(id int64, account *models.BankAccount) (*models.BankAccount, error) {
	existing, err := s.GetBankAccount(id)
	if err != nil {
		return nil, err
	}

	if account.ExaminerName == "" {
		account.ExaminerName = existing.ExaminerName
	}

	referenced, err := s.accountReferenced(id)
	if err != nil {
		return nil, err
	}
	if referenced {
		return s.CreateBankAccount(account)
	}

	account.ID = id
	account.CreatedAt = existing.CreatedAt
	account.UpdatedAt = time.Now().UTC()
	_, err = s.DB.NamedExec(`
		UPDATE bank_accounts
		SET examiner_name = :examiner_name,
			pan_card = :pan_card,
			bank_name = :bank_name,
			branch_name = :branch_name,
			branch_code = :branch_code,
			account_no = :account_no,
			ifsc_code = :ifsc_code,
			updated_at = :updated_at
		WHERE id = :id
	`, account)
	if err != nil {
		return nil, fmt.Errorf("failed to update bank account: %w", err)
	}
	return account, nil
}

// DeleteBankAccount is unconditional; entries referencing the row keep
// their id and degrade to empty bank fields in reports.
func (s *BaseStore) DeleteBankAccount(id int64) error {
	query := s.Converter(`DELETE FROM bank_accounts WHERE id = ?`)
	if _, err := s.DB.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete bank account: %w", err)
	}
	return nil
}

func (s *BaseStore) DistinctExamNames() ([]string, error) {
	names := []string{}
	err := s.DB.Select(&names, `
		SELECT DISTINCT exam_name
		FROM exam_entries
		ORDER BY exam_name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list exam names: %w", err)
	}
	return names, nil
}

func (s *BaseStore) DistinctBranches(examName string) ([]string, error) {
	branches := []string{}
	query := s.Converter(`
		SELECT DISTINCT branch
		FROM exam_entries
		WHERE exam_name = ?
		ORDER BY branch ASC
	`)
	if err := s.DB.Select(&branches, query, examName); err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}

func (s *BaseStore) DistinctDates(examName, branch string) ([]string, error) {
	query := `
		SELECT DISTINCT exam_date
		FROM exam_entries
		WHERE exam_name = ?`
	args := []interface{}{examName}
	if !isAll(branch) {
		query += `
		AND branch = ?`
		args = append(args, branch)
	}
	query += `
		ORDER BY exam_date ASC`

	dates := []string{}
	if err := s.DB.Select(&dates, s.Converter(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list exam dates: %w", err)
	}
	return dates, nil
}

func (s *BaseStore) DistinctExaminerTypes(examName, branch, date string) ([]string, error) {
	query := `
		SELECT DISTINCT examiner_type
		FROM exam_entries
		WHERE exam_name = ?`
	args := []interface{}{examName}
	if !isAll(branch) {
		query += `
		AND branch = ?`
		args = append(args, branch)
	}
	if !isAll(date) {
		query += `
		AND exam_date = ?`
		args = append(args, date)
	}
	query += `
		ORDER BY examiner_type ASC`

	types := []string{}
	if err := s.DB.Select(&types, s.Converter(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list examiner types: %w", err)
	}
	return types, nil
}
