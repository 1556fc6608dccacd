package app

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/Pratik-Gohel/Viva-management/internal/models"
	"github.com/Pratik-Gohel/Viva-management/internal/reports"
	"github.com/Pratik-Gohel/Viva-management/internal/store"
)

var (
	// ErrValidation wraps any malformed-input failure; handlers map it to 400.
	ErrValidation = errors.New("validation failed")
	// ErrExamNameRequired means a cascading lookup or report was asked for
	// without its concrete upstream exam name.
	ErrExamNameRequired = fmt.Errorf("%w: exam name is required", ErrValidation)
	// ErrBankRefInvalid means an entry referenced a bank account that does
	// not exist.
	ErrBankRefInvalid = fmt.Errorf("%w: invalid bank account reference", ErrValidation)
)

type Service struct {
	Config   *Config
	Store    store.PaymentStore
	Auth     *Auth
	Tokens   *TokenManager
	ExamName *ExamNameState
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	st, err := NewStore(config.Database.DSN, config.Database.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	auth, err := NewAuth(config)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to init auth: %w", err)
	}

	service := &Service{
		Config:   config,
		Store:    st,
		Auth:     auth,
		ExamName: NewExamNameState(config.Exam.StateFile),
	}
	if config.Server.EnableAuth {
		service.Tokens = NewTokenManager(auth.Redis(), config.Auth.TokenKeyTemplate)
	}
	return service, nil
}

// Authorize gates mutating endpoints when auth is enabled. Clerk identity
// and bearer token both come from headers.
func (s *Service) Authorize(r *http.Request) error {
	if !s.Config.Server.EnableAuth {
		return nil
	}

	authHeader := r.Header.Get(s.Auth.tokenHeader)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return fmt.Errorf("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	clerk := r.Header.Get(s.Auth.clerkHeader)
	if clerk == "" {
		return fmt.Errorf("missing clerk id header")
	}

	return s.Auth.ValidateToken(r.Context(), clerk, token)
}

// EntrySubmission is one data-entry form submit. Either BankAccountID
// points at an existing account, or Bank carries fresh details that are
// resolved create-or-get before the entry is stored.
type EntrySubmission struct {
	models.ExamEntry
	Bank *models.BankAccount `json:"bankDetails,omitempty"`
}

func (s *Service) SubmitEntry(sub *EntrySubmission) (*models.ExamEntry, error) {
	entry := sub.ExamEntry

	if entry.BankAccountID == 0 && sub.Bank != nil {
		bank := *sub.Bank
		if bank.ExaminerName == "" {
			bank.ExaminerName = entry.ExaminerName
		}
		if err := bank.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		saved, err := s.Store.CreateBankAccount(&bank)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve bank details: %w", err)
		}
		entry.BankAccountID = saved.ID
	}

	if entry.BillAmount == 0 {
		entry.BillAmount = entry.TAAmount + entry.DAAmount + entry.Honorarium
	}

	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if _, err := s.Store.GetBankAccount(entry.BankAccountID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBankRefInvalid
		}
		return nil, err
	}

	examiner, err := s.Store.GetOrCreateExaminer(entry.ExaminerName, entry.PANCard, entry.MobileNo)
	if err != nil {
		return nil, err
	}
	entry.ExaminerID = examiner.ID

	if err := s.Store.CreateEntry(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ExamNames lists the distinct exam names ascending; latestFirst flips the
// order for the data-entry screen, which wants the newest session on top.
func (s *Service) ExamNames(latestFirst bool) ([]string, error) {
	names, err := s.Store.DistinctExamNames()
	if err != nil {
		return nil, err
	}
	if latestFirst {
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
	}
	return names, nil
}

func (s *Service) DailySheet(filter store.EntryFilter) ([]store.EntryRow, error) {
	rows, err := s.Store.ListEntries(filter)
	if err != nil {
		return nil, err
	}
	return reports.DailySheet(rows), nil
}

// CoverSheet requires a concrete exam name; the other three filters accept
// ALL as an explicit wildcard.
func (s *Service) CoverSheet(filter store.EntryFilter) ([]reports.CoverRow, error) {
	if filter.ExamName == "" || strings.EqualFold(filter.ExamName, store.FilterAll) {
		return nil, ErrExamNameRequired
	}
	rows, err := s.Store.ListEntries(filter)
	if err != nil {
		return nil, err
	}
	return reports.CoverSheet(rows, s.Config.BranchCodes), nil
}

func (s *Service) PaymentSheet(filter store.EntryFilter) ([]reports.PaymentRow, float64, error) {
	rows, err := s.Store.ListEntries(filter)
	if err != nil {
		return nil, 0, err
	}
	paymentRows, total := reports.PaymentSheet(rows, s.Config.Payment)
	return paymentRows, total, nil
}

// ExaminerChoice is one autofill option for the entry form: a known
// examiner plus every bank account they have been paid into under the
// given branch and type.
type ExaminerChoice struct {
	ExaminerName string               `json:"examinerName"`
	ExaminerType models.ExaminerType  `json:"examinerType"`
	PANCard      string               `json:"panCard,omitempty"`
	Accounts     []models.BankAccount `json:"bankAccounts"`
}

func (s *Service) ExaminerDirectory(branch string, examinerType models.ExaminerType) ([]ExaminerChoice, error) {
	history, err := s.Store.ListExaminerHistory(branch, examinerType)
	if err != nil {
		return nil, err
	}

	byName := map[string]int{}
	choices := []ExaminerChoice{}
	for _, row := range history {
		idx, seen := byName[row.ExaminerName]
		if !seen {
			choices = append(choices, ExaminerChoice{
				ExaminerName: row.ExaminerName,
				ExaminerType: row.ExaminerType,
				PANCard:      row.PANCard,
				Accounts:     []models.BankAccount{},
			})
			idx = len(choices) - 1
			byName[row.ExaminerName] = idx
		}
		if choices[idx].PANCard == "" && row.PANCard != "" {
			choices[idx].PANCard = row.PANCard
		}
		if row.AccountID == nil {
			continue
		}
		if hasAccount(choices[idx].Accounts, *row.AccountID) {
			continue
		}
		choices[idx].Accounts = append(choices[idx].Accounts, models.BankAccount{
			ID:           *row.AccountID,
			ExaminerName: row.ExaminerName,
			BankName:     deref(row.BankName),
			BranchName:   deref(row.BankBranch),
			BranchCode:   deref(row.BranchCode),
			AccountNo:    deref(row.AccountNo),
			IFSCCode:     deref(row.IFSCCode),
		})
	}

	sort.SliceStable(choices, func(i, j int) bool {
		return choices[i].ExaminerName < choices[j].ExaminerName
	})
	return choices, nil
}

func hasAccount(accounts []models.BankAccount, id int64) bool {
	for _, a := range accounts {
		if a.ID == id {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ExaminerProfile is the most recent known details for a named examiner,
// used to pre-fill a fresh submission. Bank is nil when the last-used
// account has been deleted since.
type ExaminerProfile struct {
	ExaminerName  string              `json:"examinerName"`
	PANCard       string              `json:"panCard,omitempty"`
	MobileNo      string              `json:"mobileNo"`
	BankAccountID int64               `json:"bankAccountId"`
	Bank          *models.BankAccount `json:"bankDetails,omitempty"`
}

func (s *Service) ExaminerProfile(name string) (*ExaminerProfile, error) {
	latest, err := s.Store.LatestEntryByExaminer(name)
	if err != nil {
		return nil, err
	}

	profile := &ExaminerProfile{
		ExaminerName:  latest.ExaminerName,
		PANCard:       latest.PANCard,
		MobileNo:      latest.MobileNo,
		BankAccountID: latest.BankAccountID,
	}

	bank, err := s.Store.GetBankAccount(latest.BankAccountID)
	if err == nil {
		profile.Bank = bank
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return profile, nil
}

func (s *Service) Close() error {
	var errs []error

	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if err := s.Auth.Close(); err != nil {
		errs = append(errs, fmt.Errorf("auth: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}
