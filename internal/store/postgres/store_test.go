package postgres

import (
	"context"
	"flag"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Pratik-Gohel/Viva-management/internal/models"
	"github.com/Pratik-Gohel/Viva-management/internal/store"
)

// setupTestDB spins up a throwaway Postgres and applies the real migrations
func setupTestDB(t *testing.T) (*PostgresStore, func()) {
	ctx := context.Background()

	postgres, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
		}),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	require.NoError(t, err)

	dsn, err := postgres.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := NewPostgresStore(dsn, "../../../migrations")
	require.NoError(t, err, "Failed to create store")

	cleanup := func() {
		s.Close()
		postgres.Terminate(ctx)
	}

	return s, cleanup
}

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		log.Println("Skipping Postgres integration tests. Use -short=false to run them.")
		os.Exit(0)
	}
	log.Println("Starting Postgres store tests...")
	code := m.Run()
	log.Println("Finished Postgres store tests")
	os.Exit(code)
}

func testAccount(name, accountNo string) *models.BankAccount {
	return &models.BankAccount{
		ExaminerName: name,
		PANCard:      "ABCDE1234F",
		BankName:     "State Bank of India",
		BranchName:   "Bhavnagar Main",
		BranchCode:   "0042",
		AccountNo:    accountNo,
		IFSCCode:     "SBIN0000042",
	}
}

func testEntry(examName, date, branch, examinerName string, examinerType models.ExaminerType, accountID int64) *models.ExamEntry {
	return &models.ExamEntry{
		ExamName:         examName,
		ExamDate:         date,
		Branch:           branch,
		Semester:         "6",
		SubjectCode:      "3160714",
		ExaminerType:     examinerType,
		ExaminerName:     examinerName,
		MobileNo:         "9876543210",
		PANCard:          "ABCDE1234F",
		NumberOfStudents: 30,
		TAAmount:         100,
		DAAmount:         150,
		Honorarium:       250,
		BillAmount:       500,
		BankAccountID:    accountID,
	}
}

func TestEntryRoundTrip(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	account, err := s.CreateBankAccount(testAccount("A. Shah", "123456789012"))
	require.NoError(t, err)
	require.NotZero(t, account.ID, "RETURNING id must populate the row id")

	entry := testEntry("WINTER 2024", "2024-01-10", "CE", "A. Shah", models.ExaminerExternal, account.ID)

	t.Run("create entry", func(t *testing.T) {
		err := s.CreateEntry(entry)
		require.NoError(t, err)
		assert.NotZero(t, entry.ID)
	})

	t.Run("list with joined bank details", func(t *testing.T) {
		rows, err := s.ListEntries(store.EntryFilter{ExamName: "WINTER 2024", Branch: "CE"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, entry.ID, rows[0].ID)
		assert.Equal(t, "123456789012", rows[0].AccountNo())
	})

	t.Run("latest entry by examiner", func(t *testing.T) {
		got, err := s.LatestEntryByExaminer("A. Shah")
		require.NoError(t, err)
		assert.Equal(t, entry.ID, got.ID)
	})
}

func TestBankAccountUniqueViolationResolves(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := s.CreateBankAccount(testAccount("A. Shah", "123456789012"))
	require.NoError(t, err)

	// exercises the pq 23505 classification path
	got, err := s.CreateBankAccount(testAccount("A. Shah", "123456789012"))
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestExaminerCreateOrGet(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := s.GetOrCreateExaminer("A. Shah", "ABCDE1234F", "9876543210")
	require.NoError(t, err)

	again, err := s.GetOrCreateExaminer("A. Shah", "", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "ABCDE1234F", again.PANCard)
}

func TestDistinctQueriesUsePlaceholderConversion(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	account, err := s.CreateBankAccount(testAccount("A. Shah", "123456789012"))
	require.NoError(t, err)

	require.NoError(t, s.CreateEntry(testEntry("WINTER 2024", "2024-01-10", "CE", "A. Shah", models.ExaminerExternal, account.ID)))
	require.NoError(t, s.CreateEntry(testEntry("WINTER 2024", "2024-01-11", "IT", "B. Patel", models.ExaminerInternal, account.ID)))

	branches, err := s.DistinctBranches("WINTER 2024")
	require.NoError(t, err)
	assert.Equal(t, []string{"CE", "IT"}, branches)

	dates, err := s.DistinctDates("WINTER 2024", "ALL")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-10", "2024-01-11"}, dates)

	types, err := s.DistinctExaminerTypes("WINTER 2024", "IT", "2024-01-11")
	require.NoError(t, err)
	assert.Equal(t, []string{"Internal"}, types)
}
