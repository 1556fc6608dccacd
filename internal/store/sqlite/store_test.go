// internal/store/sqlite/store_test.go
package sqlite

import (
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pratik-Gohel/Viva-management/internal/models"
	"github.com/Pratik-Gohel/Viva-management/internal/store"
)

// setupTestDB creates an in-memory SQLite database with the real schema
func setupTestDB(t *testing.T) (*SQLiteStore, func()) {
	s, err := NewSQLiteStore(":memory:", "../../../migrations")
	require.NoError(t, err, "Failed to create store")

	cleanup := func() {
		err := s.Close()
		require.NoError(t, err, "Failed to close database")
	}

	return s, cleanup
}

func TestMain(m *testing.M) {
	log.Println("Starting SQLite store tests...")
	code := m.Run()
	log.Println("Finished SQLite store tests")
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

func TestCreateBankAccountIsCreateOrGet(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := s.CreateBankAccount(testAccount("A. Shah", "123456789012"))
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	t.Run("same owner and account resolves to existing row", func(t *testing.T) {
		dup := testAccount("A. Shah", "123456789012")
		dup.BankName = "Bank of Baroda"

		got, err := s.CreateBankAccount(dup)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, "State Bank of India", got.BankName, "existing details win over the resubmission")
	})

	t.Run("same account number under another owner is a new row", func(t *testing.T) {
		got, err := s.CreateBankAccount(testAccount("B. Patel", "123456789012"))
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, got.ID)
	})
}

func TestCreateEntryAndList(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	account, err := s.CreateBankAccount(testAccount("A. Shah", "123456789012"))
	require.NoError(t, err)

	entry := testEntry("WINTER 2024", "2024-01-10", "CE", "A. Shah", models.ExaminerExternal, account.ID)

	t.Run("create entry", func(t *testing.T) {
		err := s.CreateEntry(entry)
		require.NoError(t, err)
		assert.NotZero(t, entry.ID)
		assert.Equal(t, "NO", entry.DocumentAttached)
	})

	t.Run("list joins bank details", func(t *testing.T) {
		rows, err := s.ListEntries(store.EntryFilter{ExamName: "WINTER 2024"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "123456789012", rows[0].AccountNo())
		assert.Equal(t, "SBIN0000042", rows[0].IFSC())
	})

	t.Run("no match is empty slice, not error", func(t *testing.T) {
		rows, err := s.ListEntries(store.EntryFilter{ExamName: "SUMMER 2019"})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestListEntriesFilterSentinels(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	account, err := s.CreateBankAccount(testAccount("A. Shah", "123456789012"))
	require.NoError(t, err)

	require.NoError(t, s.CreateEntry(testEntry("WINTER 2024", "2024-01-10", "CE", "A. Shah", models.ExaminerExternal, account.ID)))
	require.NoError(t, s.CreateEntry(testEntry("WINTER 2024", "2024-01-11", "IT", "B. Patel", models.ExaminerInternal, account.ID)))
	require.NoError(t, s.CreateEntry(testEntry("SUMMER 2024", "2024-05-02", "CE", "A. Shah", models.ExaminerExternal, account.ID)))

	cases := []struct {
		name   string
		filter store.EntryFilter
		want   int
	}{
		{"empty filter matches everything", store.EntryFilter{}, 3},
		{"uppercase ALL is a wildcard", store.EntryFilter{ExamName: "ALL", Branch: "ALL"}, 3},
		{"lowercase all is the same wildcard", store.EntryFilter{ExamName: "all"}, 3},
		{"exam name narrows", store.EntryFilter{ExamName: "WINTER 2024"}, 2},
		{"filters combine with AND", store.EntryFilter{ExamName: "WINTER 2024", Branch: "CE"}, 1},
		{"examiner type narrows", store.EntryFilter{ExaminerType: "Internal"}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := s.ListEntries(tc.filter)
			require.NoError(t, err)
			assert.Len(t, rows, tc.want)
		})
	}

	t.Run("rows come back date ascending", func(t *testing.T) {
		rows, err := s.ListEntries(store.EntryFilter{})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "2024-01-10", rows[0].ExamDate)
		assert.Equal(t, "2024-01-11", rows[1].ExamDate)
		assert.Equal(t, "2024-05-02", rows[2].ExamDate)
	})
}

func TestDistinctFilterCascade(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	account, err := s.CreateBankAccount(testAccount("A. Shah", "123456789012"))
	require.NoError(t, err)

	require.NoError(t, s.CreateEntry(testEntry("WINTER 2024", "2024-01-10", "CE", "A. Shah", models.ExaminerExternal, account.ID)))
	require.NoError(t, s.CreateEntry(testEntry("WINTER 2024", "2024-01-10", "CE", "C. Mehta", models.ExaminerInternal, account.ID)))
	require.NoError(t, s.CreateEntry(testEntry("WINTER 2024", "2024-01-11", "IT", "B. Patel", models.ExaminerInternal, account.ID)))
	require.NoError(t, s.CreateEntry(testEntry("SUMMER 2024", "2024-05-02", "MECH", "A. Shah", models.ExaminerExternal, account.ID)))

	t.Run("exam names are distinct and sorted", func(t *testing.T) {
		names, err := s.DistinctExamNames()
		require.NoError(t, err)
		assert.Equal(t, []string{"SUMMER 2024", "WINTER 2024"}, names)
	})

	t.Run("branches narrow by exam", func(t *testing.T) {
		branches, err := s.DistinctBranches("WINTER 2024")
		require.NoError(t, err)
		assert.Equal(t, []string{"CE", "IT"}, branches)
	})

	t.Run("dates narrow by exam and branch", func(t *testing.T) {
		dates, err := s.DistinctDates("WINTER 2024", "CE")
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-01-10"}, dates)
	})

	t.Run("ALL branch widens the date list", func(t *testing.T) {
		dates, err := s.DistinctDates("WINTER 2024", "ALL")
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-01-10", "2024-01-11"}, dates)
	})

	t.Run("examiner types narrow by all three", func(t *testing.T) {
		types, err := s.DistinctExaminerTypes("WINTER 2024", "CE", "2024-01-10")
		require.NoError(t, err)
		assert.Equal(t, []string{"External", "Internal"}, types)
	})
}

func TestGetOrCreateExaminer(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := s.GetOrCreateExaminer("A. Shah", "ABCDE1234F", "9876543210")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	t.Run("same name reuses the row", func(t *testing.T) {
		again, err := s.GetOrCreateExaminer("A. Shah", "", "")
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, "ABCDE1234F", again.PANCard, "blank resubmission keeps known PAN")
	})

	t.Run("fresh details refresh the profile", func(t *testing.T) {
		again, err := s.GetOrCreateExaminer("A. Shah", "FGHIJ5678K", "9123456780")
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, "FGHIJ5678K", again.PANCard)
		assert.Equal(t, "9123456780", again.MobileNo)
	})
}

func TestLatestEntryByExaminer(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	account, err := s.CreateBankAccount(testAccount("A. Shah", "123456789012"))
	require.NoError(t, err)

	older := testEntry("WINTER 2024", "2024-01-10", "CE", "A. Shah", models.ExaminerExternal, account.ID)
	require.NoError(t, s.CreateEntry(older))
	newer := testEntry("SUMMER 2024", "2024-05-02", "IT", "A. Shah", models.ExaminerExternal, account.ID)
	newer.MobileNo = "9123456780"
	require.NoError(t, s.CreateEntry(newer))

	t.Run("returns the most recent entry", func(t *testing.T) {
		got, err := s.LatestEntryByExaminer("A. Shah")
		require.NoError(t, err)
		assert.Equal(t, newer.ID, got.ID)
		assert.Equal(t, "9123456780", got.MobileNo)
	})

	t.Run("unknown examiner is ErrNotFound", func(t *testing.T) {
		_, err := s.LatestEntryByExaminer("nobody")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUpdateBankAccountCopyOnWrite(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	account, err := s.CreateBankAccount(testAccount("A. Shah", "123456789012"))
	require.NoError(t, err)

	t.Run("unreferenced account updates in place", func(t *testing.T) {
		edit := testAccount("A. Shah", "123456789012")
		edit.BankName = "Bank of Baroda"

		got, err := s.UpdateBankAccount(account.ID, edit)
		require.NoError(t, err)
		assert.Equal(t, account.ID, got.ID)
		assert.Equal(t, "Bank of Baroda", got.BankName)
	})

	t.Run("referenced account edit becomes a new row", func(t *testing.T) {
		require.NoError(t, s.CreateEntry(testEntry("WINTER 2024", "2024-01-10", "CE", "A. Shah", models.ExaminerExternal, account.ID)))

		edit := testAccount("A. Shah", "999888777666")
		got, err := s.UpdateBankAccount(account.ID, edit)
		require.NoError(t, err)
		assert.NotEqual(t, account.ID, got.ID)

		// the paid-with details survive untouched
		original, err := s.GetBankAccount(account.ID)
		require.NoError(t, err)
		assert.Equal(t, "123456789012", original.AccountNo)
	})
}

func TestDeleteBankAccountDegradesEntries(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	account, err := s.CreateBankAccount(testAccount("A. Shah", "123456789012"))
	require.NoError(t, err)
	require.NoError(t, s.CreateEntry(testEntry("WINTER 2024", "2024-01-10", "CE", "A. Shah", models.ExaminerExternal, account.ID)))

	require.NoError(t, s.DeleteBankAccount(account.ID))

	t.Run("account is gone", func(t *testing.T) {
		_, err := s.GetBankAccount(account.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("entry survives with empty bank details", func(t *testing.T) {
		rows, err := s.ListEntries(store.EntryFilter{})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, account.ID, rows[0].BankAccountID)
		assert.Equal(t, "", rows[0].AccountNo())
		assert.Equal(t, "", rows[0].IFSC())
	})
}

func TestListExaminerHistory(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := s.CreateBankAccount(testAccount("A. Shah", "123456789012"))
	require.NoError(t, err)
	second, err := s.CreateBankAccount(testAccount("A. Shah", "999888777666"))
	require.NoError(t, err)

	require.NoError(t, s.CreateEntry(testEntry("WINTER 2024", "2024-01-10", "CE", "A. Shah", models.ExaminerExternal, first.ID)))
	require.NoError(t, s.CreateEntry(testEntry("SUMMER 2024", "2024-05-02", "CE", "A. Shah", models.ExaminerExternal, second.ID)))
	require.NoError(t, s.CreateEntry(testEntry("WINTER 2024", "2024-01-10", "IT", "B. Patel", models.ExaminerExternal, first.ID)))

	rows, err := s.ListExaminerHistory("CE", models.ExaminerExternal)
	require.NoError(t, err)
	require.Len(t, rows, 2, "one row per (examiner, account) pairing")
	for _, row := range rows {
		assert.Equal(t, "A. Shah", row.ExaminerName)
	}
}
