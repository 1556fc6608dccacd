package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pratik-Gohel/Viva-management/internal/models"
	"github.com/Pratik-Gohel/Viva-management/internal/store"
)

var testBranchCodes = map[string]int{
	"EC":    11,
	"IT":    16,
	"CE":    7,
	"MECH":  19,
	"CIVIL": 6,
	"ICT":   32,
}

func coverRow(branch, date, subject string, students int) store.EntryRow {
	return store.EntryRow{
		ExamEntry: models.ExamEntry{
			Branch:           branch,
			ExamDate:         date,
			Semester:         "6",
			SubjectCode:      subject,
			ExaminerType:     models.ExaminerExternal,
			ExaminerName:     "A. Shah",
			NumberOfStudents: students,
		},
	}
}

func TestCoverSheetSerialsFollowDateOrder(t *testing.T) {
	rows := []store.EntryRow{
		coverRow("IT", "2024-01-11", "3160714", 25),
		coverRow("CE", "2024-01-10", "3160712", 30),
	}

	out := CoverSheet(rows, testBranchCodes)

	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Serial)
	assert.Equal(t, "2024-01-10", out[0].ExamDate)
	assert.Equal(t, 2, out[1].Serial)
	assert.Equal(t, "2024-01-11", out[1].ExamDate)
}

func TestCoverSheetBranchCodes(t *testing.T) {
	out := CoverSheet([]store.EntryRow{
		coverRow("CE", "2024-01-10", "3160712", 30),
		coverRow("ICT", "2024-01-10", "3160713", 28),
		coverRow("TEXTILE", "2024-01-10", "3160715", 20),
	}, testBranchCodes)

	require.Len(t, out, 3)
	assert.Equal(t, 7, out[0].BranchCode)
	assert.Equal(t, 32, out[1].BranchCode)
	assert.Equal(t, 0, out[2].BranchCode, "unmapped branches fall back to 0")
}

func TestCoverSheetCarriesEntryFields(t *testing.T) {
	out := CoverSheet([]store.EntryRow{coverRow("IT", "2024-01-11", "3160714", 25)}, testBranchCodes)

	require.Len(t, out, 1)
	assert.Equal(t, "6", out[0].Semester)
	assert.Equal(t, "3160714", out[0].SubjectCode)
	assert.Equal(t, models.ExaminerExternal, out[0].ExaminerType)
	assert.Equal(t, "A. Shah", out[0].ExaminerName)
	assert.Equal(t, 25, out[0].NumberOfStudents)
}

func TestCoverSheetEmptyInput(t *testing.T) {
	out := CoverSheet(nil, testBranchCodes)
	assert.Empty(t, out)
}
