package reports

import (
	"sort"

	"github.com/Pratik-Gohel/Viva-management/internal/models"
	"github.com/Pratik-Gohel/Viva-management/internal/store"
)

// CoverRow is the reduced projection used for the paperwork accompanying
// answer-script bundles. The numeric branch code is resolved at render
// time from the configured table and never stored.
type CoverRow struct {
	Serial           int                 `json:"serial"`
	ExamDate         string              `json:"examDate"`
	BranchCode       int                 `json:"branchCode"`
	Semester         string              `json:"semester"`
	SubjectCode      string              `json:"subjectCode"`
	ExaminerType     models.ExaminerType `json:"examinerType"`
	ExaminerName     string              `json:"examinerName"`
	NumberOfStudents int                 `json:"numberOfStudents"`
}

// CoverSheet projects rows ordered by exam date ascending. Branches
// missing from the code table map to 0.
func CoverSheet(rows []store.EntryRow, branchCodes map[string]int) []CoverRow {
	sorted := make([]store.EntryRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ExamDate < sorted[j].ExamDate
	})

	out := make([]CoverRow, 0, len(sorted))
	for i, r := range sorted {
		out = append(out, CoverRow{
			Serial:           i + 1,
			ExamDate:         r.ExamDate,
			BranchCode:       branchCodes[r.Branch],
			Semester:         r.Semester,
			SubjectCode:      r.SubjectCode,
			ExaminerType:     r.ExaminerType,
			ExaminerName:     r.ExaminerName,
			NumberOfStudents: r.NumberOfStudents,
		})
	}
	return out
}
