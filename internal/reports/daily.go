// Package reports shapes filtered exam entries into the three report
// row sequences: daily sheet, cover sheet and payment sheet. All builders
// are pure; a row with missing bank details degrades to empty fields
// instead of failing the batch.
package reports

import (
	"sort"

	"github.com/Pratik-Gohel/Viva-management/internal/store"
)

// DailySheet orders rows by exam date ascending, then by examiner type
// rank (External, Internal, Lab Assistant, Peon; unknown types last).
// An empty input yields an empty sheet, not an error.
func DailySheet(rows []store.EntryRow) []store.EntryRow {
	out := make([]store.EntryRow, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ExamDate != out[j].ExamDate {
			return out[i].ExamDate < out[j].ExamDate
		}
		return out[i].ExaminerType.Rank() < out[j].ExaminerType.Rank()
	})

	return out
}
