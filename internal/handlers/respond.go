package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/Pratik-Gohel/Viva-management/internal/app"
	"github.com/Pratik-Gohel/Viva-management/internal/metrics"
	"github.com/Pratik-Gohel/Viva-management/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// serviceErrorStatus maps service failures onto HTTP statuses: validation
// problems are the caller's fault, missing rows are 404, the rest is ours.
func serviceErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, app.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not found"
	default:
		logger.Error.Printf("Internal error: %v", err)
		return http.StatusInternalServerError, "internal server error"
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	status, message := serviceErrorStatus(err)
	writeError(w, status, message)
}

func observeRequest(r *http.Request, start time.Time, status int) {
	metrics.APIRequestDuration.WithLabelValues(
		r.URL.Path,
		r.Method,
		strconv.Itoa(status),
	).Observe(time.Since(start).Seconds())
}

// filterFromQuery reads the four cascading filters. Absent and ALL/all
// parameters both mean "do not narrow".
func filterFromQuery(r *http.Request) store.EntryFilter {
	q := r.URL.Query()
	return store.EntryFilter{
		ExamName:     q.Get("examName"),
		Branch:       q.Get("branch"),
		ExamDate:     q.Get("examDate"),
		ExaminerType: q.Get("examinerType"),
	}
}
