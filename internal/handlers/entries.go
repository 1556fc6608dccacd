package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/Pratik-Gohel/Viva-management/internal/app"
	"github.com/Pratik-Gohel/Viva-management/internal/metrics"
)

type EntryHandler struct {
	service *app.Service
}

func NewEntryHandler(service *app.Service) *EntryHandler {
	return &EntryHandler{
		service: service,
	}
}

// HandleCreateEntry records one remuneration entry from the data-entry
// form. Inline bank details resolve create-or-get before the entry lands.
func (h *EntryHandler) HandleCreateEntry(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusCreated
	defer func() { observeRequest(r, start, status) }()

	if err := h.service.Authorize(r); err != nil {
		logger.Error.Printf("Auth failed: %v", err)
		status = http.StatusUnauthorized
		writeError(w, status, "unauthorized")
		return
	}

	var submission app.EntrySubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		status = http.StatusBadRequest
		writeError(w, status, "invalid request body")
		return
	}

	entry, err := h.service.SubmitEntry(&submission)
	if err != nil {
		logger.Error.Printf("Failed to submit entry: %v", err)
		var message string
		status, message = serviceErrorStatus(err)
		writeError(w, status, message)
		return
	}

	metrics.EntriesTotal.WithLabelValues(
		entry.ExamName,
		entry.Branch,
		string(entry.ExaminerType),
	).Inc()
	metrics.BillAmountHistogram.WithLabelValues(string(entry.ExaminerType)).Observe(entry.BillAmount)

	writeJSON(w, http.StatusCreated, entry)
}

// HandleListEntries returns the filtered raw entries, date ascending.
func (h *EntryHandler) HandleListEntries(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Store.ListEntries(filterFromQuery(r))
	if err != nil {
		logger.Error.Printf("Failed to list entries: %v", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
