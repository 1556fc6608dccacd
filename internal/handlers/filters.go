package handlers

import (
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/Pratik-Gohel/Viva-management/internal/app"
)

// FilterHandler serves the cascading dropdowns on the report screens. Each
// level narrows by everything chosen above it.
type FilterHandler struct {
	service *app.Service
}

func NewFilterHandler(service *app.Service) *FilterHandler {
	return &FilterHandler{
		service: service,
	}
}

func (h *FilterHandler) HandleExamNames(w http.ResponseWriter, r *http.Request) {
	latestFirst := r.URL.Query().Get("latest") == "true"

	names, err := h.service.ExamNames(latestFirst)
	if err != nil {
		logger.Error.Printf("Failed to list exam names: %v", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (h *FilterHandler) HandleBranches(w http.ResponseWriter, r *http.Request) {
	examName := r.URL.Query().Get("examName")
	if examName == "" {
		writeError(w, http.StatusBadRequest, "examName is required")
		return
	}

	branches, err := h.service.Store.DistinctBranches(examName)
	if err != nil {
		logger.Error.Printf("Failed to list branches: %v", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, branches)
}

func (h *FilterHandler) HandleDates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	examName := q.Get("examName")
	if examName == "" {
		writeError(w, http.StatusBadRequest, "examName is required")
		return
	}

	dates, err := h.service.Store.DistinctDates(examName, q.Get("branch"))
	if err != nil {
		logger.Error.Printf("Failed to list dates: %v", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dates)
}

func (h *FilterHandler) HandleExaminerTypes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	examName := q.Get("examName")
	if examName == "" {
		writeError(w, http.StatusBadRequest, "examName is required")
		return
	}

	types, err := h.service.Store.DistinctExaminerTypes(examName, q.Get("branch"), q.Get("examDate"))
	if err != nil {
		logger.Error.Printf("Failed to list examiner types: %v", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}
