package handlers

import (
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/Pratik-Gohel/Viva-management/internal/app"
	"github.com/Pratik-Gohel/Viva-management/internal/models"
)

type ExaminerHandler struct {
	service *app.Service
}

func NewExaminerHandler(service *app.Service) *ExaminerHandler {
	return &ExaminerHandler{
		service: service,
	}
}

// HandleDirectory lists known examiners for a branch and type, each with
// every bank account they have been paid into. Feeds the entry-form
// autofill dropdown.
func (h *ExaminerHandler) HandleDirectory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	branch := q.Get("branch")
	examinerType := q.Get("type")
	if branch == "" || examinerType == "" {
		writeError(w, http.StatusBadRequest, "branch and type are required")
		return
	}

	choices, err := h.service.ExaminerDirectory(branch, models.ExaminerType(examinerType))
	if err != nil {
		logger.Error.Printf("Failed to list examiners: %v", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, choices)
}

// HandleProfile returns the latest known details for one examiner.
func (h *ExaminerHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "examiner name is required")
		return
	}

	profile, err := h.service.ExaminerProfile(name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
