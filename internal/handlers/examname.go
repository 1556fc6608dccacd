package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/Pratik-Gohel/Viva-management/internal/app"
)

// ExamNameHandler serves the shared "current exam name" the entry form
// pre-fills for every clerk.
type ExamNameHandler struct {
	service *app.Service
}

func NewExamNameHandler(service *app.Service) *ExamNameHandler {
	return &ExamNameHandler{
		service: service,
	}
}

func (h *ExamNameHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	name, err := h.service.ExamName.Get()
	if err != nil {
		logger.Error.Printf("Failed to read current exam name: %v", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"examName": name})
}

func (h *ExamNameHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Authorize(r); err != nil {
		logger.Error.Printf("Auth failed: %v", err)
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var body struct {
		ExamName string `json:"examName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(body.ExamName)
	if name == "" {
		writeError(w, http.StatusBadRequest, "examName is required")
		return
	}

	if err := h.service.ExamName.Set(name); err != nil {
		logger.Error.Printf("Failed to store current exam name: %v", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"examName": name})
}
