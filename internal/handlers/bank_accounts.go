package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/Pratik-Gohel/Viva-management/internal/app"
	"github.com/Pratik-Gohel/Viva-management/internal/models"
)

type BankAccountHandler struct {
	service *app.Service
}

func NewBankAccountHandler(service *app.Service) *BankAccountHandler {
	return &BankAccountHandler{
		service: service,
	}
}

func accountID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// HandleCreate is create-or-get: posting details that match an existing
// (examiner, account number) pair returns the stored row.
func (h *BankAccountHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Authorize(r); err != nil {
		logger.Error.Printf("Auth failed: %v", err)
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var account models.BankAccount
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := account.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.service.Store.CreateBankAccount(&account)
	if err != nil {
		logger.Error.Printf("Failed to create bank account: %v", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *BankAccountHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.Store.ListBankAccounts()
	if err != nil {
		logger.Error.Printf("Failed to list bank accounts: %v", err)
		writeServiceError(w, err)
		return
	}

	type option struct {
		models.BankAccount
		DisplayName string `json:"displayName"`
	}
	out := make([]option, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, option{BankAccount: a, DisplayName: a.DisplayName()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *BankAccountHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	account, err := h.service.Store.GetBankAccount(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// HandleUpdate edits an account in place while it is unreferenced; once
// entries point at it the edit materializes as a fresh account so old
// payment sheets stay truthful.
func (h *BankAccountHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Authorize(r); err != nil {
		logger.Error.Printf("Auth failed: %v", err)
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := accountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	var account models.BankAccount
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := account.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.service.Store.UpdateBankAccount(id, &account)
	if err != nil {
		logger.Error.Printf("Failed to update bank account %d: %v", id, err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *BankAccountHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Authorize(r); err != nil {
		logger.Error.Printf("Auth failed: %v", err)
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := accountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	if err := h.service.Store.DeleteBankAccount(id); err != nil {
		logger.Error.Printf("Failed to delete bank account %d: %v", id, err)
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
