package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/Pratik-Gohel/Viva-management/internal/app"
)

// TokenHandler is the admin surface for issuing and revoking clerk API
// tokens. Only mounted when auth is enabled.
type TokenHandler struct {
	service *app.Service
}

func NewTokenHandler(service *app.Service) *TokenHandler {
	return &TokenHandler{
		service: service,
	}
}

func (h *TokenHandler) authorizeAdmin(r *http.Request) bool {
	adminToken := h.service.Config.Auth.AdminToken
	if adminToken == "" {
		return false
	}

	header := r.Header.Get(h.service.Config.Auth.TokenHeader)
	token := strings.TrimPrefix(header, "Bearer ")
	return subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) == 1
}

func (h *TokenHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeAdmin(r) {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	clerk := r.PathValue("clerk")
	if clerk == "" {
		writeError(w, http.StatusBadRequest, "clerk id is required")
		return
	}

	info, created, err := h.service.Tokens.FetchOrCreateClerkToken(r.Context(), clerk)
	if err != nil {
		logger.Error.Printf("Failed to issue token for %s: %v", clerk, err)
		writeServiceError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, info)
}

func (h *TokenHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeAdmin(r) {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	clerk := r.PathValue("clerk")
	if clerk == "" {
		writeError(w, http.StatusBadRequest, "clerk id is required")
		return
	}

	if err := h.service.Tokens.RevokeClerkToken(r.Context(), clerk); err != nil {
		logger.Error.Printf("Failed to revoke token for %s: %v", clerk, err)
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
