package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/processor"
	"github.com/mauv0809/club-ladder/internal/ranking"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// respondError maps domain errors to status codes. Validation errors are
// returned with their field messages.
func respondError(w http.ResponseWriter, err error) {
	var verr *processor.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusUnprocessableEntity, verr)
		return
	}
	status := statusFor(err)
	msg := err.Error()
	switch {
	case errors.Is(err, club.ErrGroupNotFound):
		msg = "Group not found."
	case errors.Is(err, club.ErrPlayerNotFound):
		msg = "Player not found."
	case status == http.StatusInternalServerError:
		log.Error("Request failed", "error", err)
		msg = "Internal server error."
	}
	respondJSON(w, status, messageResponse{Message: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, club.ErrGroupNotFound), errors.Is(err, club.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, ranking.ErrTransitionInProgress),
		errors.Is(err, club.ErrDuplicateLevel),
		errors.Is(err, club.ErrDuplicateMatch):
		return http.StatusConflict
	case errors.Is(err, ranking.ErrSameSides),
		errors.Is(err, ranking.ErrWinnerNotASide),
		errors.Is(err, ranking.ErrInvalidStatus),
		errors.Is(err, club.ErrPlayerOutsideGroup):
		return http.StatusUnprocessableEntity
	case errors.Is(err, processor.ErrImportNotConfigured):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// decodeJSON reads the request body into v and answers 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Warn("Invalid request body", "error", err)
		respondJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid JSON body."})
		return false
	}
	return true
}
