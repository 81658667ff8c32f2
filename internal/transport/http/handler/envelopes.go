package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/onboarding-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

// TokenEnvelope wraps admin login responses.
type TokenEnvelope struct {
	Bearer  string `json:"Bearer,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PaginatedServicesEnvelope wraps paginated catalog list responses.
type PaginatedServicesEnvelope struct {
	Data       []domain.Service `json:"data"`
	NextCursor string           `json:"next_cursor,omitempty"`
	Error      string           `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps domain sentinels to HTTP statuses plus a stable
// machine-readable kind. Anything unmapped is a 500.
func httpError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	kind := "internal"
	switch {
	case errors.Is(err, domain.ErrDuplicateAccount):
		status, kind = http.StatusConflict, "duplicate_account"
	case errors.Is(err, domain.ErrNoActiveChallenge):
		status, kind = http.StatusGone, "no_active_challenge"
	case errors.Is(err, domain.ErrInvalidCode):
		status, kind = http.StatusUnauthorized, "invalid_code"
	case errors.Is(err, domain.ErrVerificationPartial):
		status, kind = http.StatusBadGateway, "verification_partial"
	case errors.Is(err, domain.ErrProvider):
		status, kind = http.StatusBadGateway, "provider_error"
	case errors.Is(err, domain.ErrStore):
		status, kind = http.StatusServiceUnavailable, "store_error"
	case errors.Is(err, domain.ErrBadRequest):
		status, kind = http.StatusBadRequest, "bad_request"
	case errors.Is(err, domain.ErrUnauthorized):
		status, kind = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		status, kind = http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrConflict):
		status, kind = http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	}
	writeJSON(w, status, MessageEnvelope{Error: err.Error(), Kind: kind})
}
