package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"campusevents/internal/domain"
	"campusevents/internal/service/impl"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps domain failures onto the HTTP taxonomy: validation 400,
// authorization 401/403, not-found 404, conflict 409, rate-limit 429.
// Anything unmapped is an internal error and its detail stays out of the
// response.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("internal error", "error", err)
		writeJSON(w, status, errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyCredential),
		errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrBadEmailDomain),
		errors.Is(err, domain.ErrPasswordLength),
		errors.Is(err, domain.ErrPasswordUpper),
		errors.Is(err, domain.ErrPasswordLower),
		errors.Is(err, domain.ErrPasswordDigit),
		errors.Is(err, domain.ErrPasswordSpecial),
		errors.Is(err, domain.ErrMissingTitle),
		errors.Is(err, domain.ErrBadCapacity),
		errors.Is(err, domain.ErrEmptyOrganizers),
		errors.Is(err, domain.ErrEmptySpeakers),
		errors.Is(err, domain.ErrBadEventID),
		errors.Is(err, domain.ErrNoVerification),
		errors.Is(err, domain.ErrNoResetCode),
		errors.Is(err, domain.ErrCodeInvalid),
		errors.Is(err, domain.ErrCodeExpired),
		errors.Is(err, domain.ErrNotRegistered),
		errors.Is(err, impl.ErrUnsupportedImageType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotVerified),
		errors.Is(err, domain.ErrNotAdmin),
		errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrAlreadyRegistered),
		errors.Is(err, domain.ErrEventFull):
		return http.StatusConflict
	case errors.Is(err, domain.ErrTooManyRequests):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
