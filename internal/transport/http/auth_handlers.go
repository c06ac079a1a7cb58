package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"campusevents/internal/domain"
	"campusevents/internal/dto"
)

func (h *Handler) authIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"endpoints": map[string]string{
			"signup":                 "/auth/signup",
			"verify":                 "/auth/verify",
			"login":                  "/auth/login",
			"password_reset_request": "/auth/password-reset-request",
			"password_reset_confirm": "/auth/password-reset-confirm",
			"me":                     "/auth/me",
		},
		"notes": "Use POST for all except 'me' (GET). All bodies JSON.",
	})
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrEmptyCredential)
		return
	}
	resp, err := h.Accounts.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrMissingFields)
		return
	}
	if err := h.Accounts.Verify(r.Context(), req.Email, req.Token); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Account verified successfully."})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrEmptyCredential)
		return
	}
	resp, err := h.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		slog.Debug("login rejected", "ip", clientIP(r))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) passwordResetRequest(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrMissingFields)
		return
	}
	if err := h.Accounts.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Password reset code sent to your email."})
}

func (h *Handler) passwordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetConfirm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrMissingFields)
		return
	}
	if err := h.Accounts.ConfirmPasswordReset(r.Context(), req.Email, req.ResetCode, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Password has been reset successfully."})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.Identity.Resolve(r.Context(), r.Header.Get("Authorization"))
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, dto.MeResponse{
		Email:      user.Email,
		IsVerified: user.IsVerified,
		IsAdmin:    user.IsAdmin,
	})
}
