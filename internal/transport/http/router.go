package http

import (
	"net/http"
	"strings"

	"campusevents/internal/netutil"
	"campusevents/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	Accounts service.AccountService
	Events   service.EventService
	Identity service.IdentityService
}

func clientIP(r *http.Request) string {
	// If you put the service behind a proxy later, these will matter.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// XFF can be a list: client, proxy1, proxy2...
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if normalized, ok := netutil.NormalizeIP(ip); ok {
			return normalized
		}
	}
	if xr := r.Header.Get("X-Real-IP"); xr != "" {
		if normalized, ok := netutil.NormalizeIP(xr); ok {
			return normalized
		}
	}
	if normalized, ok := netutil.NormalizeIP(r.RemoteAddr); ok {
		return normalized
	}
	return r.RemoteAddr
}

func NewRouter(accounts service.AccountService, events service.EventService, identity service.IdentityService) *http.ServeMux {
	h := &Handler{Accounts: accounts, Events: events, Identity: identity}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /auth/", h.authIndex)
	mux.HandleFunc("POST /auth/signup", h.signup)
	mux.HandleFunc("POST /auth/verify", h.verify)
	mux.HandleFunc("POST /auth/login", h.login)
	mux.HandleFunc("POST /auth/password-reset-request", h.passwordResetRequest)
	mux.HandleFunc("POST /auth/password-reset-confirm", h.passwordResetConfirm)
	mux.HandleFunc("GET /auth/me", h.me)

	mux.HandleFunc("GET /api/events", h.listEvents)
	mux.HandleFunc("POST /api/events", h.createEvent)
	mux.HandleFunc("POST /api/events/register", h.register)
	mux.HandleFunc("POST /api/events/unregister", h.unregister)
	mux.HandleFunc("GET /api/events/{id}", h.getEvent)
	mux.HandleFunc("PATCH /api/events/{id}", h.patchEvent)
	mux.HandleFunc("DELETE /api/events/{id}", h.deleteEvent)
	mux.HandleFunc("POST /api/events/{id}/image", h.uploadEventImage)
	mux.HandleFunc("GET /api/my/events", h.myEvents)

	return mux
}
