package impl

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"campusevents/internal/domain"
	"campusevents/internal/dto"
	"campusevents/internal/observability/metrics"
	"campusevents/internal/observability/middleware"
	"campusevents/internal/ratelimit"
	"campusevents/internal/service"
	"campusevents/internal/store"
)

type AccountConfig struct {
	AllowedDomains  []string // e.g. aub.edu.lb, mail.aub.edu
	VerificationTTL time.Duration
	ResetTTL        time.Duration
	MailTimeout     time.Duration
	// ExposeCodes returns the verification code in the signup response.
	// Only set outside production.
	ExposeCodes bool
}

type AccountServiceImpl struct {
	Store        dataStore
	Passwords    service.PasswordService
	Tokens       service.TokenService
	Mail         service.MailService
	ResetLimiter ratelimit.Limiter
	Cfg          AccountConfig
}

func NewAccountServiceImpl(st *store.Store, passwords service.PasswordService, tokens service.TokenService, mail service.MailService, limiter ratelimit.Limiter, cfg AccountConfig) *AccountServiceImpl {
	return &AccountServiceImpl{
		Store:        gormStoreAdapter{store: st},
		Passwords:    passwords,
		Tokens:       tokens,
		Mail:         mail,
		ResetLimiter: limiter,
		Cfg:          cfg,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountServiceImpl) domainAllowed(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domainPart := email[at+1:]
	for _, d := range a.Cfg.AllowedDomains {
		if strings.EqualFold(domainPart, d) {
			return true
		}
	}
	return false
}

// generateCode returns a 6-digit numeric code.
func generateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the process has bigger problems;
		// fall back to a fixed-width timestamp digit slice.
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

// deliver sends mail with a bounded timeout and swallows failures. Delivery
// problems are logged and counted, never surfaced to the caller.
func (a *AccountServiceImpl) deliver(ctx context.Context, kind string, send func(ctx context.Context) error) {
	result := "success"
	timeout := a.Cfg.MailTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	if err := send(mctx); err != nil {
		result = "failure"
		slog.Warn("mail delivery failed",
			"kind", kind,
			"error", err,
			"request_id", middleware.RequestIDFromContext(ctx),
		)
	}
	metrics.MailDeliveriesTotal.WithLabelValues(kind, result).Inc()
}

func (a *AccountServiceImpl) Signup(ctx context.Context, email, password string) (*dto.SignupResponse, error) {
	result := "failure"
	defer func() {
		metrics.SignupsTotal.WithLabelValues(result).Inc()
	}()

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrEmptyCredential
	}
	if !a.domainAllowed(email) {
		return nil, domain.ErrBadEmailDomain
	}
	if err := a.Passwords.CheckStrength(password); err != nil {
		return nil, err
	}

	hash, err := a.Passwords.Hash(password)
	if err != nil {
		return nil, err
	}

	code := generateCode()
	expiry := time.Now().UTC().Add(a.Cfg.VerificationTTL)

	err = a.Store.WithTx(ctx, func(tx storeTx) error {
		now := time.Now().UTC()
		u := &domain.User{
			Email:              email,
			PasswordHash:       hash,
			IsVerified:         false,
			VerificationCode:   &code,
			VerificationExpiry: &expiry,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := tx.Users().Create(ctx, u); err != nil {
			if errors.Is(err, store.ErrDuplicateKey) {
				return domain.ErrDuplicateEmail
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.deliver(ctx, "verification", func(mctx context.Context) error {
		return a.Mail.SendVerification(mctx, email, code)
	})

	result = "success"
	slog.Info("user signed up", "email", email, "request_id", middleware.RequestIDFromContext(ctx))

	resp := &dto.SignupResponse{Message: "Signup successful. Please verify your email."}
	if a.Cfg.ExposeCodes {
		resp.VerificationToken = code
	}
	return resp, nil
}

func (a *AccountServiceImpl) Verify(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)
	if email == "" || code == "" {
		return domain.ErrMissingFields
	}

	return a.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		// Idempotent for an already-verified account; the code is not
		// re-checked.
		if u.IsVerified {
			return nil
		}
		if u.VerificationCode == nil || u.VerificationExpiry == nil {
			return domain.ErrNoVerification
		}
		if *u.VerificationCode != code {
			return domain.ErrCodeInvalid
		}
		if time.Now().UTC().After(*u.VerificationExpiry) {
			return domain.ErrCodeExpired
		}
		return tx.Users().SetVerified(ctx, email)
	})
}

func (a *AccountServiceImpl) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	result := "failure"
	defer func() {
		metrics.LoginsTotal.WithLabelValues(result).Inc()
	}()

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrEmptyCredential
	}

	var user *domain.User
	err := a.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByEmail(ctx, email)
		if err != nil {
			// Don't leak whether the account exists.
			return domain.ErrInvalidCredentials
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !user.IsVerified {
		return nil, domain.ErrNotVerified
	}
	if !a.Passwords.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := a.Tokens.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	result = "success"
	slog.Info("user logged in", "email", email, "request_id", middleware.RequestIDFromContext(ctx))
	return &dto.LoginResponse{Message: "Login successful", Token: token}, nil
}

func (a *AccountServiceImpl) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrMissingFields
	}

	// The limit is consumed before the user lookup so enumeration attempts
	// burn through it too.
	ok, err := a.ResetLimiter.Allow(ctx, "reset-rl-"+email)
	if err != nil {
		return err
	}
	if !ok {
		metrics.ResetRateLimitedTotal.WithLabelValues().Inc()
		return domain.ErrTooManyRequests
	}

	code := generateCode()
	expiry := time.Now().UTC().Add(a.Cfg.ResetTTL)

	err = a.Store.WithTx(ctx, func(tx storeTx) error {
		if _, err := tx.Users().GetByEmail(ctx, email); err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		return tx.Users().SetResetCode(ctx, email, &code, &expiry)
	})
	if err != nil {
		return err
	}

	a.deliver(ctx, "reset", func(mctx context.Context) error {
		return a.Mail.SendResetCode(mctx, email, code)
	})

	slog.Info("password reset requested", "email", email, "request_id", middleware.RequestIDFromContext(ctx))
	return nil
}

func (a *AccountServiceImpl) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)
	if email == "" || code == "" || newPassword == "" {
		return domain.ErrMissingFields
	}

	return a.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		if u.ResetCode == nil || u.ResetExpiry == nil {
			return domain.ErrNoResetCode
		}
		if *u.ResetCode != code {
			return domain.ErrCodeInvalid
		}
		if time.Now().UTC().After(*u.ResetExpiry) {
			return domain.ErrCodeExpired
		}
		if err := a.Passwords.CheckStrength(newPassword); err != nil {
			return err
		}
		hash, err := a.Passwords.Hash(newPassword)
		if err != nil {
			return err
		}
		if err := tx.Users().SetPasswordHash(ctx, email, hash); err != nil {
			return err
		}
		return tx.Users().SetResetCode(ctx, email, nil, nil)
	})
}
