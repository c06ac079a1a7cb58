package main

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"campusevents/internal/config"
	"campusevents/internal/mail"
	"campusevents/internal/observability/logging"
	"campusevents/internal/observability/metrics"
	"campusevents/internal/observability/middleware"
	"campusevents/internal/ratelimit"
	"campusevents/internal/service"
	impl "campusevents/internal/service/impl"
	"campusevents/internal/storage"
	"campusevents/internal/store"
	httpx "campusevents/internal/transport/http"
	"campusevents/pkg/db"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	logger := logging.NewLogger(logging.Config{
		ServiceName: "campusevents",
		Environment: cfg.Environment,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	slog.SetDefault(logger)

	logger.Info("starting service")

	metrics.MustRegister("campusevents")

	gdb, err := db.OpenGorm(db.Config{DSN: cfg.DatabaseURL, LogSQL: cfg.LogSQL})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}

	st := store.New(gdb)
	if err := st.AutoMigrate(); err != nil {
		logger.Error("migrate", "error", err)
		os.Exit(1)
	}

	pw := impl.NewPasswordServiceBcrypt()
	ts := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:     cfg.Issuer,
		TTL:        cfg.TokenTTL,
		SigningKey: []byte(cfg.SigningKey),
	})

	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.ResetLimit, cfg.ResetWindow)
		logger.Info("reset rate limiting via redis", "addr", cfg.RedisAddr)
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.ResetLimit, cfg.ResetWindow)
		logger.Info("reset rate limiting in process")
	}

	var sender service.MailService
	if cfg.SendGridAPIKey != "" {
		sender = mail.NewSendGridSender(cfg.SendGridAPIKey, cfg.VerifiedFromEmail, cfg.MailTimeout)
	} else {
		sender = mail.NewDevLogSender()
	}

	var images storage.Uploader
	if cfg.SupabaseURL != "" && cfg.SupabaseServiceKey != "" {
		images = storage.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseBucket, 30*time.Second)
	}

	accounts := impl.NewAccountServiceImpl(st, pw, ts, sender, limiter, impl.AccountConfig{
		AllowedDomains:  cfg.AllowedEmailDomains,
		VerificationTTL: cfg.VerificationTTL,
		ResetTTL:        cfg.ResetTTL,
		MailTimeout:     cfg.MailTimeout,
		ExposeCodes:     !strings.EqualFold(cfg.Environment, "prod"),
	})
	events := impl.NewEventServiceImpl(st, images)
	identity := impl.NewIdentityServiceImpl(st, ts)

	mux := httpx.NewRouter(accounts, events, identity)
	handler := middleware.WithRequestAndTrace(middleware.WithMetrics(mux))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("listening", "addr", srv.Addr, "issuer", cfg.Issuer)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
