package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/nextelligentia/leadops/config"
	"github.com/nextelligentia/leadops/internal/email"
	"github.com/nextelligentia/leadops/internal/events"
	"github.com/nextelligentia/leadops/internal/health"
	"github.com/nextelligentia/leadops/internal/infrastructure/memory"
	"github.com/nextelligentia/leadops/internal/infrastructure/postgres"
	"github.com/nextelligentia/leadops/internal/infrastructure/redis"
	ctxlog "github.com/nextelligentia/leadops/internal/log"
	"github.com/nextelligentia/leadops/internal/metrics"
	"github.com/nextelligentia/leadops/internal/notify"
	"github.com/nextelligentia/leadops/internal/repository"
	"github.com/nextelligentia/leadops/internal/stats"
	"github.com/nextelligentia/leadops/internal/token"
	httptransport "github.com/nextelligentia/leadops/internal/transport/http"
	"github.com/nextelligentia/leadops/internal/transport/http/handler"
	"github.com/nextelligentia/leadops/internal/transport/http/middleware"
	"github.com/nextelligentia/leadops/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	deps := []health.Dependency{{Name: "postgres", Pinger: pool}}

	// One-time codes
	var codes repository.OTPStore
	switch cfg.OTPStore {
	case "redis":
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			stop()
			log.Fatalf("redis: %v", err)
		}
		defer client.Close()
		codes = redis.NewOTPStore(client)
		deps = append(deps, health.Dependency{Name: "redis", Pinger: redis.Pinger{Client: client}})
	default:
		codes = memory.NewOTPStore()
	}

	sender, err := email.NewSender(email.Options{
		Provider:         cfg.EmailProvider,
		FromName:         cfg.Brand,
		FromEmail:        cfg.EmailFrom,
		SMTPHost:         cfg.SMTPHost,
		SMTPPort:         cfg.SMTPPort,
		SMTPUser:         cfg.EmailUser,
		SMTPPass:         cfg.EmailPass,
		ResendAPIKey:     cfg.ResendAPIKey,
		MailerSendAPIKey: cfg.MailerSendAPIKey,
	}, logger)
	if err != nil {
		stop()
		log.Fatalf("email: %v", err)
	}
	templates := email.Templates{Brand: cfg.Brand}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NATSURL != "" {
		nc, err := events.NewNATSPublisher(cfg.NATSURL, logger)
		if err != nil {
			stop()
			log.Fatalf("nats: %v", err)
		}
		publisher = nc
	}

	dispatcher := notify.NewDispatcher(logger, cfg.NotifyWorkers, cfg.NotifyQueueSize, cfg.NotifyTimeout)
	dispatcher.Start()

	// Accounts
	accountRepo := postgres.NewAccountRepository(pool)
	minter := token.NewMinter([]byte(cfg.JWTSecret), cfg.JWTTTL)
	authUsecase := usecase.NewAuthUsecase(accountRepo, codes, sender, templates, minter, logger, usecase.WithOTPTTL(cfg.OTPTTL))

	// Catalog
	leadRepo := postgres.NewLeadRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	portfolioRepo := postgres.NewPortfolioRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)

	if len(cfg.LeadRecipients) == 0 {
		logger.Warn("LEAD_NOTIFY_RECIPIENTS is empty, lead notifications will fail")
	}
	leadUsecase := usecase.NewLeadUsecase(leadRepo, dispatcher, sender, templates, publisher, cfg.LeadRecipients, logger)
	dashboardUsecase := usecase.NewDashboardUsecase(leadRepo, jobRepo, portfolioRepo, contactRepo)

	handlers := httptransport.Handlers{
		Admin:     handler.NewAdminHandler(authUsecase, dashboardUsecase, logger, handler.WithUniformAuthErrors(cfg.AuthUniformErrors)),
		Leads:     handler.NewLeadHandler(leadUsecase, logger),
		Jobs:      handler.NewJobHandler(usecase.NewJobUsecase(jobRepo), logger),
		Portfolio: handler.NewPortfolioHandler(usecase.NewPortfolioUsecase(portfolioRepo), logger),
		Contacts:  handler.NewContactHandler(usecase.NewContactUsecase(contactRepo), logger),
	}

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer, deps...)

	refresher, err := stats.NewRefresher(dashboardUsecase, cfg.StatsCron, logger)
	if err != nil {
		stop()
		log.Fatalf("stats: %v", err)
	}
	go refresher.Start(ctx)

	router := httptransport.NewRouter(logger, handlers, accountRepo, httptransport.RouterConfig{
		JWTKey:  []byte(cfg.JWTSecret),
		Brand:   cfg.Brand,
		Version: cfg.Version,
	})
	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(cfg.CORSAllowedOrigins, router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port, "env", cfg.Env, "otp_store", cfg.OTPStore, "email_provider", cfg.EmailProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	// requests are done; let queued emails go out before closing transports
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		logger.Error("dispatcher shutdown", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("publisher close", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
