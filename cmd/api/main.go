package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lhomangroup/voyageur-malin/internal/config"
	"github.com/lhomangroup/voyageur-malin/internal/infra/database"
	"github.com/lhomangroup/voyageur-malin/internal/infra/http/handlers"
	"github.com/lhomangroup/voyageur-malin/internal/infra/http/middleware"
	"github.com/lhomangroup/voyageur-malin/internal/infra/http/router"
	"github.com/lhomangroup/voyageur-malin/internal/infra/mail"
	"github.com/lhomangroup/voyageur-malin/internal/infra/queue"
	"github.com/lhomangroup/voyageur-malin/internal/logger"
	"github.com/lhomangroup/voyageur-malin/internal/usecase"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(lg.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Store
	var (
		repo   usecase.SubscriberRepository
		pinger handlers.Pinger
	)
	switch {
	case !cfg.Database.Configured():
		lg.Warn("database not configured, submissions will answer 500")
	case cfg.Database.Driver == "memory":
		mem := database.NewMemorySubscriberRepository()
		repo, pinger = mem, mem
		lg.Info("using in-memory subscriber store")
	default:
		db, err := database.NewDBConnection(ctx, cfg.Database.Driver, cfg.Database.DSN(), database.PoolConfig{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			lg.Fatal("database connection failed", "driver", cfg.Database.Driver, "error", err)
		}
		defer db.Close()

		if cfg.Database.Migrate {
			if err := database.Migrate(db); err != nil {
				lg.Fatal("migrations failed", "error", err)
			}
		}
		repo, pinger = database.NewSubscriberRepository(db), db
		lg.Info("connected to database", "driver", cfg.Database.Driver)
	}

	// 2. Email transports, tried in order
	renderer, err := mail.NewRenderer(cfg.Mail.From, cfg.Mail.OfferURL)
	if err != nil {
		lg.Fatal("email template", "error", err)
	}
	var transports []mail.Transport
	if cfg.Mail.ResendAPIKey != "" {
		transports = append(transports, mail.NewResendSender(cfg.Mail.ResendAPIKey))
	} else {
		lg.Warn("RESEND_API_KEY not set, primary email transport disabled")
	}
	if cfg.Mail.SMTPHost != "" {
		transports = append(transports, mail.NewSMTPSender(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.SMTPUser, cfg.Mail.SMTPPassword))
	}
	transports = append(transports, mail.NewLogSender(lg.Logger, cfg.Mail.AltServiceID, cfg.Mail.AltTemplateID))
	notifier := mail.NewFallbackSender(renderer, lg.Logger, transports...)

	// 3. Optional event broker
	var (
		publisher usecase.EventPublisher
		broker    handlers.Broker
	)
	if cfg.AMQP.URL != "" {
		rabbit, err := queue.NewRabbitMQ(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			lg.Error("rabbitmq unavailable, events disabled", "error", err)
		} else {
			defer rabbit.Close()
			publisher = queue.NewProducer(rabbit.Ch, rabbit.Exchange)
			broker = rabbit
		}
	}

	// 4. Use case and handlers
	var sender handlers.ChecklistSender
	if repo != nil {
		sender = usecase.NewSendChecklistUseCase(repo, notifier, publisher, middleware.SubmissionMetrics{}, lg.Logger)
	}

	handler := router.New(router.Deps{
		Checklist:   handlers.NewChecklistHandler(sender, lg.Logger),
		Health:      handlers.NewHealthHandler(pinger, broker, notifier.Transports()),
		RateLimiter: middleware.NewRateLimiter(ctx, cfg.HTTP.RateLimit, cfg.HTTP.RateWindow),
		AccessLog:   true,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort("", cfg.HTTP.Port),
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	go func() {
		lg.Info("server listening", "addr", srv.Addr, "transports", notifier.Transports())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", "error", err)
	}
}
