// cmd/configurator/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"it-configurator/internal/api"
	"it-configurator/internal/common/aws"
	"it-configurator/internal/common/config"
	"it-configurator/internal/common/database"
	"it-configurator/internal/common/logger"
	"it-configurator/internal/common/observability"
	"it-configurator/internal/configurator/pricing"
	"it-configurator/internal/configurator/recommend"
	"it-configurator/internal/leads"
	"it-configurator/internal/notify"
	"it-configurator/internal/sessions"

	"github.com/shopspring/decimal"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting configurator service...",
		zap.String("environment", cfg.App.Environment),
		zap.String("wizard_variant", cfg.Wizard.Variant),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Lead persistence ---
	leadStore := leads.NewStore(pg, log)
	if err := leadStore.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("leads schema setup failed", zap.Error(err))
	}

	// --- Notifications ---
	var notifier leads.Notifier = notify.NoopNotifier{}
	if cfg.Email.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Email.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		notifier = notify.NewMailer(sesClient, cfg.Email.FromAddress, cfg.Email.OperatorAddress, log)
		zapLog.Info("SES notifications enabled", zap.String("region", cfg.Email.Region))
	} else {
		zapLog.Info("Email notifications disabled")
	}

	leadService := leads.NewService(leadStore, notifier, log)

	// --- Pricing and recommendations ---
	model := pricing.DefaultModel()
	model.SmallCompanyDiscount = decimal.NewFromFloat(cfg.Wizard.SmallCompanyDiscount)
	pricer := pricing.NewEngine(model)
	recommender := recommend.NewEngine()

	// --- Session persistence ---
	sessionRepo := sessions.NewRepository(redis, time.Duration(cfg.Wizard.SessionTTL)*time.Second, log)

	// --- HTTP server ---
	router := api.NewRouter(api.Deps{
		Config:      cfg,
		Sessions:    sessionRepo,
		LeadStore:   leadStore,
		Saver:       leadService,
		Pricer:      pricer,
		Recommender: recommender,
		Obs:         obs,
		Log:         log,
		Health: api.HealthCheckerFunc(func(ctx context.Context) error {
			if err := pg.Ping(ctx); err != nil {
				return fmt.Errorf("postgres: %w", err)
			}
			if err := redis.Ping(ctx); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
			return nil
		}),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining connections...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Configurator service stopped gracefully")
}
