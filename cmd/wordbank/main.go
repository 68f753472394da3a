package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"wordbank/internal/config"
	"wordbank/internal/notify"
	"wordbank/internal/provider"
	"wordbank/internal/repository"
	"wordbank/internal/server"
	"wordbank/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	repo := repository.NewCategoryRepository(cfg.DatabaseURL, logger)
	defer repo.Close()

	var providers []provider.Provider
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, provider.NewOpenAI(provider.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
		}))
	}
	if cfg.GeminiAPIKey != "" {
		providers = append(providers, provider.NewGemini(provider.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		}))
	}
	chain := provider.NewChain(logger, cfg.ProviderTimeout, providers...)

	var notifier service.Notifier
	if tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramAdminChatID, logger); err != nil {
		logger.Warn("telegram alerts disabled", zap.Error(err))
	} else if tg != nil {
		notifier = tg
	}

	tunables := service.DefaultTunables()
	tunables.Capacity = cfg.CacheCapacity
	tunables.StaleWindow = cfg.StaleWindow

	refreshSvc := service.NewRefreshService(repo, chain, tunables, notifier, logger)
	categorySvc := service.NewCategoryService(repo, refreshSvc)

	scheduler := service.NewSchedulerService(time.Local)
	if cfg.RefreshInterval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.RefreshInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if err := refreshSvc.EnsureFresh(jobCtx); err != nil {
				logger.Warn("background refresh failed", zap.Error(err))
			}
		}); err != nil {
			logger.Fatal("schedule refresh", zap.Error(err))
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.New(categorySvc, logger).Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("wordbank listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.Int("providers", len(providers)))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
