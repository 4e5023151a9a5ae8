package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/coinboard/coinboard/internal/api"
	"github.com/coinboard/coinboard/internal/core/domain"
	"github.com/coinboard/coinboard/internal/core/service"
	"github.com/coinboard/coinboard/internal/infrastructure/qr"
	"github.com/coinboard/coinboard/internal/infrastructure/queue"
	"github.com/coinboard/coinboard/internal/infrastructure/store"
	"github.com/coinboard/coinboard/internal/pkg/config"
	"github.com/coinboard/coinboard/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	secret := cfg.SessionSecret
	if secret == "" {
		secret = randomSecret()
		log.Warn().Msg("SESSION_SECRET not set; sessions will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores and rendering ---
	users := store.NewUserStore()
	grants := store.NewGrantStore()

	dispatcher := queue.NewDispatcher(cfg.RenderWorkers, qr.NewRenderer(), log)
	dispatcher.Start(ctx)

	// --- Services ---
	directory := service.NewDirectory(users, dispatcher, cfg.ClampBalances, log)
	pool := service.NewPool(grants, directory, dispatcher, cfg.BaseURL, cfg.MintPolicy, log)
	sessions := service.NewSessionManager(secret, cfg.SessionTTL)

	seedCEO(users, cfg.CEOBalance)
	log.Info().Int64("balance", cfg.CEOBalance).Msg("CEO account seeded")

	e := api.NewRouter(api.Deps{
		Directory:  directory,
		Pool:       pool,
		Sessions:   sessions,
		SessionTTL: cfg.SessionTTL,
		Logger:     log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("policy", cfg.MintPolicy).Msg("coinboard listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// seedCEO creates the fixed privileged account at process start.
func seedCEO(users *store.UserStore, balance int64) {
	_ = users.Create(&domain.User{
		Username:  "CEO",
		Balance:   balance,
		Role:      domain.RoleCEO,
		CreatedAt: time.Now().UTC(),
	})
}

// randomSecret returns a 32-hex-char signing secret, in the spirit of
// generating a fresh secret key on every boot when none is configured.
func randomSecret() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate session secret: " + err.Error())
	}
	return hex.EncodeToString(b)
}
