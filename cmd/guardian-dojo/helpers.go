package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/chatbackend"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/config"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/cryptostore"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/store"
)

// harness bundles the dependencies every subcommand needs, built once
// from the loaded config.
type harness struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *store.Store
	backend chatbackend.Backend
}

func newHarness(configPath string) (*harness, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	keys, err := cryptostore.LoadOrCreateKeyManager(cfg.Database.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("load key manager: %w", err)
	}

	st, err := store.Open(cfg.Database.Path, keys, logger)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}

	backend := chatbackend.NewHTTPBackend(chatbackend.Config{
		URL:        cfg.Backend.URL,
		Model:      cfg.Backend.Model,
		APIKey:     cfg.Backend.APIKey,
		MaxRetries: cfg.Backend.MaxRetries,
		Timeout:    secondsToDuration(cfg.Backend.TimeoutSeconds),
	}, logger)

	return &harness{cfg: cfg, logger: logger, store: st, backend: backend}, nil
}

func (h *harness) Close() {
	_ = h.store.Close()
	_ = h.logger.Sync()
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
