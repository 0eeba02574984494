// Package app assembles the oracle's services from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/sarahkali/oracle/backend/internal/config"
	"github.com/sarahkali/oracle/backend/internal/handler"
	"github.com/sarahkali/oracle/backend/internal/model/catalog"
	"github.com/sarahkali/oracle/backend/internal/model/persona"
	"github.com/sarahkali/oracle/backend/internal/service/ai"
	chatService "github.com/sarahkali/oracle/backend/internal/service/chat"
	"github.com/sarahkali/oracle/backend/internal/service/flow"
	"github.com/sarahkali/oracle/backend/internal/service/reportcache"
	"github.com/sarahkali/oracle/backend/internal/service/session"
)

var log = logrus.WithField("component", "app")

// App holds the wired services. Close releases storage handles.
type App struct {
	Config     *config.Config
	Catalog    catalog.Store
	Persona    persona.Persona
	Sessions   *session.Store
	Transcript chatService.Log
	Cache      reportcache.Cache
	Processor  *flow.Processor

	closers []func() error
}

// New builds every service described by cfg.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{
		Config:   cfg,
		Catalog:  catalog.NewMemoryStore(catalog.Seed()),
		Persona:  persona.Default(),
		Sessions: session.NewStore(cfg.Funnel.SessionIdleTTL),
	}

	var err error
	if a.Transcript, err = a.openTranscript(cfg.Storage); err != nil {
		a.Close()
		return nil, err
	}
	if a.Cache, err = a.openCache(ctx, cfg.Storage, cfg.Funnel); err != nil {
		a.Close()
		return nil, err
	}

	a.Processor, err = flow.NewProcessor(flow.Config{
		Sessions:   a.Sessions,
		Catalog:    a.Catalog,
		Cache:      a.Cache,
		LLM:        a.newCompleter(ctx, cfg.AI),
		Transcript: a.Transcript,
		Persona:    a.Persona,
		PixKey:     cfg.Funnel.PixKey,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) openTranscript(cfg config.StorageConfig) (chatService.Log, error) {
	if cfg.TranscriptBackend != "sqlite" {
		return chatService.NewService(), nil
	}

	l, err := chatService.NewSQLiteLog(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	a.closers = append(a.closers, l.Close)
	log.WithField("path", cfg.SQLitePath).Info("transcript stored in sqlite")
	return l, nil
}

func (a *App) openCache(ctx context.Context, storage config.StorageConfig, funnel config.FunnelConfig) (reportcache.Cache, error) {
	if storage.CacheBackend != "redis" {
		return reportcache.NewMemory(funnel.ReportCacheTTL, nil), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     storage.RedisAddr,
		Password: storage.RedisPassword,
	})
	a.closers = append(a.closers, rdb.Close)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", storage.RedisAddr, err)
	}
	log.WithField("addr", storage.RedisAddr).Info("report cache stored in redis")
	return reportcache.NewRedis(rdb, funnel.ReportCacheTTL), nil
}

// newCompleter returns the LLM gateway, or the offline apology rotation
// when no model is configured or the gateway cannot start.
func (a *App) newCompleter(ctx context.Context, cfg config.AIConfig) flow.Completer {
	if !cfg.Enabled() {
		log.Warn("ark credentials not configured, open-ended messages get an apology")
		return &ai.Offline{}
	}

	prompt := ai.NewPersonaPromptManager().BuildSystemPrompt(a.Persona, a.Catalog.List())
	svc, err := ai.NewServiceFromConfig(ctx, cfg, prompt)
	if err != nil {
		log.WithError(err).Error("failed to initialize llm gateway")
		return &ai.Offline{}
	}
	log.WithField("models", cfg.Models()).Info("llm gateway initialized")
	return svc
}

// Router exposes the services over HTTP.
func (a *App) Router() http.Handler {
	return handler.NewRouter(handler.Dependencies{
		Processor:      a.Processor,
		Catalog:        a.Catalog,
		Persona:        a.Persona,
		Transcript:     a.Transcript,
		AllowedOrigins: a.Config.Server.AllowedOrigins,
	})
}

// Close releases storage handles in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
