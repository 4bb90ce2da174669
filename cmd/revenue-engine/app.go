package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/config"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/database"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/datasource"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/engine"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/notify"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/pipeline"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/repository"
)

// app holds the dependencies shared by the commands
type app struct {
	cfg   *config.Config
	log   *logrus.Logger
	db    *database.DB
	repos *repository.Repositories

	knowledgeBase *notify.KnowledgeBase
	dashboard     *notify.Dashboard
	webhook       *datasource.RateLimitedHTTPClient
}

// newApp opens the database when it is enabled
func newApp(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}
	if !cfg.Database.Enabled {
		return a, nil
	}

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	repos, err := repository.NewRepositories(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	a.db = db
	a.repos = repos
	log.Info("Database connection established")
	return a, nil
}

func (a *app) pipelineRunner() (*pipeline.Runner, error) {
	return pipeline.NewFromConfig(a.cfg.Pipeline, a.repos, a.log)
}

// strategyEngine builds the engine with its two collaborators
func (a *app) strategyEngine() *engine.Engine {
	a.knowledgeBase = notify.NewKnowledgeBase(a.cfg.KnowledgeBase.Name, a.cfg.KnowledgeBase.TTL())

	var opts []notify.DashboardOption
	if a.cfg.Dashboard.WebhookURL != "" {
		a.webhook = datasource.NewRateLimitedHTTPClient(datasource.DefaultHTTPClientConfig(), a.log)
		opts = append(opts, notify.WithWebhook(a.webhook, a.cfg.Dashboard.WebhookURL, a.cfg.Dashboard.WebhookToken))
	}
	a.dashboard = notify.NewDashboard(a.cfg.Dashboard.Name, a.log, opts...)

	var store engine.StrategyLogStore
	if a.cfg.Engine.PersistLogs && a.repos != nil {
		store = a.repos.StrategyLog
	}

	return engine.New(
		a.cfg.Engine,
		engine.FixedGenerator{},
		[]notify.Notifier{a.knowledgeBase, a.dashboard},
		store,
		a.log,
	)
}

func (a *app) close() {
	if a.dashboard != nil {
		a.dashboard.Close()
	}
	if a.webhook != nil {
		if err := a.webhook.Close(); err != nil {
			a.log.WithError(err).Warn("Failed to close webhook client")
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
