package main

import (
	"context"
	"errors"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/datasource"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/health"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/metrics"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/scheduler"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run scheduled pipeline runs and strategy cycles",
	Long:  `Runs the pipeline and the strategy cycle on their cron schedules and serves health, metrics and the dashboard stream until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg, appLog)
		if err != nil {
			return err
		}
		defer a.close()

		if serveMigrate && a.db != nil {
			if err := a.db.Migrate(ctx); err != nil {
				return err
			}
		}

		runner, err := a.pipelineRunner()
		if err != nil {
			return err
		}
		strategyEngine := a.strategyEngine()

		sched := scheduler.NewScheduler(appLog)
		if err := sched.SchedulePipeline(cfg.Schedule.PipelineCron, runner); err != nil {
			return err
		}
		if err := sched.ScheduleStrategyCycle(cfg.Schedule.StrategyCron, strategyEngine); err != nil {
			return err
		}

		healthServer := health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Port:        cfg.Health.Port,
			Logger:      appLog,
			DB:          pinger(a),
		})
		healthServer.Handle(cfg.Dashboard.StreamPath, a.dashboard)
		if a.webhook != nil {
			healthServer.AddCheck("dashboard_webhook", func(ctx context.Context) error {
				if !a.webhook.Available() {
					return datasource.ErrCircuitOpen
				}
				return nil
			})
		}

		if cfg.Metrics.Enabled {
			metrics.InitRegistry()
			metricsPort := strconv.Itoa(cfg.Metrics.Port)
			if metricsPort == cfg.Health.Port {
				healthServer.Handle(cfg.Metrics.Path, metrics.Handler())
			} else {
				metricsServer := health.NewServer(health.Config{
					ServiceName: cfg.App.Name,
					Version:     Version,
					Port:        metricsPort,
					Logger:      appLog,
				})
				metricsServer.Handle(cfg.Metrics.Path, metrics.Handler())
				if err := metricsServer.Start(ctx); err != nil {
					return err
				}
			}
		}

		if err := healthServer.Start(ctx); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		healthServer.SetReady(true)

		appLog.WithFields(logrus.Fields{
			"environment":   cfg.App.Environment,
			"pipeline_cron": cfg.Schedule.PipelineCron,
			"strategy_cron": cfg.Schedule.StrategyCron,
			"next_run":      sched.GetNextRun(),
		}).Info("Revenue engine started")

		<-ctx.Done()
		appLog.Info("Shutdown signal received")
		healthServer.SetReady(false)

		if err := sched.Stop(); err != nil {
			appLog.WithError(err).Error("Error during scheduler shutdown")
		}
		appLog.Info("Revenue engine shut down")
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg, appLog)
		if err != nil {
			return err
		}
		defer a.close()

		if a.db == nil {
			return errors.New("database is disabled")
		}
		return a.db.Migrate(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Create the database schema before starting")
}

// pinger returns the database as a readiness dependency, or nil without one
func pinger(a *app) health.DatabasePinger {
	if a.db == nil {
		return nil
	}
	return a.db
}
