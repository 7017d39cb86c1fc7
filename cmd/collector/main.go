package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	adapterhttp "vitals/internal/adapters/http"
	"vitals/internal/config"
	"vitals/internal/core/collector"
	"vitals/internal/core/event"
	"vitals/internal/logger"
	"vitals/internal/sensors"
	"vitals/internal/storage/sqlite"
	transporthttp "vitals/internal/transport/http"
	"vitals/internal/transport/websocket"
	"vitals/internal/tui/dashboard"
)

func main() {
	headless := flag.Bool("headless", false, "run without the live dashboard")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: invalid configuration: %v", err)
	}

	// The dashboard owns the terminal, so logs go to a file unless the
	// operator pointed them somewhere already.
	if !*headless && cfg.LogFile == "" {
		cfg.LogFile = "vitals-collector.log"
	}

	appLog := logger.New(cfg)
	appLog.Info("vitals collector: starting...", "db_path", cfg.DBPath, "interval", cfg.SampleInterval)

	db, err := sqlite.Open(cfg.DBPath, appLog)
	if err != nil {
		log.Fatalf("FATAL: cannot open metrics database: %v", err)
	}
	defer db.Close()

	if err := sqlite.Migrate(db); err != nil {
		log.Fatalf("FATAL: cannot migrate metrics database: %v", err)
	}

	repo := sqlite.NewSampleRepository(db)
	hub := event.NewHub(appLog)
	reader := sensors.NewReader(appLog)
	loop := collector.NewLoop(reader, repo, hub, cfg.SampleInterval, appLog)

	appLog.Info("collector session", "session_id", loop.SessionID())

	runtimeCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(runtimeCtx)

	g.Go(func() error {
		return loop.Start(gCtx)
	})

	if cfg.HTTPAddr != "" {
		wsHub := websocket.NewHub(appLog)
		wsHandler := websocket.NewHandler(wsHub, cfg, appLog)
		sampleHandler := adapterhttp.NewSampleHandler(repo, appLog)

		srv := transporthttp.NewServer(cfg, appLog, &transporthttp.Routes{
			Latest: sampleHandler.Latest,
			Range:  sampleHandler.Range,
			Window: sampleHandler.Window,
			WsLive: wsHandler.Serve,
		})

		liveFeed := hub.Subscribe("ws", 16)

		g.Go(func() error {
			wsHub.Run(gCtx, liveFeed)
			return nil
		})

		g.Go(func() error {
			return srv.Start(gCtx)
		})
	}

	if !*headless {
		feed := hub.Subscribe("dashboard", 8)
		program := tea.NewProgram(dashboard.NewModel(feed), tea.WithAltScreen(), tea.WithContext(gCtx))

		g.Go(func() error {
			// Quitting the dashboard shuts the whole process down.
			defer stop()
			if _, err := program.Run(); err != nil && gCtx.Err() == nil {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		appLog.Error("collector failed unexpectedly", "error", err)
	}

	hub.Close()
	appLog.Info("collector stopped gracefully.")
}
