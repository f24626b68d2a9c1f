package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hostbus/eventroute/internal/audit"
	"github.com/hostbus/eventroute/internal/broadcast"
	corecfg "github.com/hostbus/eventroute/internal/core/config"
	"github.com/hostbus/eventroute/internal/core/enablement"
	"github.com/hostbus/eventroute/internal/core/storage"
	"github.com/hostbus/eventroute/internal/core/storage/memory"
	"github.com/hostbus/eventroute/internal/core/storage/postgres"
	"github.com/hostbus/eventroute/internal/dispatch"
	enablementapi "github.com/hostbus/eventroute/internal/enablement"
	"github.com/hostbus/eventroute/internal/ingestion"
	"github.com/hostbus/eventroute/internal/migrations"
	"github.com/hostbus/eventroute/internal/ports/httpport"
	"github.com/hostbus/eventroute/internal/routing"
	"github.com/hostbus/eventroute/internal/rules"
	"github.com/hostbus/eventroute/internal/server"
	kafkasource "github.com/hostbus/eventroute/internal/source/kafka"
)

const shutdownTimeout = 10 * time.Second

// backend is the storage chosen by database.type.
type backend struct {
	db         *sql.DB // nil for memory
	rules      storage.RuleRepository
	audit      storage.AuditStore
	enablement enablement.Store
	close      func()
}

func main() {
	configPath := flag.String("config", "eventroute.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		slog.Warn("Config file not found, using defaults and environment", "path", *configPath)
		*configPath = ""
	}
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Server.Mode == "debug" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	slog.Info("Loaded config", "database", cfg.Database.Type, "kafka", cfg.Sources.Kafka.Enabled)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Initialize Storage
	store, err := openBackend(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.close()

	// 3. Rule Store (+ seed files)
	ruleStore, err := rules.NewStore(ctx, store.rules)
	if err != nil {
		slog.Error("Failed to initialize rule store", "error", err)
		os.Exit(1)
	}
	if cfg.Rules.SeedDir != "" {
		if _, err := rules.LoadSeedDir(ctx, ruleStore, cfg.Rules.SeedDir); err != nil {
			slog.Error("Failed to load seed rules", "dir", cfg.Rules.SeedDir, "error", err)
			os.Exit(1)
		}
	}

	// 4. Ports and Dispatcher
	hub := broadcast.NewHub(cfg.Broadcast.SendBuffer, cfg.Broadcast.WriteTimeout)

	var tools dispatch.ToolInvoker
	if cfg.Plugins.BaseURL != "" {
		tools = httpport.New(cfg.Plugins.BaseURL, cfg.Plugins.Timeout)
	} else {
		slog.Warn("Plugin host not configured, invoke_plugin_tool dispatches will fail")
	}
	var exts dispatch.ExtensionCaller
	if cfg.Extensions.BaseURL != "" {
		exts = httpport.New(cfg.Extensions.BaseURL, cfg.Extensions.Timeout)
	} else {
		slog.Warn("Extension host not configured, call_extension dispatches will fail")
	}

	dispatcher := dispatch.New(store.enablement, tools, exts, hub, cfg.Routing.DispatchTimeout)

	// 5. Audit
	auditWriter := audit.NewWriter(store.audit, audit.WriterOptions{
		BufferSize:    cfg.Audit.BufferSize,
		BatchSize:     cfg.Audit.BatchSize,
		FlushInterval: cfg.Audit.FlushInterval,
	})
	pruner := audit.NewPruner(store.audit, cfg.Audit.Retention, cfg.Audit.PruneInterval)

	// 6. Routing Coordinator
	coordinator := routing.NewCoordinator(ruleStore, dispatcher, auditWriter, routing.Options{
		QueueSize:    cfg.Routing.QueueSize,
		MaxInFlight:  cfg.Routing.MaxInFlight,
		DrainTimeout: cfg.Routing.DrainTimeout,
	})

	// 7. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), store.db, cfg.Server.Mode, func() map[string]interface{} {
		return map[string]interface{}{
			"rule_revision":   ruleStore.Revision(),
			"routed_revision": coordinator.Revision(),
		}
	})
	ingestion.NewService(coordinator, cfg.Server.MaxBodySizeMB).RegisterRoutes(srv.Engine)
	ruleStore.RegisterRoutes(srv.Engine)
	enablementapi.NewHandler(store.enablement).RegisterRoutes(srv.Engine)
	audit.NewHandler(store.audit).RegisterRoutes(srv.Engine)
	hub.RegisterRoutes(srv.Engine)

	// 8. Start Services
	routingCtx, stopRouting := context.WithCancel(context.Background())
	routingDone := make(chan error, 1)
	go func() { routingDone <- coordinator.Run(routingCtx) }()

	var producers sync.WaitGroup
	if cfg.Sources.Kafka.Enabled {
		k := cfg.Sources.Kafka
		src := kafkasource.New(kafkasource.Config{
			Brokers:  k.Brokers,
			Topic:    k.Topic,
			GroupID:  k.GroupID,
			MinBytes: k.MinBytes,
			MaxBytes: k.MaxBytes,
		}, coordinator)
		producers.Add(1)
		go func() {
			defer producers.Done()
			if err := src.Start(ctx); err != nil {
				slog.Error("Kafka source stopped with error", "error", err)
			}
		}()
	}

	go func() {
		if err := pruner.Start(ctx); err != nil {
			slog.Error("Audit pruner stopped with error", "error", err)
		}
	}()

	// Signal handler → triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("Signal received, shutting down...")
		case err := <-routingDone:
			slog.Error("Routing coordinator stopped unexpectedly", "error", err)
			routingDone <- err
		}
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
		cancel()
	}

	// Producers are gone; route what is queued, then flush the audit trail.
	producers.Wait()
	stopRouting()
	if err := <-routingDone; err != nil {
		slog.Error("Routing coordinator failed", "error", err)
	}

	flushCtx, cancelFlush := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelFlush()
	if err := auditWriter.Close(flushCtx); err != nil {
		slog.Error("Audit log not fully flushed", "error", err)
	}
	hub.Close()

	slog.Info("Shutdown complete")
}

func openBackend(ctx context.Context, cfg *corecfg.Config) (*backend, error) {
	if cfg.Database.Type == "memory" {
		slog.Info("Using in-memory storage; rules and audit log are lost on restart")
		return &backend{
			rules:      memory.NewRuleRepository(),
			audit:      memory.NewAuditStore(),
			enablement: enablement.NewMemoryStore(cfg.Enablement.DefaultGateway),
			close:      func() {},
		}, nil
	}

	db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		return nil, err
	}

	// 2.1. Run Database Migrations
	if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	if err := postgres.ValidateSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	ruleAdapter, err := postgres.NewRuleAdapter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &backend{
		db:         db,
		rules:      ruleAdapter,
		audit:      postgres.NewAuditAdapter(db),
		enablement: postgres.NewEnablementAdapter(db, cfg.Enablement.DefaultGateway),
		close: func() {
			ruleAdapter.Close()
			db.Close()
		},
	}, nil
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
