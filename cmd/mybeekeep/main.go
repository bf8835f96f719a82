package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/justingrant1/mybeekeep/internal/calendarapi"
	corecfg "github.com/justingrant1/mybeekeep/internal/core/config"
	"github.com/justingrant1/mybeekeep/internal/core/schedule"
	"github.com/justingrant1/mybeekeep/internal/core/seasonal"
	"github.com/justingrant1/mybeekeep/internal/core/storage"
	"github.com/justingrant1/mybeekeep/internal/core/storage/postgres"
	"github.com/justingrant1/mybeekeep/internal/migrations"
	"github.com/justingrant1/mybeekeep/internal/server"
)

func main() {
	configPath := flag.String("config", "mybeekeep.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config",
		"database_type", cfg.Database.Type,
		"week_start", cfg.Calendar.WeekStart,
		"default_zone", cfg.Calendar.DefaultZone,
	)

	loc, err := cfg.Calendar.Location()
	if err != nil {
		slog.Error("Invalid timezone", "timezone", cfg.Calendar.Timezone, "error", err)
		os.Exit(1)
	}

	// 2. Initialize Storage
	var (
		repo     storage.EventRepository
		healthDB *sql.DB
	)
	switch cfg.Database.Type {
	case "memory":
		slog.Info("Using in-memory event repository")
		repo = storage.NewMemoryRepository()
	default:
		adapter, err := postgres.NewAdapter(
			cfg.Database.DSN,
			cfg.Database.MaxOpenConns,
			cfg.Database.MaxIdleConns,
		)
		if err != nil {
			slog.Error("Failed to initialize database", "error", err)
			os.Exit(1)
		}
		defer adapter.Close()

		// 2.1. Run Database Migrations
		if err := migrations.Run(adapter.DB(), cfg.Database.AutoMigrate); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		repo = adapter
		healthDB = adapter.DB()
	}

	// 3. Initialize the Scheduler Core
	scheduler := schedule.NewScheduler(repo, schedule.SystemClock{},
		schedule.WithWeekStart(cfg.Calendar.WeekStartDay()),
		schedule.WithDefaultZone(seasonal.Zone(cfg.Calendar.DefaultZone)),
		schedule.WithLocation(loc),
	)

	// 4. Initialize the HTTP API
	apiSvc := calendarapi.NewService(
		scheduler,
		seasonal.NewGenerator(loc),
		seasonal.Zone(cfg.Calendar.DefaultZone),
		cfg.Server.MaxBodySizeMB,
	)

	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), healthDB, cfg.Server.Mode)
	apiSvc.RegisterRoutes(srv.Engine)

	// 5. Run until a signal arrives
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
