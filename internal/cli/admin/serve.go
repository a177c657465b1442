package admin

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deskmate-ai/deskmate/internal/api/handlers"
	"github.com/deskmate-ai/deskmate/internal/appstate"
	"github.com/deskmate-ai/deskmate/internal/config"
	"github.com/deskmate-ai/deskmate/internal/crawl"
	"github.com/deskmate-ai/deskmate/internal/domain"
	"github.com/deskmate-ai/deskmate/internal/ingest"
	"github.com/deskmate-ai/deskmate/internal/plan"
	"github.com/deskmate-ai/deskmate/internal/provider/lm"
	"github.com/deskmate-ai/deskmate/internal/respond"
	"github.com/deskmate-ai/deskmate/internal/retrieve"
	"github.com/deskmate-ai/deskmate/internal/server"
	"github.com/deskmate-ai/deskmate/internal/telemetry"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
)

// ServeCmd returns the serve command.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the DeskMate API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.SentryDSN != "" {
		sampleRate := 0.1
		if cfg.SentryEnvironment == "development" {
			sampleRate = 1.0
		}
		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate && cfg.DatabaseURL != "" {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			log.Printf("migrations skipped (continuing with existing schema): %v", err)
		}
	}

	state := appstate.New(ctx, *cfg)
	defer state.Close()

	coordinator := ingest.New(state.Vector, state.Graph, state.Embedder, cfg.ChunkTokens, cfg.ChunkOverlap)
	planner := plan.New(state.Graph, cfg.TopK)
	retriever := retrieve.New(state.Vector, state.Graph, state.Embedder)
	responder := respond.New(state.LM)

	ingestHandler := &handlers.IngestHandler{
		Coordinator: coordinator,
		AllowURL:    cfg.AllowURLIngest,
		CrawlDefaults: crawl.Config{
			MaxDepth:      cfg.URLMaxDepth,
			MaxPages:      cfg.URLMaxPages,
			MaxTotalChars: cfg.URLMaxTotalChars,
			RateLimitSec:  cfg.URLRateLimitSec,
		},
	}
	askHandler := &handlers.AskHandler{
		Planner:   planner,
		Retriever: retriever,
		Responder: responder,
		NewProviderOverride: func(name string) lm.Provider {
			switch name {
			case "auto", "openai", "ollama", "stub":
				return lm.New(ctx, lm.Settings{Provider: name, ModelName: cfg.ModelName, OpenAIAPIKey: cfg.OpenAIAPIKey, OllamaHost: cfg.OllamaHost})
			}
			return nil
		},
	}
	healthHandler := &handlers.HealthHandler{
		Health: func(r *http.Request) domain.HealthReport {
			return state.Health(r.Context())
		},
	}

	router := server.NewRouter(server.RouterConfig{
		IngestHandler: ingestHandler,
		AskHandler:    askHandler,
		HealthHandler: healthHandler,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	switch {
	case err == migrate.ErrNilVersion:
		log.Println("migrations: database is up to date (no migrations applied)")
	case dirty:
		return fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	default:
		log.Printf("migrations: applied successfully (version %d)", version)
	}

	return nil
}
