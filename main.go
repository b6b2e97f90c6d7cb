package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gridsage/adapters/llm"
	"gridsage/adapters/postgres"
	"gridsage/adapters/stats/engine"
	"gridsage/app"
	"gridsage/internal/config"
	"gridsage/internal/errors"
	"gridsage/ports"
	"gridsage/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	// Optional report archive
	var reports ports.ReportRepository
	if appConfig.Database.URL != "" {
		db, err := initDatabase(appConfig)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		reports = postgres.NewReportRepository(db)
		log.Println("Report archive enabled")
	}

	// Optional narrative wrapping
	var llmClient ports.LLMClient
	if appConfig.AI.APIKey != "" {
		llmClient = llm.NewClient(appConfig.AI)
		log.Printf("Narrative service enabled (model %s)", appConfig.AI.Model)
	}

	eng := engine.NewEngine()
	service := app.NewAnalysisService(eng, llmClient, reports)
	server := ui.NewServer(service, eng)

	// Ops sidecar: health + pprof
	if appConfig.Ops.Enabled {
		go startOpsServer(appConfig.Ops.Port)
	}

	log.Printf("Starting gridsage server on port %s", appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}

func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	repo := postgres.NewReportRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		return nil, errors.Wrap(err, "schema setup failed")
	}
	return db, nil
}

func startOpsServer(port string) {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Mount("/debug", chimiddleware.Profiler())

	log.Printf("Ops server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Printf("ops server failed: %v", err)
	}
}
