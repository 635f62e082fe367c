package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"sitearch/internal/config"
	"sitearch/internal/handler"
	"sitearch/internal/middleware"
	"sitearch/internal/repository/postgres"
	serviceSitemap "sitearch/internal/service/sitemap"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.Debug {
		// In debug mode, tee logs to a timestamped file as well
		logFile, err := config.SetupLogFile("logs", 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	projectRepo := postgres.NewProjectRepository(repoConfig)
	pageRepo := postgres.NewPageRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Create services
	projectService := serviceSitemap.NewProjectService(projectRepo, logger)
	pageService := serviceSitemap.NewPageService(pageRepo, txManager, logger)
	treeService := serviceSitemap.NewTreeService(pageRepo, txManager, logger)
	exportService := serviceSitemap.NewExportService(pageRepo, projectRepo, logger)
	importService := serviceSitemap.NewImportService(pageRepo, txManager, logger)

	// Create handlers
	projectHandler := handler.NewProjectHandler(projectService, logger)
	pageHandler := handler.NewPageHandler(pageService, logger)
	treeHandler := handler.NewTreeHandler(treeService, logger)
	exportHandler := handler.NewExportHandler(exportService, importService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Project routes
	mux.HandleFunc("GET /api/projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /api/projects", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.GetProject)
	mux.HandleFunc("PATCH /api/projects/{id}", projectHandler.UpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", projectHandler.DeleteProject)

	// Page routes
	mux.HandleFunc("GET /api/projects/{id}/pages", pageHandler.ListPages)
	mux.HandleFunc("POST /api/projects/{id}/pages", pageHandler.CreatePage)
	mux.HandleFunc("GET /api/projects/{id}/pages/{pageID}", pageHandler.GetPage)
	mux.HandleFunc("PATCH /api/projects/{id}/pages/{pageID}", pageHandler.UpdatePage)
	mux.HandleFunc("DELETE /api/projects/{id}/pages/{pageID}", pageHandler.DeletePage)

	// Tree routes
	mux.HandleFunc("GET /api/projects/{id}/tree", treeHandler.GetTree)
	mux.HandleFunc("POST /api/projects/{id}/tree/move", treeHandler.MovePages)
	mux.HandleFunc("POST /api/projects/{id}/tree/undo", treeHandler.UndoMove)
	mux.HandleFunc("GET /api/projects/{id}/tree/annotations", treeHandler.Annotations)

	// Export and import routes
	mux.HandleFunc("GET /api/projects/{id}/export/csv", exportHandler.ExportCSV)
	mux.HandleFunc("GET /api/projects/{id}/export/sitemap.xml", exportHandler.ExportSitemapXML)
	mux.HandleFunc("POST /api/projects/{id}/import/csv", exportHandler.ImportCSV)
	mux.HandleFunc("POST /api/projects/{id}/import/sitemap", exportHandler.ImportSitemap)

	// Build middleware chain
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)

	// CORS - must wrap everything to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
