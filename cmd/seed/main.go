package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"sitearch/internal/config"
	sitemapSvc "sitearch/internal/domain/services/sitemap"
	"sitearch/internal/repository/postgres"
	serviceSitemap "sitearch/internal/service/sitemap"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed sample pages")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	// Create repositories and services
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	projectRepo := postgres.NewProjectRepository(repoConfig)
	pageRepo := postgres.NewPageRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	projectService := serviceSitemap.NewProjectService(projectRepo, logger)
	pageService := serviceSitemap.NewPageService(pageRepo, txManager, logger)

	// Create the sample project
	project, err := projectService.CreateProject(ctx, &sitemapSvc.CreateProjectRequest{
		Name:   "Sample Agency Site",
		Domain: "https://example.com",
	})
	if err != nil {
		log.Fatalf("Failed to create sample project: %v", err)
	}
	log.Printf("Created project %s (%s)", project.Name, project.ID)

	// Seed a small site architecture: home, two pillars, children
	log.Println("Seeding sample pages...")

	type seedPage struct {
		slug    string
		title   string
		parent  string // slug of the parent, "" means under home
		keyword string
		icon    string
	}
	pages := []seedPage{
		{slug: "/", title: "Home"},
		{slug: "services", title: "Services", keyword: "digital agency services", icon: "briefcase"},
		{slug: "web-design", title: "Web Design", parent: "services", keyword: "web design"},
		{slug: "seo", title: "SEO", parent: "services", keyword: "seo services"},
		{slug: "blog", title: "Blog", icon: "pencil"},
		{slug: "about", title: "About Us"},
		{slug: "contact", title: "Contact", parent: "about"},
	}

	idBySlug := make(map[string]string)
	for i, p := range pages {
		req := &sitemapSvc.CreatePageRequest{
			ProjectID: project.ID,
			Slug:      p.slug,
			Title:     p.title,
			Keyword:   p.keyword,
		}
		if p.icon != "" {
			icon := p.icon
			req.Icon = &icon
		}
		// Pages without an explicit parent attach to home so they
		// classify as pillars, not as extra roots.
		parentSlug := p.parent
		if parentSlug == "" && p.slug != "/" {
			parentSlug = "/"
		}
		if parentSlug != "" {
			parentID, ok := idBySlug[parentSlug]
			if !ok {
				log.Fatalf("Seed page %q references unknown parent %q", p.slug, parentSlug)
			}
			req.ParentID = &parentID
		}

		page, err := pageService.CreatePage(ctx, req)
		if err != nil {
			log.Printf("Failed to create page %q: %v", p.slug, err)
			continue
		}
		idBySlug[p.slug] = page.ID
		log.Printf("Created page %d/%d: %s", i+1, len(pages), page.Path)
	}

	log.Println("Seeding complete")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	projectsSchema := `
		CREATE TABLE IF NOT EXISTS ` + tables.Projects + ` (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			domain TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, projectsSchema); err != nil {
		return err
	}

	pagesSchema := `
		CREATE TABLE IF NOT EXISTS ` + tables.Pages + ` (
			id UUID PRIMARY KEY,
			project_id UUID NOT NULL REFERENCES ` + tables.Projects + `(id) ON DELETE CASCADE,
			parent_id UUID,
			path TEXT NOT NULL,
			order_key INTEGER NOT NULL DEFAULT 0,
			depth INTEGER NOT NULL DEFAULT 0,
			icon TEXT,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			keyword TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (project_id, path) DEFERRABLE INITIALLY DEFERRED
		)
	`
	if _, err := pool.Exec(ctx, pagesSchema); err != nil {
		return err
	}

	// parent_id has no FK on purpose: deleting a page orphans its
	// children, and the tree builder surfaces orphans at the top level
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Pages + `_project ON ` + tables.Pages + ` (project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Pages + `_parent ON ` + tables.Pages + ` (project_id, parent_id)`,
	}
	for _, idx := range indexes {
		if _, err := pool.Exec(ctx, idx); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables removes the schema entirely
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range []string{tables.Pages, tables.Projects} {
		if _, err := pool.Exec(ctx, `DROP TABLE IF EXISTS `+table+` CASCADE`); err != nil {
			return err
		}
	}
	return nil
}
