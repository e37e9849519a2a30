// Command server runs the docs analytics HTTP service: the public
// ingestion endpoints (/track, /detect, /query) and the JWT-protected
// dashboard API under /v1.
package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"

	"docsight/internal/access"
	"docsight/internal/api"
	"docsight/internal/config"
	internaldb "docsight/internal/db"
	"docsight/internal/db/repository"
	"docsight/internal/events"
	"docsight/internal/gateway"
	"docsight/internal/middleware"
	"docsight/internal/query"
	"docsight/internal/store"
)

func main() {
	ctx := context.Background()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	for _, warning := range cfg.Warnings {
		logger.Warn(warning)
	}

	// Columnar event store (DuckDB).
	eventStore, err := store.Open(ctx, cfg.EventsDBPath)
	if err != nil {
		log.Fatalf("failed to open events store: %v", err)
	}
	defer eventStore.Close()

	// Metastore (SQLite): verified domain claims.
	writeDB, readDB, err := internaldb.OpenSQLitePair(cfg.MetaDBPath, 4)
	if err != nil {
		log.Fatalf("failed to open metastore: %v", err)
	}
	defer writeDB.Close()
	defer readDB.Close()

	if err := internaldb.RunMigrations(writeDB); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// Access grants: YAML file plus ADMIN_EMAILS from the environment.
	grants, err := access.LoadConfig(cfg.GrantsFile)
	if err != nil {
		log.Fatalf("failed to load grants file %s: %v", cfg.GrantsFile, err)
	}
	for _, email := range cfg.AdminEmails {
		grants.AdminEmails = append(grants.AdminEmails, strings.ToLower(email))
	}

	domainRepo := repository.NewVerifiedDomainRepo(writeDB)
	accessSvc := access.NewService(grants, domainRepo)
	catalog := query.NewCatalog()
	gw := gateway.New(accessSvc, catalog, eventStore, logger)
	writer := events.NewWriter(eventStore, logger)

	handler := api.NewHandler(writer, catalog, eventStore, gw, accessSvc, domainRepo, logger)
	router := handler.Router(api.RouterConfig{
		QuerySecret:        cfg.QuerySecret,
		JWTSecret:          []byte(cfg.JWTSecret),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimit: middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
		},
	})

	logger.Info("docsight listening",
		"addr", cfg.ListenAddr,
		"events_db", cfg.EventsDBPath,
		"meta_db", cfg.MetaDBPath,
		"env", cfg.Env,
		"try", "curl http://"+curlHost(cfg.ListenAddr)+"/health",
	)
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// curlHost turns the listen address into something the startup curl hint
// can actually reach: wildcard and empty hosts become localhost.
func curlHost(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "localhost:8080"
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
