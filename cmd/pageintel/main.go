// Command pageintel serves the company-page insights API: cache-first
// page lookups backed by on-demand headless-browser acquisition, stored
// in SQLite, queryable over HTTP and optionally over MCP stdio.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/pageintel/pageintel/browser"
	"github.com/pageintel/pageintel/dbopen"
	"github.com/pageintel/pageintel/pages"
	"github.com/pageintel/pageintel/shield"
)

func main() {
	port := env("PORT", "8080")
	dbPath := env("DB_PATH", "data/pageintel.db")
	configFile := env("CONFIG_FILE", "")
	remoteBrowser := env("BROWSER_REMOTE_URL", "")
	mcpTransport := env("MCP_TRANSPORT", "")
	logLevel := env("LOG_LEVEL", "info")

	// Logging.
	var lvl slog.Level
	switch logLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Service config: YAML file when given, defaults otherwise.
	var cfg *pages.Config
	if configFile != "" {
		var err error
		cfg, err = pages.LoadConfig(configFile)
		if err != nil {
			slog.Error("load config", "path", configFile, "error", err)
			os.Exit(1)
		}
	} else {
		cfg = &pages.Config{}
	}

	// Store.
	db, err := dbopen.Open(dbPath, dbopen.WithMkdirAll(), dbopen.WithSchema(pages.Schema))
	if err != nil {
		slog.Error("open db", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Browser. Blocking heavy resource types keeps acquisitions inside
	// their budget on media-dense pages.
	mgr := browser.NewManager(browser.Config{
		RemoteURL:        remoteBrowser,
		ResourceBlocking: []string{"images", "fonts", "media"},
		Logger:           logger,
	})
	if _, err := mgr.Start(ctx); err != nil {
		slog.Error("start browser", "error", err)
		os.Exit(1)
	}
	defer mgr.Close()

	svc := pages.New(db, pages.NewScraper(mgr, cfg, logger), cfg, logger)

	// Router.
	r := chi.NewRouter()
	for _, mw := range shield.DefaultAPIStack() {
		r.Use(mw)
	}
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Mount("/api", svc.Routes())

	// Optional MCP stdio transport alongside HTTP.
	if mcpTransport == "stdio" {
		srv := mcp.NewServer(&mcp.Implementation{Name: "pageintel", Version: "1.0.0"}, nil)
		svc.RegisterMCP(srv)
		go func() {
			if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("mcp server", "error", err)
			}
		}()
		slog.Info("mcp stdio transport enabled")
	}

	httpSrv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutCancel()
		httpSrv.Shutdown(shutCtx)
	}()

	slog.Info("pageintel listening", "port", port, "db", dbPath)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server", "error", err)
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
