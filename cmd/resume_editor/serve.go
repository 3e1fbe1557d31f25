package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-editor/internal/browser"
	"github.com/jonathan/resume-editor/internal/config"
	"github.com/jonathan/resume-editor/internal/db"
	"github.com/jonathan/resume-editor/internal/export"
	"github.com/jonathan/resume-editor/internal/llm"
	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/server"
	"github.com/jonathan/resume-editor/internal/session"
)

var (
	servePort       int
	serveConfigFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the editing API server",
	Long:  `Start an HTTP server that exposes the session-based editing, preview and PDF export endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides RESUME_EDITOR_PORT)")
	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "Path to a JSON or YAML config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigFile)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogPretty)

	srv, err := buildServer(context.Background(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}

// buildServer assembles the server from cfg.
func buildServer(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*server.Server, error) {
	var closers []func()
	cleanup := func() {
		for _, fn := range closers {
			fn()
		}
	}

	users, closeUsers, err := openUserStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if closeUsers != nil {
		closers = append(closers, closeUsers)
	}

	jwtConfig, err := cfg.JWT()
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	passwordConfig, err := cfg.Password()
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}

	renderer, err := rendering.Default()
	if err != nil {
		cleanup()
		return nil, err
	}

	primary, builtin := renderServices(cfg, logger)

	suggester, err := llm.NewGeminiSuggester(ctx, llm.DefaultConfig().WithModel(llm.TierStandard, cfg.GeminiModel), cfg.GeminiAPIKey, logger)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	closers = append(closers, func() { _ = suggester.Close() })

	srv, err := server.New(server.Config{
		Port:   cfg.Port,
		Logger: logger,
		Sessions: session.NewStore(session.Options{
			TTL:          cfg.SessionTTL,
			HistoryLimit: cfg.HistoryLimit,
			Style:        cfg.Style(),
		}),
		Users:         users,
		JWT:           jwtConfig,
		Password:      passwordConfig,
		Renderer:      renderer,
		Exporter:      export.NewExporter(primary, export.NewLocalFallback(newBrowser(cfg, logger)), logger),
		RenderService: builtin,
		Suggester:     suggester,
		OnShutdown:    closers,
	})
	if err != nil {
		cleanup()
		return nil, err
	}
	return srv, nil
}

// openUserStore opens the PostgreSQL directory when a database URL is set and
// the users file otherwise.
func openUserStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (db.UserStore, func(), error) {
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		logger.Info().Msg("using PostgreSQL user directory")
		return database, database.Close, nil
	}

	store, err := db.LoadFileStore(cfg.UsersFile)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Str("file", cfg.UsersFile).Msg("using file user directory")
	return store, nil, nil
}

// renderServices picks the primary export path and the service behind
// POST /api/generate-pdf. An external URL wins over the built-in browser.
func renderServices(cfg *config.Config, logger zerolog.Logger) (primary, builtin export.RenderService) {
	if cfg.BuiltinRenderService {
		builtin = export.NewBrowserRenderService(newBrowser(cfg, logger))
	}
	switch {
	case cfg.RenderServiceURL != "":
		primary = export.NewHTTPRenderService(cfg.RenderServiceURL, cfg.RenderServiceTimeout)
	case builtin != nil:
		primary = builtin
	}
	return primary, builtin
}

func newBrowser(cfg *config.Config, logger zerolog.Logger) *browser.Browser {
	return browser.New(browser.Options{
		ExecPath: cfg.ChromePath,
		Timeout:  cfg.RenderServiceTimeout,
	}, logger)
}
