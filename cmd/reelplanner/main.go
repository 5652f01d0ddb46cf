package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"reel_planner/internal/api"
	"reel_planner/internal/config"
	"reel_planner/internal/generator"
	"reel_planner/internal/publisher"
	"reel_planner/internal/service"
	"reel_planner/internal/storage/sqlstore"
	"reel_planner/internal/storage/supabase"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:          "reelplanner",
		Short:        "Instagram reel idea planner API",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(w io.Writer) (*config.Config, *slog.Logger, error) {
	logger := setupLogger(w, "info")

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return nil, nil, err
	}

	return cfg, setupLogger(w, cfg.LogLevel), nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(os.Stdout)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				logger.Error("invalid config", "error", err)
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				sig := <-sigCh
				logger.Info("received shutdown signal", "signal", sig)
				cancel()
			}()

			store, closeStore, err := newStore(ctx, cfg, logger)
			if err != nil {
				logger.Error("failed to open store", "driver", cfg.Database.Driver, "error", err)
				return err
			}
			defer closeStore()

			gen, err := newGenerator(ctx, cfg, logger)
			if err != nil {
				logger.Error("failed to create generator", "error", err)
				return err
			}

			// Must stay an untyped nil when publishing is disabled.
			var pub service.Publisher
			if cfg.RabbitMQ.Enabled() {
				rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
					URL:        cfg.RabbitMQ.URL,
					Exchange:   cfg.RabbitMQ.Exchange,
					RoutingKey: cfg.RabbitMQ.RoutingKey,
					QueueName:  cfg.RabbitMQ.QueueName,
				}, logger)
				if err != nil {
					logger.Error("failed to connect to rabbitmq", "error", err)
					return err
				}
				defer rabbitMQ.Close()
				pub = rabbitMQ
			}

			ideas := service.NewIdeaService(gen, store, pub, logger)

			server := api.New(ideas, api.Config{
				AppName:         cfg.AppName,
				Addr:            cfg.Server.Addr,
				ReadTimeout:     cfg.Server.ReadTimeout,
				WriteTimeout:    cfg.Server.WriteTimeout,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
				AllowedOrigins:  cfg.CORS.AllowedOrigins,
			}, logger)

			logger.Info("starting reel planner",
				"environment", cfg.Environment,
				"driver", cfg.Database.Driver,
				"live_generator", cfg.Gemini.Live(),
				"events", cfg.RabbitMQ.Enabled(),
			)

			return server.Run(ctx)
		},
	}
}

func generateCmd() *cobra.Command {
	var (
		mock  bool
		count int
	)

	cmd := &cobra.Command{
		Use:   "generate [niche]",
		Short: "Generate reel ideas for a niche and print them as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(os.Stderr)
			if err != nil {
				return err
			}
			if mock {
				cfg.Gemini.Mock = true
			}
			if count > 0 {
				cfg.Gemini.MockCount = count
			}

			ctx := cmd.Context()

			gen, err := newGenerator(ctx, cfg, logger)
			if err != nil {
				return err
			}

			ideas, err := service.NewIdeaService(gen, nil, nil, logger).Generate(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(ideas)
		},
	}

	cmd.Flags().BoolVar(&mock, "mock", false, "use the template generator instead of Gemini")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of mock ideas (1-10)")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the saved_ideas table for the postgres or sqlite3 driver",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(os.Stdout)
			if err != nil {
				return err
			}
			if cfg.Database.Driver == config.DriverSupabase {
				return errors.New("migrate needs the postgres or sqlite3 driver; create the supabase table from the project dashboard")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()

			db, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := sqlstore.NewIdeaStore(db).Migrate(ctx); err != nil {
				return err
			}

			logger.Info("schema ready", "driver", cfg.Database.Driver)
			return nil
		},
	}
}

func newStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.IdeaStore, func(), error) {
	if cfg.Database.Driver == config.DriverSupabase {
		store, err := supabase.New(supabase.Config{
			URL:     cfg.Database.SupabaseURL,
			AnonKey: cfg.Database.SupabaseAnonKey,
			Table:   cfg.Database.Table,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}

	db, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("connected to database", "driver", cfg.Database.Driver)

	store := sqlstore.NewIdeaStore(db)
	if cfg.Database.Driver == config.DriverSQLite {
		if err := store.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
	}

	return store, func() { db.Close() }, nil
}

func newGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Generator, error) {
	if !cfg.Gemini.Live() {
		logger.Info("using mock idea generator", "count", cfg.Gemini.MockCount)
		return generator.NewMock(nil, cfg.Gemini.MockCount), nil
	}

	gemini, err := generator.NewGemini(ctx, generator.GeminiConfig{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.Gemini.Timeout,
	}, logger)
	if err != nil {
		return nil, err
	}
	return gemini, nil
}

func setupLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(w, opts)
	return slog.New(handler)
}
