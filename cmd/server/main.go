package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"botadmin-backend/internal/config"
	deliveryhttp "botadmin-backend/internal/delivery/http"
	"botadmin-backend/internal/infrastructure/auth"
	"botadmin-backend/internal/infrastructure/db"
	"botadmin-backend/internal/repository"
	"botadmin-backend/internal/usecase"
)

var (
	cfgFile string
	logger  *logrus.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "botadmin",
		Short: "Administration backend for Polymarket up/down trading bots",
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard and API server",
		Run:   runServe,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create tables and views on a fresh database",
		Run:   runMigrate,
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func setup() *config.Config {
	// A missing .env is fine; the environment may be set by the supervisor.
	_ = godotenv.Load()

	logger = logrus.New()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		logger.WithError(err).Error("Invalid log level, using INFO")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return cfg
}

func connect(ctx context.Context, cfg *config.Config) *pgxpool.Pool {
	if cfg.Database.URL == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	pool, err := db.NewPool(ctx, cfg.Database.URL, db.PoolConfig{
		MaxConns:          cfg.Database.MaxConns,
		MinConns:          cfg.Database.MinConns,
		MaxConnLifetime:   cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:   cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod: cfg.Database.HealthCheckPeriod,
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	return pool
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := connect(ctx, cfg)
	defer pool.Close()

	verifier, err := auth.NewFirebaseVerifier(ctx, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize auth")
	}

	botRepo := repository.NewPostgresBotRepository(pool)
	serverRepo := repository.NewPostgresServerRepository(pool)

	handler := deliveryhttp.NewRouter(deliveryhttp.Deps{
		Trades:   repository.NewPostgresTradeRepository(pool),
		Sessions: repository.NewPostgresSessionRepository(pool),
		Bots:     botRepo,
		Servers:  serverRepo,
		BotSvc:   usecase.NewBotService(botRepo, serverRepo, logger),
		Verifier: verifier,
		Log:      logger,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: handler,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}
	logger.Info("Server stopped")
}

func runMigrate(cmd *cobra.Command, args []string) {
	cfg := setup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool := connect(ctx, cfg)
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logger.WithError(err).Fatal("Migration failed")
	}
	logger.Info("Migration complete")
}
