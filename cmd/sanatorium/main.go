package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/thesanatorium/website/internal/config"
	"github.com/thesanatorium/website/internal/database"
	"github.com/thesanatorium/website/internal/logging"
	"gorm.io/gorm"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "sanatorium",
	Short:         "The Sanatorium website and its admin commands",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "path to the YAML config file (optional)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initDBCmd)
	rootCmd.AddCommand(seedDBCmd)
	rootCmd.AddCommand(exportBookingsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app is what every command needs: config, a logger and a database.
type app struct {
	cfg    *config.Config
	log    *zerolog.Logger
	db     *gorm.DB
	closer io.Closer
}

func boot(component string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	base, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger := base.With().Str("component", component).Logger()

	db, err := database.Open(cfg.Database, &logger)
	if err != nil {
		logger.Error().Err(err).Str("driver", cfg.Database.Driver).Msg("open database")
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}

	return &app{cfg: cfg, log: &logger, db: db, closer: closer}, nil
}

func (a *app) Close() {
	if err := database.Close(a.db); err != nil {
		a.log.Warn().Err(err).Msg("close database")
	}
	if a.closer != nil {
		_ = a.closer.Close()
	}
}
