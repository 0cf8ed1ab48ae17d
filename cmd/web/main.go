package main

import (
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/de-tools/fabric-atlas/pkg/app"
	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/de-tools/fabric-atlas/pkg/server"
	"github.com/de-tools/fabric-atlas/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	settingsPath string
	sourcesPath  string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Fabric Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&settingsPath, "settings", "s", "", "Path to a settings file (YAML)")
	rootCmd.Flags().StringVarP(&sourcesPath, "config", "c", "",
		"Path to the source profiles file (default is $HOME/.fabricatlas.cfg)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return err
	}
	if sourcesPath != "" {
		settings.Sources.Path = sourcesPath
	}

	a, err := app.New(ctx, settings)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to release resources")
		}
	}()

	if err := a.Sync.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize sync controller: %w", err)
	}
	for _, source := range settings.Sync.Sources {
		err := a.Sync.Start(ctx, source)
		if err != nil && !errors.Is(err, domain.ErrSyncAlreadyRunning) {
			logger.Error().Err(err).Str("source", source).Msg("failed to start order sync")
		}
	}

	logger.Info().Msgf("Source profiles loaded from `%s`.", settings.Sources.Path)
	logger.Info().Msgf("Found the following sources:")
	profiles, _ := a.Catalog.Profiles(ctx)
	for _, profile := range profiles {
		logger.Info().Msgf("Name: `%s`, Type: `%s`", profile.Name, profile.Type)
	}

	api := server.NewWebAPI(server.Config{
		Addr:            net.JoinHostPort(settings.Server.Host, settings.Server.Port),
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Analytics: a.Analytics,
			Sync:      a.Sync,
			Logger:    logger,
		},
	})

	return api.Start()
}
