package main

import (
	"context"
	"fmt"

	"dogceo/browser/internal/config"
	"dogceo/browser/internal/container"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string

	// newContainer builds the application from the loaded config.
	newContainer func(ctx context.Context, cfg *config.Config) (*container.Container, error)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{newContainer: container.New}

	cmd := &cobra.Command{
		Use:   "dogbrowser",
		Short: "Browse the Dog CEO breed catalog from the terminal",
		Long: `dogbrowser loads the Dog CEO breed list, fetches a few sample images
per breed in the background and lets you search breeds, open their details
and flip through their images.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to config.yaml")

	cmd.AddCommand(
		newBrowseCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newExportCmd(opts),
	)

	return cmd
}

// setup loads configuration and builds the container.
func setup(ctx context.Context, opts *rootOptions, logToFile bool) (*container.Container, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	app, err := opts.newContainer(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize container: %w", err)
	}

	if err := app.ConfigureLogging(logToFile); err != nil {
		_ = app.Close()
		return nil, err
	}

	log.Debugf("Configuration loaded, API at %s", cfg.DogAPI.BaseURL)
	return app, nil
}
