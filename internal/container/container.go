package container

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"dogceo/browser/internal/client"
	"dogceo/browser/internal/config"
	"dogceo/browser/internal/detail"
	"dogceo/browser/internal/domain"
	"dogceo/browser/internal/enrich"
	"dogceo/browser/internal/proxy"
	"dogceo/browser/internal/service"

	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config   *config.Config
	Client   client.DogClient
	Images   *domain.ImageSet
	Worker   *enrich.Worker
	Resolver *detail.Resolver

	Service *service.Service

	logFile io.Closer
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{
		Config: cfg,
	}

	probeURL := strings.TrimRight(cfg.DogAPI.BaseURL, "/") + "/breeds/list/all"
	proxySupplier := proxy.NewSupplier(ctx, cfg.DogAPI.Proxies, probeURL)

	return c.wire(client.NewDogClient(cfg.DogAPI, proxySupplier)), nil
}

// NewWithClient wires the container around an existing client.
func NewWithClient(cfg *config.Config, dogClient client.DogClient) *Container {
	c := &Container{Config: cfg}
	return c.wire(dogClient)
}

func (c *Container) wire(dogClient client.DogClient) *Container {
	cfg := c.Config

	c.Client = dogClient
	c.Images = domain.NewImageSet()
	c.Worker = enrich.NewWorker(dogClient, c.Images, cfg.Catalog.SampleSize, cfg.DogAPI.MaxWorkers)
	c.Resolver = detail.NewResolver(dogClient, c.Images, cfg.Catalog.DetailPlaceholder)
	c.Service = service.NewService(dogClient, c.Images, c.Worker, c.Resolver, cfg.Catalog.Placeholder)

	return c
}

// ConfigureLogging applies the log config. With toFile set, output goes to
// log.file so it does not draw over the terminal UI.
func (c *Container) ConfigureLogging(toFile bool) error {
	level, err := log.ParseLevel(c.Config.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)

	if c.Config.Log.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if toFile && c.Config.Log.File != "" {
		f, err := os.OpenFile(c.Config.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		log.SetOutput(f)
		c.logFile = f
	}

	return nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	err := c.Service.Close()

	if c.logFile != nil {
		log.SetOutput(os.Stderr)
		if cerr := c.logFile.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	return err
}
