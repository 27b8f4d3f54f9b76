// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/iconfinder"
	"github.com/poiesic/iconfinder/ai"
	"github.com/poiesic/iconfinder/api"
	"github.com/poiesic/iconfinder/config"
	"github.com/poiesic/iconfinder/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "iconfinder",
		Usage: "Find icons for free-text concepts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
				EnvVars: []string{"ICONFINDER_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "Path to the icon catalog JSON file",
			},
			&cli.StringFlag{
				Name:    "index",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB index directory",
			},
			&cli.StringFlag{
				Name:  "embedding-host",
				Usage: "Embedding service host URL",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Print icon paths for a query",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "k",
						Aliases: []string{"n"},
						Usage:   "Maximum number of icons to return",
						Value:   1,
					},
				},
			},
			{
				Name:   "index",
				Usage:  "Build the vector index if needed and report the search tier",
				Action: indexCommand,
			},
			{
				Name:   "serve",
				Usage:  "Serve icon search over HTTP",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
					},
				},
			},
		},
	}
}

const configKey = "config"

// setup loads the configuration, applies flag overrides and installs the logger.
func setup(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}
	if c.IsSet("catalog") {
		cfg.Catalog.Path = c.String("catalog")
	}
	if c.IsSet("index") {
		cfg.Index.Path = c.String("index")
	}
	if c.IsSet("embedding-host") {
		cfg.Embedding.Host = c.String("embedding-host")
	}
	if c.IsSet("embedding-model") {
		cfg.Embedding.Model = c.String("embedding-model")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := setupLogger(cfg.Logging.Level); err != nil {
		return err
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

func configFrom(c *cli.Context) config.Config {
	return c.App.Metadata[configKey].(config.Config)
}

// openFinder builds a Finder from the configuration. Extra options are
// applied last.
func openFinder(ctx context.Context, cfg config.Config, opts ...iconfinder.Option) (*iconfinder.Finder, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(cfg.Embedding.Host),
		ai.WithEmbeddingModel(cfg.Embedding.Model),
		ai.WithAPIToken(cfg.Embedding.APIToken),
		ai.WithBatchSize(cfg.Index.BatchSize),
	)

	base := []iconfinder.Option{
		iconfinder.WithCatalogPath(cfg.Catalog.Path),
		iconfinder.WithIndexPath(cfg.Index.Path),
		iconfinder.WithCollectionName(cfg.Index.Collection),
		iconfinder.WithBatchSize(cfg.Index.BatchSize),
		iconfinder.WithAIConfig(aiConfig),
		iconfinder.WithQueryTimeout(cfg.Search.QueryTimeout()),
	}
	if cfg.Search.PoolSize > 0 {
		base = append(base, iconfinder.WithPoolSize(cfg.Search.PoolSize))
	}
	return iconfinder.New(ctx, append(base, opts...)...)
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("a query is required")
	}

	finder, err := openFinder(c.Context, configFrom(c))
	if err != nil {
		return err
	}
	defer finder.Close()

	for _, path := range finder.SearchIcons(c.Context, query, c.Int("k")) {
		fmt.Fprintln(c.App.Writer, path)
	}
	return nil
}

func indexCommand(c *cli.Context) error {
	cfg := configFrom(c)
	start := time.Now()

	finder, err := openFinder(c.Context, cfg)
	if err != nil {
		return err
	}
	defer finder.Close()

	errOut := c.App.ErrWriter
	fmt.Fprintf(errOut, "Catalog: %s\n", cfg.Catalog.Path)
	fmt.Fprintf(errOut, "Index: %s\n", cfg.Index.Path)
	fmt.Fprintf(errOut, "Embedding host: %s\n", cfg.Embedding.Host)
	fmt.Fprintf(errOut, "Embedding model: %s\n", cfg.Embedding.Model)
	fmt.Fprintln(errOut)

	out := c.App.Writer
	fmt.Fprintf(out, "Search tier: %s\n", finder.Tier())
	if info, ok := finder.IndexInfo(); ok {
		fmt.Fprintf(out, "Collection: %s (%d icons, %d dimensions, model %s)\n",
			info.Name, info.Count, info.Dimensions, info.EmbeddingModel)
		fmt.Fprintf(out, "Catalog fingerprint: %s\n", info.Fingerprint)
	}
	fmt.Fprintf(out, "Elapsed: %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func serveCommand(c *cli.Context) error {
	cfg := configFrom(c)
	if c.IsSet("addr") {
		cfg.HTTP.Addr = c.String("addr")
	}

	monitor, err := metrics.NewMonitor(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	finder, err := openFinder(c.Context, cfg, iconfinder.WithMonitor(monitor))
	if err != nil {
		return err
	}
	defer finder.Close()

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      api.NewServer(finder, slog.Default()).Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting HTTP server", "addr", cfg.HTTP.Addr, "tier", finder.Tier())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	slog.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "err", err)
	}
	slog.Info("server stopped gracefully")
	return nil
}

func setupLogger(levelStr string) error {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
