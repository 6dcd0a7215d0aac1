package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/archview/archview/internal/api"
	"github.com/archview/archview/pkg/cache"
	"github.com/archview/archview/pkg/config"
	"github.com/archview/archview/pkg/pipeline"
	"github.com/archview/archview/pkg/store"
	"github.com/archview/archview/pkg/store/mongo"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var configPath, listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the workspace HTTP API server",
		Long: `Serve runs the HTTP API for uploading workspaces and rendering
component views. Storage and cache backends are selected via a TOML config
file; without one the server uses an in-memory store and a file cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to TOML config file")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		c.Logger.SetLevel(level)
	}

	st, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			c.Logger.Warn("closing store", "error", err)
		}
	}()

	cch, err := newServerCache(ctx, cfg)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cch, c.Logger)
	defer runner.Close()
	// Validated by config.Load.
	runner.ArtifactTTL, _ = cfg.CacheTTL()

	srv := api.NewServer(st, runner, c.Logger)
	c.Logger.Info("starting server",
		"listen", cfg.Listen,
		"store", cfg.Store.Backend,
		"cache", cfg.Cache.Backend,
	)
	return srv.ListenAndServe(ctx, cfg.Listen)
}

func newStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreMongo:
		return mongo.New(ctx, mongo.Config{
			URI:        cfg.Store.URI,
			Database:   cfg.Store.Database,
			Collection: cfg.Store.Collection,
		})
	default:
		return store.NewMemoryStore(), nil
	}
}

func newServerCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
	case config.CacheFile:
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	default:
		return cache.NewNullCache(), nil
	}
}
