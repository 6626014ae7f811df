package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/graph-module/graphdraw/internal/server"
	"github.com/graph-module/graphdraw/pkg/cache"
	"github.com/graph-module/graphdraw/pkg/pipeline"
	"github.com/graph-module/graphdraw/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	redisURL  string
	mongoURI  string
	mongoDB   string
	noMetrics bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render and scene API over HTTP",
		Long: `Serve starts the HTTP API. Artifacts are cached in Redis when --redis is
set and in the local cache directory otherwise. Scenes are stored in MongoDB
when --mongo is set and in memory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for the artifact cache (redis://host:6379/0)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for scene storage")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "", "MongoDB database name (default graphdraw)")
	cmd.Flags().BoolVar(&opts.noMetrics, "no-metrics", false, "disable the /metrics endpoint")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	artifacts, err := c.serverCache(ctx, opts.redisURL)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(artifacts, c.Logger)
	defer runner.Close()

	scenes, err := c.serverStore(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := scenes.Close(closeCtx); err != nil {
			c.Logger.Warn("close store", "error", err)
		}
	}()

	var metrics *server.Metrics
	if !opts.noMetrics {
		metrics = server.NewMetrics()
		metrics.Register()
	}

	srv := server.New(server.Config{
		Runner:  runner,
		Store:   scenes,
		Logger:  c.Logger,
		Metrics: metrics,
	})
	return srv.ListenAndServe(ctx, opts.addr)
}

// serverCache picks Redis when a URL is given, else the CLI cache.
func (c *CLI) serverCache(ctx context.Context, redisURL string) (cache.Cache, error) {
	if redisURL == "" {
		return newCache(c.noCache)
	}
	rc, err := cache.NewRedisCache(ctx, redisURL)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using redis cache")
	return cache.NewScoped(rc, appName+":"), nil
}

// serverStore picks MongoDB when a URI is given, else memory.
func (c *CLI) serverStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	if opts.mongoURI == "" {
		c.Logger.Warn("no --mongo given, scenes are kept in memory")
		return store.NewMemoryStore(), nil
	}
	s, err := store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB, "")
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using mongodb store")
	return s, nil
}
