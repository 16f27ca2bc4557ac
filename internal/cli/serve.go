package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lyricspiral/pkg/cache"
	"github.com/matzehuels/lyricspiral/pkg/observability"
	"github.com/matzehuels/lyricspiral/pkg/pipeline"
	"github.com/matzehuels/lyricspiral/pkg/server"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		backend string
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API for the web front end.

Endpoints:
  GET  /api/health
  GET  /api/search?q=...
  GET  /api/lyrics?artist=...&track=...
  POST /api/layout
  POST /api/poster
  GET  /api/poster?artist=...&track=...

Examples:
  lyricspiral serve
  lyricspiral serve --addr :8080 --cache redis`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := c.Config
			if cmd.Flags().Changed("addr") || cfg.Server.Addr == "" {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("cache") {
				cfg.Cache.Backend = strings.ToLower(backend)
			}
			if cmd.Flags().Changed("allow-origin") {
				cfg.Server.AllowedOrigins = origins
			}
			c.Config = cfg

			cc, err := c.newCache(ctx, cfg.Cache.Backend == cache.BackendNone)
			if err != nil {
				return fmt.Errorf("initialize cache: %w", err)
			}
			runner := pipeline.NewRunner(cc, newKeyer(), c.Logger)
			defer runner.Close()

			observability.NewLogHooks(c.Logger).Register()
			defer observability.Reset()

			lyrics := c.newLyricsClient(cc)
			srv := server.New(server.Config{
				Addr:           cfg.Server.Addr,
				MaxTextLength:  cfg.Server.MaxTextLength,
				AllowedOrigins: cfg.Server.AllowedOrigins,
			}, runner, lyrics, c.Logger)

			printSuccess("Serving on %s", srv.Addr())
			printKeyValue("Cache", backendName(cfg.Cache.Backend))
			printKeyValue("Lyrics", lyrics.BaseURL())

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&backend, "cache", "", "cache backend: file, redis, mongo, none (default from config)")
	cmd.Flags().StringSliceVar(&origins, "allow-origin", nil, "CORS origins (default: any)")

	return cmd
}

func backendName(b string) string {
	if b == "" {
		return cache.BackendFile
	}
	return b
}
