// Package cli implements the lyricspiral command-line interface.
//
// # Commands
//
//   - layout: compute a layout document from text
//   - visualize: render a layout document
//   - render: text straight to SVG, PNG, PDF or JSON
//   - search: find songs on lrclib, optionally pick one interactively
//   - poster: fetch lyrics for a song and render them
//   - serve: run the HTTP API
//   - cache: manage the local cache
//
// Text input is a file path or "-" for stdin. Settings come from
// $XDG_CONFIG_HOME/lyricspiral/config.toml and are overridden by flags.
package cli

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lyricspiral/pkg/buildinfo"
	"github.com/matzehuels/lyricspiral/pkg/cache"
	"github.com/matzehuels/lyricspiral/pkg/integrations/lrclib"
	"github.com/matzehuels/lyricspiral/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "lyricspiral"

// cacheScope prefixes every cache key so deployments sharing a Redis or
// Mongo cache do not collide. Bump the version when cached formats change.
const cacheScope = appName + ":v1:"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
	stdin      io.Reader
	stdout     io.Writer
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Lyricspiral sets song lyrics along an Archimedean spiral",
		Long:         `Lyricspiral lays out the characters of a text along an outward spiral and renders the result as a poster in SVG, PNG, PDF or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/lyricspiral/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.posterCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Factories
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, newKeyer(), c.Logger), nil
}

// newCache opens the configured cache backend. The CLI falls back to no
// caching when the cache directory cannot be determined.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.CacheConfig()
	if cfg.Backend == "" || cfg.Backend == cache.BackendFile {
		if cfg.Dir == "" {
			dir, err := cacheDir()
			if err != nil {
				c.Logger.Warn("caching disabled", "err", err)
				return cache.NewNullCache(), nil
			}
			cfg.Dir = dir
		}
	}
	return cache.Open(ctx, cfg)
}

// newKeyer returns the keyer shared by the runner and the lyrics client.
func newKeyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, cacheScope)
}

// newLyricsClient creates an lrclib client sharing cc.
func (c *CLI) newLyricsClient(cc cache.Cache) *lrclib.Client {
	client := lrclib.NewClient(cc, c.Config.Lyrics.BaseURL, c.Config.Lyrics.TTL.Duration)
	client.WithKeyer(newKeyer())
	if t := c.Config.Lyrics.Timeout.Duration; t > 0 {
		client.WithHTTPClient(&http.Client{Timeout: t})
	}
	return client
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/lyricspiral/).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(strings.ToLower(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
