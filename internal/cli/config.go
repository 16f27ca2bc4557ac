package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/lyricspiral/pkg/cache"
	"github.com/matzehuels/lyricspiral/pkg/pipeline"
	"github.com/matzehuels/lyricspiral/pkg/server"
)

// Environment variables that override the config file.
const (
	envRedisAddr = "LYRICSPIRAL_REDIS_ADDR"
	envMongoURI  = "LYRICSPIRAL_MONGO_URI"
)

// Config is the contents of config.toml.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Lyrics LyricsConfig `toml:"lyrics"`
}

type LayoutConfig struct {
	CanvasSize float64 `toml:"canvas_size"`
	PrintMode  bool    `toml:"print_mode"`
}

type RenderConfig struct {
	Formats []string `toml:"formats"`
	Theme   string   `toml:"theme"`
	Scale   float64  `toml:"scale"`
	Label   bool     `toml:"label"`
}

type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

type ServerConfig struct {
	Addr           string   `toml:"addr"`
	MaxTextLength  int      `toml:"max_text_length"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

type LyricsConfig struct {
	BaseURL string   `toml:"base_url"`
	TTL     duration `toml:"ttl"`
	Timeout duration `toml:"timeout"`
}

// duration reads TOML strings like "24h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Layout: LayoutConfig{CanvasSize: pipeline.DefaultCanvasSize},
		Render: RenderConfig{
			Formats: []string{pipeline.FormatSVG},
			Theme:   pipeline.DefaultTheme,
			Scale:   pipeline.DefaultScale,
		},
		Cache:  CacheConfig{Backend: cache.BackendFile},
		Server: ServerConfig{Addr: server.DefaultAddr},
		Lyrics: LyricsConfig{TTL: duration{cache.TTLHTTP}},
	}
}

// configPath returns $XDG_CONFIG_HOME/lyricspiral/config.toml, falling back
// to ~/.config/lyricspiral/config.toml.
func configPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads path over the defaults. An empty path uses the default
// location, where a missing file is not an error; an explicit path must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return applyEnv(cfg), nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return applyEnv(DefaultConfig()), nil
	case err != nil:
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if v := os.Getenv(envRedisAddr); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv(envMongoURI); v != "" {
		cfg.Cache.MongoURI = v
	}
	return cfg
}

// CacheConfig converts the [cache] section for cache.Open.
func (c Config) CacheConfig() cache.Config {
	return cache.Config{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		},
		Mongo: cache.MongoConfig{
			URI:      c.Cache.MongoURI,
			Database: c.Cache.MongoDatabase,
		},
	}
}
