package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend string
	Dir     string
	Redis   RedisConfig
	Mongo   MongoConfig
}

// Open returns the backend named by cfg.Backend. An empty backend means file.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case "", BackendFile:
		return NewFileCache(cfg.Dir)
	case BackendRedis:
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("redis cache: no address configured")
		}
		return NewRedisCache(ctx, cfg.Redis)
	case BackendMongo:
		if cfg.Mongo.URI == "" {
			return nil, fmt.Errorf("mongo cache: no URI configured")
		}
		return NewMongoCache(ctx, cfg.Mongo)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
