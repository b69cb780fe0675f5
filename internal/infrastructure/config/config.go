package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the explicit configuration injected at construction time.
// Nothing outside this package reads the process environment.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Token   TokenConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Media   MediaConfig
	History HistoryConfig
}

// TokenConfig carries the signing secrets and token validity windows.
type TokenConfig struct {
	AccessSecret  string        `env:"ACCESS_TOKEN_SECRET"`
	RefreshSecret string        `env:"REFRESH_TOKEN_SECRET"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL, default=240h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=vidtube"`
}

type RedisConfig struct {
	Addr            string        `env:"REDIS_ADDR, default=localhost:6379"`
	DB              int           `env:"REDIS_DB,   default=0"`
	ProfileCacheTTL time.Duration `env:"PROFILE_CACHE_TTL, default=30s"`
}

// MediaConfig configures the S3-compatible object store serving avatars,
// cover images and video files.
type MediaConfig struct {
	Endpoint      string `env:"MEDIA_S3_ENDPOINT"`
	Region        string `env:"MEDIA_S3_REGION, default=us-east-1"`
	Bucket        string `env:"MEDIA_S3_BUCKET, default=vidtube-media"`
	AccessKey     string `env:"MEDIA_S3_ACCESS_KEY"`
	SecretKey     string `env:"MEDIA_S3_SECRET_KEY"`
	PublicBaseURL string `env:"MEDIA_PUBLIC_BASE_URL"`
}

type HistoryConfig struct {
	Workers int `env:"HISTORY_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
