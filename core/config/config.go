package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Upstream UpstreamConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Draft    DraftConfig
	Worker   WorkerConfig
}

type AppConfig struct {
	Name           string
	Env            string
	Host           string
	Port           int
	LogLevel       string
	LogFormat      string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// UpstreamConfig points at the time2gather REST API that owns meetings and submissions.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type JWTConfig struct {
	Secret string
}

type StorageConfig struct {
	Enabled   bool
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type DraftConfig struct {
	TTL       time.Duration
	ResultTTL time.Duration
}

type WorkerConfig struct {
	Concurrency int
}

var (
	mu       sync.RWMutex
	instance *Config
)

// Init loads .env (if present) and environment variables into the global config.
func Init() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg, err := load(v)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "time2gather-bff")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 7070)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "text")
	v.SetDefault("app.allowed_origins", "http://localhost:4321")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "time2gather")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("upstream.base_url", "http://api.time2gather.org")
	v.SetDefault("upstream.timeout", "8s")

	v.SetDefault("jwt.secret", "")

	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.region", "ap-northeast-2")

	v.SetDefault("draft.ttl", "2h")
	v.SetDefault("draft.result_ttl", "5m")

	v.SetDefault("worker.concurrency", 5)
}

func load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:           v.GetString("app.name"),
			Env:            v.GetString("app.env"),
			Host:           v.GetString("app.host"),
			Port:           v.GetInt("app.port"),
			LogLevel:       v.GetString("app.log_level"),
			LogFormat:      v.GetString("app.log_format"),
			AllowedOrigins: splitList(v.GetString("app.allowed_origins")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Upstream: UpstreamConfig{
			BaseURL: strings.TrimRight(v.GetString("upstream.base_url"), "/"),
			Timeout: v.GetDuration("upstream.timeout"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
		},
		Storage: StorageConfig{
			Enabled:   v.GetBool("storage.enabled"),
			Bucket:    v.GetString("storage.bucket"),
			Region:    v.GetString("storage.region"),
			Endpoint:  v.GetString("storage.endpoint"),
			AccessKey: v.GetString("storage.access_key"),
			SecretKey: v.GetString("storage.secret_key"),
		},
		Draft: DraftConfig{
			TTL:       v.GetDuration("draft.ttl"),
			ResultTTL: v.GetDuration("draft.result_ttl"),
		},
		Worker: WorkerConfig{
			Concurrency: v.GetInt("worker.concurrency"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the service cannot start without.
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid APP_PORT %d", c.App.Port)
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("invalid UPSTREAM_TIMEOUT %s", c.Upstream.Timeout)
	}
	if c.Storage.Enabled && c.Storage.Bucket == "" {
		return fmt.Errorf("STORAGE_BUCKET is required when STORAGE_ENABLED is set")
	}
	if c.Draft.TTL <= 0 {
		return fmt.Errorf("invalid DRAFT_TTL %s", c.Draft.TTL)
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Get returns the loaded config and panics if Init has not run.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config: Get called before Init")
	}
	return cfg
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
