package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	EnableCORS   bool          `mapstructure:"enable_cors"`
}

type ElasticsearchConfig struct {
	URLs        []string             `mapstructure:"urls"`
	Username    string               `mapstructure:"username"`
	Password    string               `mapstructure:"password"`
	Sniff       bool                 `mapstructure:"sniff"`
	Healthcheck bool                 `mapstructure:"healthcheck"`
	Breaker     CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	MaxFailures  uint32        `mapstructure:"max_failures"`
	ResetTimeout time.Duration `mapstructure:"reset_timeout"`
	Interval     time.Duration `mapstructure:"interval"`
}

// DatabaseConfig points at the relational hotel store. An empty host disables
// the hotel lookup endpoint.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// RateLimitConfig selects the limiter backend: "redis", "local" or "none".
type RateLimitConfig struct {
	Backend     string        `mapstructure:"backend"`
	MaxRequests int           `mapstructure:"max_requests"`
	Window      time.Duration `mapstructure:"window"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

func LoadConfig() (*Config, error) {
	var err error
	if err = gotenv.Load("../.env"); err != nil {
		_ = gotenv.Load()
	}

	return Load(".", "..")
}

// Load reads config.yaml from the first matching path and applies environment
// overrides such as SEARCH_SERVER_PORT.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal goes through AllSettings, which merges defaults and env overrides.
	var root struct {
		Search Config `mapstructure:"search"`
	}
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config := root.Search

	expandConfigEnvVars(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("search.server.host", "0.0.0.0")
	v.SetDefault("search.server.port", 8089)
	v.SetDefault("search.server.read_timeout", 10*time.Second)
	v.SetDefault("search.server.write_timeout", 10*time.Second)
	v.SetDefault("search.server.idle_timeout", 60*time.Second)
	v.SetDefault("search.elasticsearch.urls", []string{"http://127.0.0.1:9200"})
	v.SetDefault("search.elasticsearch.circuit_breaker.max_failures", 5)
	v.SetDefault("search.elasticsearch.circuit_breaker.reset_timeout", 30*time.Second)
	v.SetDefault("search.database.port", 5432)
	v.SetDefault("search.database.ssl_mode", "disable")
	v.SetDefault("search.redis.port", 6379)
	v.SetDefault("search.redis.pool_size", 10)
	v.SetDefault("search.redis.dial_timeout", 2*time.Second)
	v.SetDefault("search.rate_limit.backend", "local")
	v.SetDefault("search.rate_limit.max_requests", 100)
	v.SetDefault("search.rate_limit.window", time.Minute)
	v.SetDefault("search.logging.level", "info")
	v.SetDefault("search.logging.format", "text")
}

func expandConfigEnvVars(config *Config) {
	config.Server.Host = os.ExpandEnv(config.Server.Host)

	for i, url := range config.Elasticsearch.URLs {
		config.Elasticsearch.URLs[i] = os.ExpandEnv(url)
	}
	config.Elasticsearch.Username = os.ExpandEnv(config.Elasticsearch.Username)
	config.Elasticsearch.Password = os.ExpandEnv(config.Elasticsearch.Password)

	config.Database.Host = os.ExpandEnv(config.Database.Host)
	config.Database.Username = os.ExpandEnv(config.Database.Username)
	config.Database.Password = os.ExpandEnv(config.Database.Password)
	config.Database.Database = os.ExpandEnv(config.Database.Database)

	config.Redis.Host = os.ExpandEnv(config.Redis.Host)
	config.Redis.Password = os.ExpandEnv(config.Redis.Password)
}

func (c *DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode)
}

func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) Validate() error {
	if len(c.Elasticsearch.URLs) == 0 {
		return fmt.Errorf("at least one elasticsearch URL is required")
	}

	for i, url := range c.Elasticsearch.URLs {
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			c.Elasticsearch.URLs[i] = "http://" + url
		}
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.RateLimit.Backend {
	case "redis":
		if c.Redis.Host == "" {
			return fmt.Errorf("redis host is required for the redis rate limiter")
		}
	case "local", "none":
	default:
		return fmt.Errorf("unknown rate limit backend: %q", c.RateLimit.Backend)
	}

	if c.RateLimit.Backend != "none" && (c.RateLimit.MaxRequests <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("rate limit needs positive max_requests and window")
	}

	return nil
}
