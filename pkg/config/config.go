package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	MinUpstreamTimeout = 30 * time.Second
	MaxUpstreamTimeout = 120 * time.Second
)

type Config struct {
	Environment string        `yaml:"environment" default:"development" validate:"required"`
	Server      ServerConfig  `yaml:"server"`
	Log         LogConfig     `yaml:"log"`
	Metrics     MetricsConfig `yaml:"metrics"`
	LLM         LLMConfig     `yaml:"llm"`
	Proxy       ProxyConfig   `yaml:"proxy"`
	Market      MarketConfig  `yaml:"market"`
	Cache       CacheConfig   `yaml:"cache"`
	Signal      SignalConfig  `yaml:"signal"`
	Kafka       KafkaConfig   `yaml:"kafka"`
	Feed        FeedConfig    `yaml:"feed"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"150s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
}

type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" default:"json" validate:"oneof=json console"`
	Output string `yaml:"output" default:"stdout"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	Path    string `yaml:"path" default:"/metrics"`
}

type LLMConfig struct {
	// Mode is live, mock, or auto. auto falls back to mock when no credential is present.
	Mode          string        `yaml:"mode" default:"auto" validate:"oneof=live mock auto"`
	BaseURL       string        `yaml:"base_url" default:"https://api.perplexity.ai" validate:"required,url"`
	ChatPath      string        `yaml:"chat_path" default:"/v1/chat/completions"`
	Model         string        `yaml:"model" default:"sonar"`
	Temperature   float64       `yaml:"temperature" default:"0.7" validate:"gte=0,lte=2"`
	MaxTokens     int           `yaml:"max_tokens" default:"800" validate:"gte=1"`
	Timeout       time.Duration `yaml:"timeout" default:"60s"`
	CredentialEnv string        `yaml:"credential_env" default:"TRAXOR_LLM_API_KEY" validate:"required"`
}

type ProxyConfig struct {
	Enabled          bool    `yaml:"enabled" default:"true"`
	RateCapacity     int     `yaml:"rate_capacity" default:"20" validate:"gte=0"`
	RateRefillPerSec float64 `yaml:"rate_refill_per_sec" default:"0.5" validate:"gte=0"`
}

type MarketConfig struct {
	BaseURL      string        `yaml:"base_url" default:"https://api.coingecko.com/api/v3" validate:"required,url"`
	Timeout      time.Duration `yaml:"timeout" default:"5s"`
	CacheTTL     time.Duration `yaml:"cache_ttl" default:"60s" validate:"gt=0"`
	WarmSchedule string        `yaml:"warm_schedule" default:"@every 1m"`
	Watchlist    []string      `yaml:"watchlist"`
}

type CacheConfig struct {
	Backend       string      `yaml:"backend" default:"memory" validate:"oneof=memory redis layered"`
	MemoryMaxSize int         `yaml:"memory_max_size" default:"1000" validate:"gte=1"`
	Redis         RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Host     string `yaml:"host" default:"localhost"`
	Port     int    `yaml:"port" default:"6379"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix" default:"traxor"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type SignalConfig struct {
	DefaultSymbol    string `yaml:"default_symbol" default:"SOL" validate:"required,alpha,uppercase"`
	InsightMinLength int    `yaml:"insight_min_length" default:"50" validate:"gte=0"`
	SourceCount      int    `yaml:"source_count" default:"3" validate:"gte=1"`
	HistoryLimit     int    `yaml:"history_limit" default:"200" validate:"gte=1"`
}

type KafkaConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Brokers        []string      `yaml:"brokers"`
	LogTopic       string        `yaml:"log_topic" default:"traxor.errors"`
	FlushInterval  time.Duration `yaml:"flush_interval" default:"30s"`
	FlushThreshold int           `yaml:"flush_threshold" default:"100"`
	RequiredAcks   int           `yaml:"required_acks" default:"1"`
	MaxAttempts    int           `yaml:"max_attempts" default:"3" validate:"gte=1"`
	WriteTimeout   time.Duration `yaml:"write_timeout" default:"10s"`
}

type FeedConfig struct {
	Enabled    bool `yaml:"enabled" default:"true"`
	BufferSize int  `yaml:"buffer_size" default:"16" validate:"gte=1"`
}

// Default returns a config populated only from struct defaults.
func Default() *Config {
	var c Config
	_ = defaults.Set(&c)
	return &c
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes on top of struct defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads .env (if present), the YAML file, and then applies
// environment overrides.
func LoadWithEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if err := c.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := getenv("LLM_MODE"); v != "" {
		c.LLM.Mode = v
	}
	if v := getenv("MARKET_BASE_URL"); v != "" {
		c.Market.BaseURL = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Cache.Redis.Host = host
		if ok {
			p, err := strconv.Atoi(port)
			if err != nil {
				return fmt.Errorf("REDIS_ADDR: %w", err)
			}
			c.Cache.Redis.Port = p
		}
	}
	if v := getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
		c.Kafka.Enabled = true
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

var validate = validator.New()

// Validate checks struct tags and the rules that span fields.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.LLM.Timeout < MinUpstreamTimeout || c.LLM.Timeout > MaxUpstreamTimeout {
		return fmt.Errorf("llm.timeout must be between %s and %s, got %s", MinUpstreamTimeout, MaxUpstreamTimeout, c.LLM.Timeout)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if !strings.HasPrefix(c.LLM.ChatPath, "/") {
		return fmt.Errorf("llm.chat_path must start with '/', got '%s'", c.LLM.ChatPath)
	}
	return nil
}
