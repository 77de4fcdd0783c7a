package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service.
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	Knowledge KnowledgeConfig `mapstructure:"knowledge"`
	Groq      GroqConfig      `mapstructure:"groq"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Listen   string `mapstructure:"listen"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig contains HTTP transport and admin auth settings.
type ServerConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	// AdminPasswordHash is a bcrypt hash; the /api/auth/token endpoint
	// compares against it before minting an admin JWT.
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	TokenTTL          time.Duration `mapstructure:"token_ttl"`
}

// KnowledgeConfig locates the corpus on disk.
type KnowledgeConfig struct {
	Dir             string `mapstructure:"dir"`
	IndicesDir      string `mapstructure:"indices_dir"`
	OfflinePackSize int    `mapstructure:"offline_pack_size"`
}

// GroqConfig configures the completion-service client. An empty APIKey
// switches the pipeline into mock mode.
type GroqConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig controls the per-IP limiter. Redis fields are optional;
// when Host is empty the in-memory limiter is used.
type RateLimitConfig struct {
	Max    int           `mapstructure:"max"`
	Window time.Duration `mapstructure:"window"`
	Redis  RedisConfig   `mapstructure:"redis"`
}

// RedisConfig is the optional shared limiter backend.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// TelemetryConfig toggles the Prometheus collectors.
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func (t TelemetryConfig) Validate() error { return nil }

func (r RateLimitConfig) Validate() error {
	if r.Max <= 0 {
		return fmt.Errorf("ratelimit.max must be > 0")
	}
	if r.Window <= 0 {
		return fmt.Errorf("ratelimit.window must be > 0")
	}
	return nil
}

// LoadConfig reads config.json (or the file at path) plus GRAMSEVAK_*
// environment overrides. It panics on a malformed file, matching startup
// behaviour: a broken config is not recoverable.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.SetDefault("general.listen", ":8000")
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("server.token_ttl", 24*time.Hour)
	viper.SetDefault("knowledge.dir", "knowledge_base")
	viper.SetDefault("knowledge.indices_dir", "indices")
	viper.SetDefault("knowledge.offline_pack_size", 200)
	viper.SetDefault("groq.model", "llama-3.1-8b-instant")
	viper.SetDefault("groq.base_url", "https://api.groq.com/openai/v1")
	viper.SetDefault("groq.temperature", 0.1)
	viper.SetDefault("groq.max_tokens", 150)
	viper.SetDefault("groq.timeout", 30*time.Second)
	viper.SetDefault("ratelimit.max", 20)
	viper.SetDefault("ratelimit.window", time.Minute)
	viper.SetDefault("telemetry.enabled", true)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)
		viper.AddConfigPath(filepath.Join(exeDir, "..", "config"))
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("GRAMSEVAK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional: defaults plus env cover local runs.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	if err := config.RateLimit.Validate(); err != nil {
		panic(err)
	}

	return &config
}
