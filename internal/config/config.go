package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	S3        S3Config        `mapstructure:"s3"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	AI        AIConfig        `mapstructure:"ai"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	YouTube   YouTubeConfig   `mapstructure:"youtube"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
}

type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	Mode           string   `mapstructure:"mode"` // gin mode: debug | release | test
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration.
// Tokens are issued elsewhere; this service only verifies them.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"` // development | production
}

// AIConfig selects the text-generation provider used by the enricher.
// An empty provider, or a provider without a key, puts discovery in fallback-only mode.
type AIConfig struct {
	Provider    string        `mapstructure:"provider"` // openai | anthropic
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type YouTubeConfig struct {
	APIKey     string `mapstructure:"api_key"`
	MaxResults int    `mapstructure:"max_results"`
}

// RedisConfig configures the video lookup cache. Empty Addr disables caching.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	VideoTTL time.Duration `mapstructure:"video_ttl"`
}

// DiscoveryConfig holds the tunables of the discovery pipeline.
type DiscoveryConfig struct {
	TaxonomyPath        string        `mapstructure:"taxonomy_path"`
	QualityThreshold    int           `mapstructure:"quality_threshold"`
	ImportantRelevance  int           `mapstructure:"important_relevance"`
	InterCallDelay      time.Duration `mapstructure:"inter_call_delay"`
	RetryMax            int           `mapstructure:"retry_max"`
	RetryBackoff        time.Duration `mapstructure:"retry_backoff"`
	ReviewGrace         time.Duration `mapstructure:"review_grace"`
	TestModeMaxTerms    int           `mapstructure:"test_mode_max_terms"`
	MaxExercisesPerTerm int           `mapstructure:"max_exercises_per_term"`
	BatchSize           int           `mapstructure:"batch_size"`
	ReportURLExpiry     time.Duration `mapstructure:"report_url_expiry"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, openai.api_key -> OPENAI_API_KEY
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No file: run on defaults and environment only.
		err = nil
	} else if err != nil {
		return
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "exercise_discovery")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "discovery-reports")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("log.mode", "development")

	v.SetDefault("ai.provider", "openai")
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.max_tokens", 3000)
	v.SetDefault("ai.timeout", "60s")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "https://api.openai.com")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "claude-3-5-haiku-20241022")
	v.SetDefault("youtube.api_key", "")
	v.SetDefault("youtube.max_results", 5)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.video_ttl", "24h")

	v.SetDefault("discovery.taxonomy_path", "")
	v.SetDefault("discovery.quality_threshold", 75)
	v.SetDefault("discovery.important_relevance", 7)
	v.SetDefault("discovery.inter_call_delay", "1500ms")
	v.SetDefault("discovery.retry_max", 2)
	v.SetDefault("discovery.retry_backoff", "2s")
	v.SetDefault("discovery.review_grace", "3s")
	v.SetDefault("discovery.test_mode_max_terms", 10)
	v.SetDefault("discovery.max_exercises_per_term", 3)
	v.SetDefault("discovery.batch_size", 10)
	v.SetDefault("discovery.report_url_expiry", "15m")
}
