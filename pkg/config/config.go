package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Redis   RedisConfig
	LLM     LLMConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  int
	WriteTimeout int
	BodyLimit    int
}

// StoreConfig selects the transcript backend. Backend is one of
// "csv", "sqlite" or "memory".
type StoreConfig struct {
	Backend            string
	CSVPath            string
	SQLitePath         string
	PersistEvaluations bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	EvalModel   string
	Temperature float32
	MaxTokens   int
	TimeoutSec  int
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/voxhire")

	viper.SetEnvPrefix("VOXHIRE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate fails fast on missing credentials so a misconfigured deployment
// dies at startup instead of on the first chat turn.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm.apiKey is required (set VOXHIRE_LLM_APIKEY)")
	}

	switch c.Store.Backend {
	case "csv", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown store backend %q (want csv, sqlite or memory)", c.Store.Backend)
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.readTimeout", 30)
	viper.SetDefault("server.writeTimeout", 60)
	viper.SetDefault("server.bodyLimit", 1048576)

	viper.SetDefault("store.backend", "csv")
	viper.SetDefault("store.csvPath", "./data/interview_log.csv")
	viper.SetDefault("store.sqlitePath", "./data/voxhire.db")
	viper.SetDefault("store.persistEvaluations", false)

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("llm.model", "gpt-4o-mini")
	viper.SetDefault("llm.evalModel", "")
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.maxTokens", 1024)
	viper.SetDefault("llm.timeoutSec", 60)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.outputPath", "stdout")
}
