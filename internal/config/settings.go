package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	PoolSize int    `mapstructure:"pool_size"`
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
	Pass string `mapstructure:"pass"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// StorageConfig points at the object store holding uploaded document bytes.
type StorageConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	Bucket     string `mapstructure:"bucket"`
	ServiceKey string `mapstructure:"service_key"`
}

// ExtractorConfig points at the external PDF text extractor service.
type ExtractorConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type EmbeddingConfig struct {
	Provider     string        `mapstructure:"provider"` // tei | gemini
	BaseURL      string        `mapstructure:"base_url"`
	GeminiAPIKey string        `mapstructure:"gemini_api_key"`
	Model        string        `mapstructure:"model"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type GenerationConfig struct {
	Provider     string        `mapstructure:"provider"` // openai | ollama
	Model        string        `mapstructure:"model"`
	OpenAIAPIKey string        `mapstructure:"open_ai_api_key"`
	OllamaURL    string        `mapstructure:"ollama_url"`
	MaxTokens    int           `mapstructure:"max_tokens"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type ChatConfig struct {
	MatchThreshold   float32       `mapstructure:"match_threshold"`
	MatchCount       int           `mapstructure:"match_count"`
	RetrievalTimeout time.Duration `mapstructure:"retrieval_timeout"`
}

type BackfillConfig struct {
	Concurrency  int           `mapstructure:"concurrency"`
	ItemTimeout  time.Duration `mapstructure:"item_timeout"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	PollBatch    int           `mapstructure:"poll_batch"`
}

type Settings struct {
	Server     ServerConfig     `mapstructure:"server"`
	DB         DBConfig         `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Extractor  ExtractorConfig  `mapstructure:"extractor"`
	Embedding  EmbeddingConfig  `mapstructure:"embedding"`
	Generation GenerationConfig `mapstructure:"generation"`
	Chat       ChatConfig       `mapstructure:"chat"`
	Backfill   BackfillConfig   `mapstructure:"backfill"`
	Env        string           `mapstructure:"env"`
	Debug      bool             `mapstructure:"debug" default:"false"`
}

func Load() (*Settings, error) {
	viper.SetConfigName("config_" + genEnv())
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var settings Settings
	if err := viper.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	settings.applyDefaults()

	return &settings, nil
}

func (s *Settings) applyDefaults() {
	if s.Server.Port == 0 {
		s.Server.Port = 8080
	}
	if s.Embedding.Timeout == 0 {
		s.Embedding.Timeout = 8 * time.Second
	}
	if s.Generation.MaxTokens == 0 {
		s.Generation.MaxTokens = 512
	}
	if s.Generation.Timeout == 0 {
		s.Generation.Timeout = 15 * time.Second
	}
	if s.Chat.MatchThreshold == 0 {
		s.Chat.MatchThreshold = 0.8
	}
	if s.Chat.MatchCount == 0 {
		s.Chat.MatchCount = 3
	}
	if s.Chat.RetrievalTimeout == 0 {
		s.Chat.RetrievalTimeout = 10 * time.Second
	}
	if s.Backfill.Concurrency == 0 {
		s.Backfill.Concurrency = 1
	}
	if s.Backfill.ItemTimeout == 0 {
		s.Backfill.ItemTimeout = 8 * time.Second
	}
	if s.Backfill.PollInterval == 0 {
		s.Backfill.PollInterval = 30 * time.Second
	}
	if s.Backfill.PollBatch == 0 {
		s.Backfill.PollBatch = 50
	}
}

func genEnv() string {
	env := viper.GetString("ENV")
	if env == "" {
		return "dev"
	}
	return env
}
