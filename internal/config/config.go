package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Social    SocialConfig    `yaml:"social" mapstructure:"social"`
	Geocode   GeocodeConfig   `yaml:"geocode" mapstructure:"geocode"`
	Export    ExportConfig    `yaml:"export" mapstructure:"export"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Personas  PersonasConfig  `yaml:"personas" mapstructure:"personas"`
	Temporal  TemporalConfig  `yaml:"temporal" mapstructure:"temporal"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the session store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // "sqlite" or "postgres"
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AnthropicConfig holds verification judge model settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// SocialConfig holds content search gateway settings. An empty GatewayURL
// selects the deterministic offline client.
type SocialConfig struct {
	GatewayURL     string  `yaml:"gateway_url" mapstructure:"gateway_url"`
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	SearchRetries  int     `yaml:"search_retries" mapstructure:"search_retries"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
}

// GeocodeConfig holds geocoding settings. Without a Google key the offline
// gazetteer is used alone.
type GeocodeConfig struct {
	GoogleKey     string `yaml:"google_key" mapstructure:"google_key"`
	GazetteerPath string `yaml:"gazetteer_path" mapstructure:"gazetteer_path"`
	NameField     string `yaml:"name_field" mapstructure:"name_field"`
}

// ExportConfig configures artifact rendering and optional publishing.
type ExportConfig struct {
	OutputsDir string       `yaml:"outputs_dir" mapstructure:"outputs_dir"`
	Notion     NotionConfig `yaml:"notion" mapstructure:"notion"`
	FTP        FTPConfig    `yaml:"ftp" mapstructure:"ftp"`
}

// NotionConfig holds the optional Notion itinerary export settings.
type NotionConfig struct {
	Token      string `yaml:"token" mapstructure:"token"`
	DatabaseID string `yaml:"database_id" mapstructure:"database_id"`
}

// FTPConfig holds the optional FTP artifact publisher settings.
type FTPConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	Dir      string `yaml:"dir" mapstructure:"dir"`
}

// PipelineConfig configures planning pipeline behavior.
type PipelineConfig struct {
	MaxCandidates    int `yaml:"max_candidates" mapstructure:"max_candidates"`
	RecentPosts      int `yaml:"recent_posts" mapstructure:"recent_posts"`
	MaxAttempts      int `yaml:"max_attempts" mapstructure:"max_attempts"`
	DefaultMaxPerDay int `yaml:"default_max_per_day" mapstructure:"default_max_per_day"`
}

// PersonasConfig points at an optional persona registry override file.
type PersonasConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// TemporalConfig configures the background worker.
type TemporalConfig struct {
	HostPort  string `yaml:"host_port" mapstructure:"host_port"`
	Namespace string `yaml:"namespace" mapstructure:"namespace"`
	TaskQueue string `yaml:"task_queue" mapstructure:"task_queue"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("WAYFARER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "planner.db")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 600)
	v.SetDefault("social.timeout_secs", 15)
	v.SetDefault("social.search_retries", 1)
	v.SetDefault("social.requests_per_sec", 2)
	v.SetDefault("geocode.name_field", "NAME")
	v.SetDefault("export.outputs_dir", "outputs")
	v.SetDefault("pipeline.max_candidates", 20)
	v.SetDefault("pipeline.recent_posts", 5)
	v.SetDefault("pipeline.max_attempts", 2)
	v.SetDefault("pipeline.default_max_per_day", 5)
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "wayfarer-planner")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
