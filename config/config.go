package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Storage    StorageConfig    `mapstructure:"storage"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Upload     UploadConfig     `mapstructure:"upload"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	FAIR       FAIRConfig       `mapstructure:"fair"`
	Tables     TablesConfig     `mapstructure:"tables"`
	CORS       CORSConfig       `mapstructure:"cors"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	SSLMode      string `mapstructure:"ssl_mode"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type StorageConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
	CDNDomain       string `mapstructure:"cdn_domain"`
	LocalDir        string `mapstructure:"local_dir"` // fallback when OSS is not configured
}

type LLMConfig struct {
	BaseURL        string  `mapstructure:"base_url"`
	APIKey         string  `mapstructure:"api_key"`
	Model          string  `mapstructure:"model"`
	MaxTokens      int     `mapstructure:"max_tokens"`
	Temperature    float64 `mapstructure:"temperature"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
}

type UploadConfig struct {
	MaxSize           int64    `mapstructure:"max_size"`
	TempDir           string   `mapstructure:"temp_dir"`
	ExpireHours       int      `mapstructure:"expire_hours"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
}

type ExtractionConfig struct {
	MaxRetries        int     `mapstructure:"max_retries"`
	InitialDelayMs    int     `mapstructure:"initial_delay_ms"`
	MaxDelayMs        int     `mapstructure:"max_delay_ms"`
	BackoffMultiplier float64 `mapstructure:"backoff_multiplier"`
	ColumnTolerance   int     `mapstructure:"column_tolerance"`
	CompletenessFloor float64 `mapstructure:"completeness_floor"`
}

type FAIRConfig struct {
	StandardPath    string `mapstructure:"standard_path"` // reporting-standard reference document
	GenerateExports bool   `mapstructure:"generate_exports"`
}

// TablesConfig is the static browse allow-list: table name -> sortable columns.
// Loaded once at startup and passed explicitly; never mutated afterwards.
type TablesConfig struct {
	Allowed map[string][]string `mapstructure:"allowed"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// InitialDelay returns the configured initial retry delay.
func (c ExtractionConfig) InitialDelay() time.Duration {
	return time.Duration(c.InitialDelayMs) * time.Millisecond
}

// MaxDelay returns the configured retry delay cap.
func (c ExtractionConfig) MaxDelay() time.Duration {
	return time.Duration(c.MaxDelayMs) * time.Millisecond
}

func Load(configPath string) (*Config, error) {
	// Prefer config.local.yaml when present (real keys, not committed).
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Extraction.MaxRetries == 0 {
		cfg.Extraction.MaxRetries = 3
	}
	if cfg.Extraction.InitialDelayMs == 0 {
		cfg.Extraction.InitialDelayMs = 1000
	}
	if cfg.Extraction.MaxDelayMs == 0 {
		cfg.Extraction.MaxDelayMs = 5000
	}
	if cfg.Extraction.BackoffMultiplier == 0 {
		cfg.Extraction.BackoffMultiplier = 2
	}
	if cfg.Extraction.ColumnTolerance == 0 {
		cfg.Extraction.ColumnTolerance = 1
	}
	if cfg.Extraction.CompletenessFloor == 0 {
		cfg.Extraction.CompletenessFloor = 0.3
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 8192
	}
	if cfg.LLM.TimeoutSeconds == 0 {
		cfg.LLM.TimeoutSeconds = 120
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 50 << 20
	}
	if cfg.Upload.ExpireHours == 0 {
		cfg.Upload.ExpireHours = 24
	}
	if len(cfg.Upload.AllowedExtensions) == 0 {
		cfg.Upload.AllowedExtensions = []string{".pdf"}
	}
}
