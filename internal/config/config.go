package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds relational store settings.
// Driver selects the backend: "sqlite" (default, a file on local disk) or "postgres".
type DatabaseConfig struct {
	Driver             string
	Path               string
	BusyTimeoutMS      int
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// StorageConfig selects where raw uploads are archived.
// Backend is one of "local", "minio" or "none".
type StorageConfig struct {
	Backend  string
	LocalDir string
	MinIO    MinIOConfig
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// LoggerConfig controls the zap logger.
type LoggerConfig struct {
	Level string
	Env   string
}

// MaxQuizQuestions is the largest quiz size the service generates.
const MaxQuizQuestions = 5

// QuizConfig holds the quiz generator limits.
type QuizConfig struct {
	MaxQuestions  int
	SnippetLength int
}

// AppConfig is the centralized configuration struct for the application.
// It is built once in main and handed to constructors; nothing reads it globally.
type AppConfig struct {
	AppHost            string
	AppScheme          string
	Port               string
	BodyLimitBytes     int
	ShutdownTimeoutSec int
	Timezone           string
	Database           DatabaseConfig
	Storage            StorageConfig
	Logger             LoggerConfig
	Quiz               QuizConfig
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

var defaults = map[string]any{
	"app_host":             "localhost:8080",
	"app_scheme":           "http",
	"port":                 "8080",
	"body_limit_bytes":     4 * 1024 * 1024,
	"shutdown_timeout_sec": 10,
	"tz":                   "UTC",

	"db_driver":                "sqlite",
	"db_path":                  "study.db",
	"db_busy_timeout_ms":       5000,
	"db_host":                  "",
	"db_port":                  "5432",
	"db_user":                  "",
	"db_password":              "",
	"db_name":                  "",
	"db_sslmode":               "disable",
	"db_max_open_conns":        10,
	"db_max_idle_conns":        5,
	"db_conn_max_lifetime_sec": 300,

	"storage_backend":   "local",
	"storage_local_dir": "uploads",
	"minio_endpoint":    "",
	"minio_access_key":  "",
	"minio_secret_key":  "",
	"minio_bucket":      "",
	"minio_use_ssl":     false,

	"log_level": "info",
	"app_env":   "production",

	"quiz_max_questions":  5,
	"quiz_snippet_length": 60,
}

// Load reads configuration from defaults, an optional YAML file named by CONFIG_FILE,
// and environment variables, in increasing order of precedence.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() (*AppConfig, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("config_file", "CONFIG_FILE"); err != nil {
		return nil, fmt.Errorf("bind config_file: %w", err)
	}
	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := &AppConfig{
		AppHost:            v.GetString("app_host"),
		AppScheme:          strings.ToLower(v.GetString("app_scheme")),
		Port:               v.GetString("port"),
		BodyLimitBytes:     v.GetInt("body_limit_bytes"),
		ShutdownTimeoutSec: v.GetInt("shutdown_timeout_sec"),
		Timezone:           v.GetString("tz"),
		Database: DatabaseConfig{
			Driver:             strings.ToLower(v.GetString("db_driver")),
			Path:               v.GetString("db_path"),
			BusyTimeoutMS:      v.GetInt("db_busy_timeout_ms"),
			Host:               v.GetString("db_host"),
			Port:               v.GetString("db_port"),
			User:               v.GetString("db_user"),
			Password:           v.GetString("db_password"),
			Name:               v.GetString("db_name"),
			SSLMode:            v.GetString("db_sslmode"),
			MaxOpenConns:       v.GetInt("db_max_open_conns"),
			MaxIdleConns:       v.GetInt("db_max_idle_conns"),
			ConnMaxLifetimeSec: v.GetInt("db_conn_max_lifetime_sec"),
		},
		Storage: StorageConfig{
			Backend:  strings.ToLower(v.GetString("storage_backend")),
			LocalDir: v.GetString("storage_local_dir"),
			MinIO: MinIOConfig{
				Endpoint:  v.GetString("minio_endpoint"),
				AccessKey: v.GetString("minio_access_key"),
				SecretKey: v.GetString("minio_secret_key"),
				Bucket:    v.GetString("minio_bucket"),
				UseSSL:    v.GetBool("minio_use_ssl"),
			},
		},
		Logger: LoggerConfig{
			Level: strings.ToLower(v.GetString("log_level")),
			Env:   strings.ToLower(v.GetString("app_env")),
		},
		Quiz: QuizConfig{
			MaxQuestions:  v.GetInt("quiz_max_questions"),
			SnippetLength: v.GetInt("quiz_snippet_length"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported db driver %q", c.Database.Driver)
	}
	switch c.Storage.Backend {
	case "local", "minio", "none":
	default:
		return fmt.Errorf("unsupported storage backend %q", c.Storage.Backend)
	}
	if c.Quiz.MaxQuestions <= 0 || c.Quiz.SnippetLength <= 0 {
		return fmt.Errorf("quiz limits must be positive")
	}
	if c.Quiz.MaxQuestions > MaxQuizQuestions {
		return fmt.Errorf("quiz max questions must be at most %d, got %d", MaxQuizQuestions, c.Quiz.MaxQuestions)
	}
	return nil
}
