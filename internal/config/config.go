package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	S3         S3Config
	Log        LogConfig
	OCR        OCRConfig
	Layout     LayoutConfig
	Classifier ClassifierConfig
	Extraction ExtractionConfig
	CORS       CORSConfig
	Email      EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for source-image archival.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OCRConfig holds OCR engine settings.
type OCRConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// LayoutConfig holds token-classification model settings.
type LayoutConfig struct {
	Endpoint     string `mapstructure:"endpoint"`
	APIKey       string `mapstructure:"api_key"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
	MaxSeqLength int    `mapstructure:"max_seq_length"`
}

// RemoteClassifierConfig holds settings for the remote document classifier.
type RemoteClassifierConfig struct {
	Provider    string `mapstructure:"provider"`
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ClassifierConfig holds document-type classification settings.
type ClassifierConfig struct {
	Remote   RemoteClassifierConfig `mapstructure:"remote"`
	MinScore int                    `mapstructure:"min_score"`
}

// RemoteConfigured reports whether a remote classifier should be used.
func (c *ClassifierConfig) RemoteConfigured() bool {
	return c.Remote.Provider != "" && c.Remote.APIKey != ""
}

// ExtractionConfig holds pipeline thresholds. Confidence thresholds are per
// document type; the line tolerance is a fraction of the image height.
type ExtractionConfig struct {
	ReceiptConfThreshold float64 `mapstructure:"receipt_conf_threshold"`
	InvoiceConfThreshold float64 `mapstructure:"invoice_conf_threshold"`
	LineTolerance        float64 `mapstructure:"line_tolerance"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds notification email settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	NotifyTo    string `mapstructure:"notify_to"`
}

// Load reads configuration from environment variables with the DOCEXT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCEXT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docext")
	v.SetDefault("db.password", "docext_secret")
	v.SetDefault("db.name", "docext_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "docext-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 20)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// OCR engine defaults
	v.SetDefault("ocr.endpoint", "http://localhost:9090/v1/detect")
	v.SetDefault("ocr.api_key", "")
	v.SetDefault("ocr.timeout_secs", 60)

	// Layout model defaults
	v.SetDefault("layout.endpoint", "http://localhost:9091/v1/classify-tokens")
	v.SetDefault("layout.api_key", "")
	v.SetDefault("layout.timeout_secs", 60)
	v.SetDefault("layout.max_seq_length", 512)

	// Classifier defaults
	v.SetDefault("classifier.remote.provider", "")
	v.SetDefault("classifier.remote.api_key", "")
	v.SetDefault("classifier.remote.model", "gemini-2.0-flash")
	v.SetDefault("classifier.remote.timeout_secs", 15)
	v.SetDefault("classifier.min_score", 3)

	// Extraction defaults
	v.SetDefault("extraction.receipt_conf_threshold", 0.35)
	v.SetDefault("extraction.invoice_conf_threshold", 0.30)
	v.SetDefault("extraction.line_tolerance", 0.015)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@docext.local")
	v.SetDefault("email.from_name", "DocExt")
	v.SetDefault("email.notify_to", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                       "DOCEXT_SERVER_PORT",
		"server.read_timeout":               "DOCEXT_SERVER_READ_TIMEOUT",
		"server.write_timeout":              "DOCEXT_SERVER_WRITE_TIMEOUT",
		"server.environment":                "DOCEXT_SERVER_ENVIRONMENT",
		"db.host":                           "DOCEXT_DB_HOST",
		"db.port":                           "DOCEXT_DB_PORT",
		"db.user":                           "DOCEXT_DB_USER",
		"db.password":                       "DOCEXT_DB_PASSWORD",
		"db.name":                           "DOCEXT_DB_NAME",
		"db.sslmode":                        "DOCEXT_DB_SSLMODE",
		"db.max_open":                       "DOCEXT_DB_MAX_OPEN",
		"db.max_idle":                       "DOCEXT_DB_MAX_IDLE",
		"s3.region":                         "DOCEXT_S3_REGION",
		"s3.bucket":                         "DOCEXT_S3_BUCKET",
		"s3.endpoint":                       "DOCEXT_S3_ENDPOINT",
		"s3.access_key":                     "DOCEXT_S3_ACCESS_KEY",
		"s3.secret_key":                     "DOCEXT_S3_SECRET_KEY",
		"s3.max_file_size_mb":               "DOCEXT_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":                 "DOCEXT_S3_PRESIGN_EXPIRY",
		"log.level":                         "DOCEXT_LOG_LEVEL",
		"log.format":                        "DOCEXT_LOG_FORMAT",
		"ocr.endpoint":                      "DOCEXT_OCR_ENDPOINT",
		"ocr.api_key":                       "DOCEXT_OCR_API_KEY",
		"ocr.timeout_secs":                  "DOCEXT_OCR_TIMEOUT_SECS",
		"layout.endpoint":                   "DOCEXT_LAYOUT_ENDPOINT",
		"layout.api_key":                    "DOCEXT_LAYOUT_API_KEY",
		"layout.timeout_secs":               "DOCEXT_LAYOUT_TIMEOUT_SECS",
		"layout.max_seq_length":             "DOCEXT_LAYOUT_MAX_SEQ_LENGTH",
		"classifier.remote.provider":        "DOCEXT_CLASSIFIER_REMOTE_PROVIDER",
		"classifier.remote.api_key":         "DOCEXT_CLASSIFIER_REMOTE_API_KEY",
		"classifier.remote.model":           "DOCEXT_CLASSIFIER_REMOTE_MODEL",
		"classifier.remote.timeout_secs":    "DOCEXT_CLASSIFIER_REMOTE_TIMEOUT_SECS",
		"classifier.min_score":              "DOCEXT_CLASSIFIER_MIN_SCORE",
		"extraction.receipt_conf_threshold": "DOCEXT_EXTRACTION_RECEIPT_CONF_THRESHOLD",
		"extraction.invoice_conf_threshold": "DOCEXT_EXTRACTION_INVOICE_CONF_THRESHOLD",
		"extraction.line_tolerance":         "DOCEXT_EXTRACTION_LINE_TOLERANCE",
		"cors.allowed_origins":              "DOCEXT_CORS_ALLOWED_ORIGINS",
		"email.provider":                    "DOCEXT_EMAIL_PROVIDER",
		"email.region":                      "DOCEXT_EMAIL_REGION",
		"email.from_address":                "DOCEXT_EMAIL_FROM_ADDRESS",
		"email.from_name":                   "DOCEXT_EMAIL_FROM_NAME",
		"email.notify_to":                   "DOCEXT_EMAIL_NOTIFY_TO",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCEXT_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCEXT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.OCR = OCRConfig{
		Endpoint:    v.GetString("ocr.endpoint"),
		APIKey:      v.GetString("ocr.api_key"),
		TimeoutSecs: v.GetInt("ocr.timeout_secs"),
	}
	cfg.Layout = LayoutConfig{
		Endpoint:     v.GetString("layout.endpoint"),
		APIKey:       v.GetString("layout.api_key"),
		TimeoutSecs:  v.GetInt("layout.timeout_secs"),
		MaxSeqLength: v.GetInt("layout.max_seq_length"),
	}
	cfg.Classifier = ClassifierConfig{
		Remote: RemoteClassifierConfig{
			Provider:    v.GetString("classifier.remote.provider"),
			APIKey:      v.GetString("classifier.remote.api_key"),
			Model:       v.GetString("classifier.remote.model"),
			TimeoutSecs: v.GetInt("classifier.remote.timeout_secs"),
		},
		MinScore: v.GetInt("classifier.min_score"),
	}
	cfg.Extraction = ExtractionConfig{
		ReceiptConfThreshold: v.GetFloat64("extraction.receipt_conf_threshold"),
		InvoiceConfThreshold: v.GetFloat64("extraction.invoice_conf_threshold"),
		LineTolerance:        v.GetFloat64("extraction.line_tolerance"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitAndTrim(v.GetString("cors.allowed_origins")),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		NotifyTo:    v.GetString("email.notify_to"),
	}

	return cfg, nil
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
