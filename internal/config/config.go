package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Auth     AuthConfig
	S3       S3Config
	Email    EmailConfig
	SMS      SMSConfig
	Log      LogConfig
	CORS     CORSConfig
	Schedule ScheduleConfig
	Tasks    TasksConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	// AppURL is the public base URL used in estimate and invoice links.
	AppURL string `mapstructure:"app_url"`
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

// AuthConfig holds the settings used to verify access tokens issued by the
// external identity provider.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
	Audience  string `mapstructure:"audience"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxLogoSizeMB int64  `mapstructure:"max_logo_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// SMSConfig holds text message delivery settings.
type SMSConfig struct {
	Provider   string `mapstructure:"provider"`
	AccountSID string `mapstructure:"account_sid"`
	AuthToken  string `mapstructure:"auth_token"`
	FromNumber string `mapstructure:"from_number"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ScheduleConfig holds visit scheduling settings.
type ScheduleConfig struct {
	Timezone    string `mapstructure:"timezone"`
	WindowSize  int    `mapstructure:"window_size"`
	CronEnabled bool   `mapstructure:"cron_enabled"`
	CronSpec    string `mapstructure:"cron_spec"`
}

// Location resolves the configured timezone, falling back to UTC.
func (s *ScheduleConfig) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// TasksConfig holds settings for externally triggered scheduled tasks.
type TasksConfig struct {
	CronSecret string `mapstructure:"cron_secret"`
}

// Load reads configuration from environment variables with the MIKLEAN_ prefix.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MIKLEAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.app_url", "http://localhost:8080")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "miklean")
	v.SetDefault("db.password", "miklean_secret")
	v.SetDefault("db.name", "miklean_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.audience", "")

	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "miklean-logos")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_logo_size_mb", 5)
	v.SetDefault("s3.presign_expiry", 3600)

	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@miklean.app")
	v.SetDefault("email.from_name", "MiKlean")

	v.SetDefault("sms.provider", "noop")

	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	v.SetDefault("schedule.timezone", "America/New_York")
	v.SetDefault("schedule.window_size", 8)
	v.SetDefault("schedule.cron_enabled", false)
	v.SetDefault("schedule.cron_spec", "0 0 18 * * *")

	envBindings := map[string]string{
		"server.port":           "MIKLEAN_SERVER_PORT",
		"server.read_timeout":   "MIKLEAN_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "MIKLEAN_SERVER_WRITE_TIMEOUT",
		"server.environment":    "MIKLEAN_SERVER_ENVIRONMENT",
		"server.app_url":        "MIKLEAN_SERVER_APP_URL",
		"db.host":               "MIKLEAN_DB_HOST",
		"db.port":               "MIKLEAN_DB_PORT",
		"db.user":               "MIKLEAN_DB_USER",
		"db.password":           "MIKLEAN_DB_PASSWORD",
		"db.name":               "MIKLEAN_DB_NAME",
		"db.sslmode":            "MIKLEAN_DB_SSLMODE",
		"db.max_open":           "MIKLEAN_DB_MAX_OPEN",
		"db.max_idle":           "MIKLEAN_DB_MAX_IDLE",
		"auth.jwt_secret":       "MIKLEAN_AUTH_JWT_SECRET",
		"auth.issuer":           "MIKLEAN_AUTH_ISSUER",
		"auth.audience":         "MIKLEAN_AUTH_AUDIENCE",
		"s3.region":             "MIKLEAN_S3_REGION",
		"s3.bucket":             "MIKLEAN_S3_BUCKET",
		"s3.endpoint":           "MIKLEAN_S3_ENDPOINT",
		"s3.access_key":         "MIKLEAN_S3_ACCESS_KEY",
		"s3.secret_key":         "MIKLEAN_S3_SECRET_KEY",
		"s3.max_logo_size_mb":   "MIKLEAN_S3_MAX_LOGO_SIZE_MB",
		"s3.presign_expiry":     "MIKLEAN_S3_PRESIGN_EXPIRY",
		"email.provider":        "MIKLEAN_EMAIL_PROVIDER",
		"email.region":          "MIKLEAN_EMAIL_REGION",
		"email.from_address":    "MIKLEAN_EMAIL_FROM_ADDRESS",
		"email.from_name":       "MIKLEAN_EMAIL_FROM_NAME",
		"sms.provider":          "MIKLEAN_SMS_PROVIDER",
		"sms.account_sid":       "MIKLEAN_SMS_ACCOUNT_SID",
		"sms.auth_token":        "MIKLEAN_SMS_AUTH_TOKEN",
		"sms.from_number":       "MIKLEAN_SMS_FROM_NUMBER",
		"log.level":             "MIKLEAN_LOG_LEVEL",
		"log.format":            "MIKLEAN_LOG_FORMAT",
		"cors.allowed_origins":  "MIKLEAN_CORS_ALLOWED_ORIGINS",
		"schedule.timezone":     "MIKLEAN_SCHEDULE_TIMEZONE",
		"schedule.window_size":  "MIKLEAN_SCHEDULE_WINDOW_SIZE",
		"schedule.cron_enabled": "MIKLEAN_SCHEDULE_CRON_ENABLED",
		"schedule.cron_spec":    "MIKLEAN_SCHEDULE_CRON_SPEC",
		"tasks.cron_secret":     "MIKLEAN_TASKS_CRON_SECRET",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if MIKLEAN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("MIKLEAN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		AppURL:       strings.TrimRight(v.GetString("server.app_url"), "/"),
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
	cfg.Auth = AuthConfig{
		JWTSecret: v.GetString("auth.jwt_secret"),
		Issuer:    v.GetString("auth.issuer"),
		Audience:  v.GetString("auth.audience"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxLogoSizeMB: v.GetInt64("s3.max_logo_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.SMS = SMSConfig{
		Provider:   v.GetString("sms.provider"),
		AccountSID: v.GetString("sms.account_sid"),
		AuthToken:  v.GetString("sms.auth_token"),
		FromNumber: v.GetString("sms.from_number"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Schedule = ScheduleConfig{
		Timezone:    v.GetString("schedule.timezone"),
		WindowSize:  v.GetInt("schedule.window_size"),
		CronEnabled: v.GetBool("schedule.cron_enabled"),
		CronSpec:    v.GetString("schedule.cron_spec"),
	}
	if cfg.Schedule.WindowSize <= 0 {
		return nil, fmt.Errorf("schedule.window_size must be positive, got %d", cfg.Schedule.WindowSize)
	}
	if _, err := time.LoadLocation(cfg.Schedule.Timezone); err != nil {
		return nil, fmt.Errorf("schedule.timezone %q: %w", cfg.Schedule.Timezone, err)
	}

	cfg.Tasks = TasksConfig{CronSecret: v.GetString("tasks.cron_secret")}

	return cfg, nil
}
