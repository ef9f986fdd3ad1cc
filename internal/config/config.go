package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

var (
	errMissingJWTSigningKey        = errors.New("api.jwt_signing_key is required")
	errMissingJWTRefreshSigningKey = errors.New("api.jwt_refresh_signing_key is required")
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Redis    *RedisConfig    `mapstructure:"redis"`
	Log      *LogConfig      `mapstructure:"log"`
	Mail     *MailConfig     `mapstructure:"mail"`

	v *viper.Viper
}

type APIConfig struct {
	Environment          string        `mapstructure:"environment"`
	Port                 string        `mapstructure:"port"`
	BaseURL              string        `mapstructure:"base_url"`
	AppURL               string        `mapstructure:"app_url"`
	AllowedCORSDomains   []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey        string        `mapstructure:"jwt_signing_key"`
	JWTRefreshSigningKey string        `mapstructure:"jwt_refresh_signing_key"`
	AccessTokenTTL       time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL      time.Duration `mapstructure:"refresh_token_ttl"`
	CSRFEnabled          bool          `mapstructure:"csrf_enabled"`
	RateLimitPerMinute   int           `mapstructure:"rate_limit_per_minute"`
}

func (c *APIConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.DB, c.Port, c.SSLMode)
}

// RedisConfig is optional: an empty Addr keeps refresh tokens in Postgres and
// turns rate limiting off.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c *RedisConfig) Enabled() bool {
	return c != nil && c.Addr != ""
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type MailConfig struct {
	SendGridAPIKey string `mapstructure:"sendgrid_api_key"`
	From           string `mapstructure:"from"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", EnvDevelopment)
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.app_url", "http://localhost:3000")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})
	v.SetDefault("api.jwt_signing_key", "")
	v.SetDefault("api.jwt_refresh_signing_key", "")
	v.SetDefault("api.access_token_ttl", time.Hour)
	v.SetDefault("api.refresh_token_ttl", 30*24*time.Hour)
	v.SetDefault("api.csrf_enabled", true)
	v.SetDefault("api.rate_limit_per_minute", 100)

	v.SetDefault("gin.mode", "debug")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db", "meetup")
	v.SetDefault("postgres.sslmode", "disable")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 30)

	v.SetDefault("mail.sendgrid_api_key", "")
	v.SetDefault("mail.from", "")
}

// Load reads the YAML file at path. Every key can be overridden from the
// environment, e.g. api.port by API_PORT.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf, err := unmarshal(v)
	if err != nil {
		return nil, err
	}
	conf.v = v

	return conf, nil
}

func unmarshal(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if conf.API.JWTSigningKey == "" {
		return nil, errMissingJWTSigningKey
	}
	if conf.API.JWTRefreshSigningKey == "" {
		return nil, errMissingJWTRefreshSigningKey
	}

	return conf, nil
}

// Watch calls onChange with a freshly decoded config every time the file changes.
// Invalid edits are logged and ignored.
func (c *AppConfig) Watch(onChange func(conf *AppConfig)) {
	if c.v == nil {
		return
	}

	c.v.OnConfigChange(func(e fsnotify.Event) {
		next, err := unmarshal(c.v)
		if err != nil {
			zap.L().Warn("ignoring invalid config change", zap.String("file", e.Name), zap.Error(err))
			return
		}

		zap.L().Info("config reloaded", zap.String("file", e.Name), zap.String("op", e.Op.String()))
		onChange(next)
	})
	c.v.WatchConfig()
}
