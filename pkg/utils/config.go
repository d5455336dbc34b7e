package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Sync     SyncConfig
	Email    EmailConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string // empty disables caching
	Password string
	DB       int
	TTL      time.Duration
}

// SyncConfig configures the external reservation platform mirror.
type SyncConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REDIS_TTL_MINUTES", 15)
	viper.SetDefault("SYNC_TIMEOUT_SECONDS", 10)
	viper.SetDefault("SMTP_PORT", 587)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASS"),
			DB:       viper.GetInt("REDIS_DB"),
			TTL:      time.Duration(viper.GetInt("REDIS_TTL_MINUTES")) * time.Minute,
		},
		Sync: SyncConfig{
			BaseURL: viper.GetString("SYNC_BASE_URL"),
			APIKey:  viper.GetString("SYNC_API_KEY"),
			Timeout: time.Duration(viper.GetInt("SYNC_TIMEOUT_SECONDS")) * time.Second,
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
			FromName: viper.GetString("EMAIL_FROM_NAME"),
		},
	}

	return config, nil
}
