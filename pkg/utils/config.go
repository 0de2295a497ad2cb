package utils

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Redis    RedisConfig
	Queue    QueueConfig
	Ticket   TicketConfig
	Admin    AdminConfig
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
	Migrate  bool
}

type SessionConfig struct {
	TTL time.Duration
}

// RedisConfig is optional; an empty Addr disables the catalog cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// QueueConfig is optional; an empty URL disables booking events.
type QueueConfig struct {
	URL          string
	BookingQueue string
}

type TicketConfig struct {
	Issuer string
}

// AdminConfig seeds the first administrator account on startup when set.
type AdminConfig struct {
	Username string
	Email    string
	Password string
	Phone    string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "movie-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MIGRATE", true)
	viper.SetDefault("SESSION_TTL_HOURS", 24)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL", "5m")
	viper.SetDefault("BOOKING_EVENTS_QUEUE", "booking.created")
	viper.SetDefault("TICKET_ISSUER", "Movie Booking")
	viper.SetDefault("ADMIN_PHONE", "0000000000")

	// .env is optional, the environment alone is enough
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
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
			Migrate:  viper.GetBool("DB_MIGRATE"),
		},
		Session: SessionConfig{
			TTL: time.Duration(viper.GetInt("SESSION_TTL_HOURS")) * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			CacheTTL: viper.GetDuration("CACHE_TTL"),
		},
		Queue: QueueConfig{
			URL:          viper.GetString("AMQP_URL"),
			BookingQueue: viper.GetString("BOOKING_EVENTS_QUEUE"),
		},
		Ticket: TicketConfig{
			Issuer: viper.GetString("TICKET_ISSUER"),
		},
		Admin: AdminConfig{
			Username: viper.GetString("ADMIN_USERNAME"),
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: viper.GetString("ADMIN_PASSWORD"),
			Phone:    viper.GetString("ADMIN_PHONE"),
		},
	}

	return config, nil
}
