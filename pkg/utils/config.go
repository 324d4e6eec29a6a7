package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Broker      BrokerConfig
	Reservation ReservationConfig
	Jobs        JobsConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	MaxConns   int32
	MaxRetries int
}

// RedisConfig leaves Addr empty to disable the rate cache.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	RateCacheTTL time.Duration
}

// BrokerConfig leaves URL empty to disable event publishing.
type BrokerConfig struct {
	URL      string
	Exchange string
}

type ReservationConfig struct {
	Location        *time.Location
	DefaultCurrency string
	PendingTTL      time.Duration
}

type JobsConfig struct {
	InvoiceRetrySpec  string
	PendingExpirySpec string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "hotel-reservation")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("TX_MAX_RETRIES", 3)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_CACHE_TTL_MINUTES", 10)
	viper.SetDefault("BROKER_EXCHANGE", "reservation.events")
	viper.SetDefault("HOTEL_TIMEZONE", "UTC")
	viper.SetDefault("DEFAULT_CURRENCY", "USD")
	viper.SetDefault("PENDING_PAYMENT_TTL_MINUTES", 30)
	viper.SetDefault("INVOICE_RETRY_CRON", "*/5 * * * *")
	viper.SetDefault("PENDING_EXPIRY_CRON", "* * * * *")

	// .env is optional, containers pass plain environment
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	loc, err := time.LoadLocation(viper.GetString("HOTEL_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("load hotel timezone %s: %w", viper.GetString("HOTEL_TIMEZONE"), err)
	}

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:       viper.GetString("DB_HOST"),
			Port:       viper.GetString("DB_PORT"),
			Name:       viper.GetString("DB_NAME"),
			User:       viper.GetString("DB_USER"),
			Password:   viper.GetString("DB_PASS"),
			MaxConns:   viper.GetInt32("DB_MAX_CONNS"),
			MaxRetries: viper.GetInt("TX_MAX_RETRIES"),
		},
		Redis: RedisConfig{
			Addr:         viper.GetString("REDIS_ADDR"),
			Password:     viper.GetString("REDIS_PASSWORD"),
			DB:           viper.GetInt("REDIS_DB"),
			RateCacheTTL: time.Duration(viper.GetInt("RATE_CACHE_TTL_MINUTES")) * time.Minute,
		},
		Broker: BrokerConfig{
			URL:      viper.GetString("RABBITMQ_URL"),
			Exchange: viper.GetString("BROKER_EXCHANGE"),
		},
		Reservation: ReservationConfig{
			Location:        loc,
			DefaultCurrency: viper.GetString("DEFAULT_CURRENCY"),
			PendingTTL:      time.Duration(viper.GetInt("PENDING_PAYMENT_TTL_MINUTES")) * time.Minute,
		},
		Jobs: JobsConfig{
			InvoiceRetrySpec:  viper.GetString("INVOICE_RETRY_CRON"),
			PendingExpirySpec: viper.GetString("PENDING_EXPIRY_CRON"),
		},
	}

	return config, nil
}
