package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	API       APIConfig
	Sales     SalesConfig
	Export    ExportConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Debug bool
}

type APIConfig struct {
	BaseURL string
	Prefix  string
	Timeout time.Duration
}

type SalesConfig struct {
	// WalkInCustomerName is the reserved customer label for anonymous
	// counter sales, matched case-insensitively against the directory.
	WalkInCustomerName   string
	DefaultPaymentMethod string
}

type ExportConfig struct {
	Dir         string
	PreviewRows int
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "avicola-console")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_DEBUG", false)
	viper.SetDefault("API_BASE_URL", "http://localhost:3000")
	viper.SetDefault("API_PREFIX", "/api/v1")
	viper.SetDefault("API_TIMEOUT_SECONDS", 15)
	viper.SetDefault("WALKIN_CUSTOMER_NAME", "Mostrador")
	viper.SetDefault("DEFAULT_PAYMENT_METHOD", "Efectivo")
	viper.SetDefault("EXPORT_DIR", "./exports")
	viper.SetDefault("EXPORT_PREVIEW_ROWS", 10)
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		API: APIConfig{
			BaseURL: viper.GetString("API_BASE_URL"),
			Prefix:  viper.GetString("API_PREFIX"),
			Timeout: time.Duration(viper.GetInt("API_TIMEOUT_SECONDS")) * time.Second,
		},
		Sales: SalesConfig{
			WalkInCustomerName:   viper.GetString("WALKIN_CUSTOMER_NAME"),
			DefaultPaymentMethod: viper.GetString("DEFAULT_PAYMENT_METHOD"),
		},
		Export: ExportConfig{
			Dir:         viper.GetString("EXPORT_DIR"),
			PreviewRows: viper.GetInt("EXPORT_PREVIEW_ROWS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
	}
}
