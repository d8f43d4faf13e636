package config

import (
	"os"
	"strconv"
)

// AppConfig centralizes the fallback constants that used to live as inline
// literals in different code paths (default tenant, default duration).
type AppConfig struct {
	DefaultCompanyID       string
	DefaultBookingDuration int // minutes
	VATRate                float64
	Currency               string
	MonitorSecret          string
	StripeSecretKey        string
}

var app *AppConfig

// App returns the process-wide configuration, loading it from the
// environment on first use.
func App() *AppConfig {
	if app == nil {
		app = &AppConfig{
			DefaultCompanyID:       getEnv("DEFAULT_COMPANY_ID", "default-company"),
			DefaultBookingDuration: getEnvInt("DEFAULT_BOOKING_DURATION", 120),
			VATRate:                0.25,
			Currency:               "DKK",
			MonitorSecret:          os.Getenv("MONITOR_SECRET"),
			StripeSecretKey:        os.Getenv("STRIPE_SECRET_KEY"),
		}
	}
	return app
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
