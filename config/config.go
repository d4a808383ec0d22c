package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string
	Port int
}

func (s ServerConfig) Addr() string {
	host := s.Host
	if host == "" {
		host = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d", host, s.Port)
}

// MongoConfig holds the document-store connection settings.
type MongoConfig struct {
	URI      string
	Database string
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSecret      string
	TokenTTL       time.Duration
	GoogleClientID string
}

// MailConfig holds the transactional-mail sender settings.
type MailConfig struct {
	APIKey    string
	FromName  string
	FromEmail string
}

// StripeConfig holds the payment-gateway settings.
type StripeConfig struct {
	APIKey   string
	Currency string
}

// PricingConfig holds the server-side amounts added to every order.
// Client-supplied amounts are never used.
type PricingConfig struct {
	ShippingFee     float64
	TaxRate         float64
	FreeShippingMin float64
}

// Config is the process-wide configuration, loaded once at startup.
type Config struct {
	Server  ServerConfig
	Mongo   MongoConfig
	Auth    AuthConfig
	Mail    MailConfig
	Stripe  StripeConfig
	Pricing PricingConfig
}

// Load reads the configuration from environment variables, applying
// defaults for everything except secrets.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: os.Getenv("HOST"),
			Port: envInt("PORT", 8000),
		},
		Mongo: MongoConfig{
			URI:      envStr("MONGO_URI", "mongodb://localhost:27017"),
			Database: envStr("MONGO_DATABASE", "ecommerce"),
		},
		Auth: AuthConfig{
			JWTSecret:      os.Getenv("JWT_SECRET"),
			TokenTTL:       time.Duration(envInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
			GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		},
		Mail: MailConfig{
			APIKey:    os.Getenv("SENDGRID_API_KEY"),
			FromName:  envStr("EMAIL_SENDER_NAME", "E-commerce Platform"),
			FromEmail: envStr("EMAIL_SENDER", "no-reply@example.com"),
		},
		Stripe: StripeConfig{
			APIKey:   os.Getenv("STRIPE_API_KEY"),
			Currency: envStr("STRIPE_CURRENCY", "usd"),
		},
		Pricing: PricingConfig{
			ShippingFee:     envFloat("SHIPPING_FEE", 5),
			TaxRate:         envFloat("TAX_RATE", 0.07),
			FreeShippingMin: envFloat("FREE_SHIPPING_MIN", 100),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
