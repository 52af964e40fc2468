package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	BaseURL        string

	// ResetPasswordURL is the page reset emails link to; the token is appended as a query parameter.
	ResetPasswordURL string

	JWTSecret string
	JWTIssuer string
	// Token lifetimes
	AccessTokenExpiryDuration        time.Duration
	RefreshTokenExpiryDuration       time.Duration
	VerifyEmailTokenExpiryDuration   time.Duration
	ResetPasswordTokenExpiryDuration time.Duration

	// SMTP. When SMTPHost is empty emails are logged instead of sent.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	InvoiceNumberPrefix  string
	InvoiceVATRate       decimal.Decimal
	OverdueSweepInterval time.Duration

	CORSAllowedOrigins []string
	AuthRateLimit      string
	PosthogAPIKey      string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("RESET_PASSWORD_URL", "")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "payzen")
	viper.SetDefault("JWT_ACCESS_EXPIRY_DURATION", "30m")
	viper.SetDefault("JWT_REFRESH_EXPIRY_DURATION", "720h")
	viper.SetDefault("JWT_VERIFY_EMAIL_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_RESET_PASSWORD_EXPIRY_DURATION", "10m")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("EMAIL_FROM", "Payzen <no-reply@payzen.local>")
	viper.SetDefault("INVOICE_NUMBER_PREFIX", "PZ-0")
	viper.SetDefault("INVOICE_VAT_RATE", "0.075")
	viper.SetDefault("OVERDUE_SWEEP_INTERVAL", "1h")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("AUTH_RATE_LIMIT", "5-M")
	viper.SetDefault("POSTHOG_API_KEY", "")

	// Environment variables override the defaults (and whatever .env put into the environment).
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.BaseURL = strings.TrimRight(viper.GetString("BASE_URL"), "/")
	cfg.ResetPasswordURL = strings.TrimSpace(viper.GetString("RESET_PASSWORD_URL"))
	if cfg.ResetPasswordURL == "" {
		cfg.ResetPasswordURL = cfg.BaseURL + "/api/v1/auth/reset-password"
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		// Token issuing fails with a signing error until a secret is configured.
		log.Println("Warning: JWT_SECRET environment variable not set. Tokens cannot be issued.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.AccessTokenExpiryDuration = durationOrDefault("JWT_ACCESS_EXPIRY_DURATION", 30*time.Minute)
	cfg.RefreshTokenExpiryDuration = durationOrDefault("JWT_REFRESH_EXPIRY_DURATION", 30*24*time.Hour)
	cfg.VerifyEmailTokenExpiryDuration = durationOrDefault("JWT_VERIFY_EMAIL_EXPIRY_DURATION", 24*time.Hour)
	cfg.ResetPasswordTokenExpiryDuration = durationOrDefault("JWT_RESET_PASSWORD_EXPIRY_DURATION", 10*time.Minute)
	cfg.OverdueSweepInterval = durationOrDefault("OVERDUE_SWEEP_INTERVAL", time.Hour)

	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetInt("SMTP_PORT")
	cfg.SMTPUsername = viper.GetString("SMTP_USERNAME")
	cfg.SMTPPassword = viper.GetString("SMTP_PASSWORD")
	cfg.EmailFrom = viper.GetString("EMAIL_FROM")
	if cfg.SMTPHost == "" {
		log.Println("Warning: SMTP_HOST not set. Emails will be written to the log instead of being sent.")
	}

	cfg.InvoiceNumberPrefix = viper.GetString("INVOICE_NUMBER_PREFIX")
	vatStr := viper.GetString("INVOICE_VAT_RATE")
	vat, err := decimal.NewFromString(vatStr)
	if err != nil || vat.IsNegative() {
		vat = decimal.RequireFromString("0.075")
		log.Printf("Warning: Invalid value for INVOICE_VAT_RATE ('%s'). Defaulting to %s.\n", vatStr, vat.String())
	}
	cfg.InvoiceVATRate = vat

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}
	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}

// durationOrDefault parses key as a time.Duration, logging and falling back to def when it is invalid.
func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}
