package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Bkash    BkashConfig
	HTTP     HTTPConfig
	Rabbit   RabbitConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type BkashConfig struct {
	GrantTokenURL     string
	CreatePaymentURL  string
	ExecutePaymentURL string
	AppKey            string
	AppSecret         string
	Username          string
	Password          string
	CallbackURL       string
	Currency          string
	Timeout           time.Duration
	SessionTTL        time.Duration
}

type HTTPConfig struct {
	CORSOrigin  string
	FrontendURL string
}

type RabbitConfig struct {
	URL      string
	Exchange string
}

// LoadConfig reads an optional .env file, then lets the environment override it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	v.SetDefault("APP_NAME", "brave-registration")
	v.SetDefault("PORT", "4000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("BKASH_CALLBACK_URL", "http://localhost:4000/api/v1/bkash-execute-payment")
	v.SetDefault("BKASH_CURRENCY", "BDT")
	v.SetDefault("BKASH_TIMEOUT_SECONDS", 30)
	v.SetDefault("BKASH_SESSION_TTL_MINUTES", 30)
	v.SetDefault("CORS_ORIGIN", "http://localhost:5173")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("RABBIT_EXCHANGE", "registration.exchange")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Bkash: BkashConfig{
			GrantTokenURL:     v.GetString("BKASH_GRANT_TOKEN_URL"),
			CreatePaymentURL:  v.GetString("BKASH_CREATE_PAYMENT_URL"),
			ExecutePaymentURL: v.GetString("BKASH_EXECUTE_PAYMENT_URL"),
			AppKey:            v.GetString("BKASH_API_KEY"),
			AppSecret:         v.GetString("BKASH_SECRET_KEY"),
			Username:          v.GetString("BKASH_USERNAME"),
			Password:          v.GetString("BKASH_PASSWORD"),
			CallbackURL:       v.GetString("BKASH_CALLBACK_URL"),
			Currency:          v.GetString("BKASH_CURRENCY"),
			Timeout:           time.Duration(v.GetInt("BKASH_TIMEOUT_SECONDS")) * time.Second,
			SessionTTL:        time.Duration(v.GetInt("BKASH_SESSION_TTL_MINUTES")) * time.Minute,
		},
		HTTP: HTTPConfig{
			CORSOrigin:  v.GetString("CORS_ORIGIN"),
			FrontendURL: v.GetString("FRONTEND_URL"),
		},
		Rabbit: RabbitConfig{
			URL:      v.GetString("RABBIT_URL"),
			Exchange: v.GetString("RABBIT_EXCHANGE"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	var missing []string

	if c.Database.URL == "" && c.Database.Name == "" {
		missing = append(missing, "DATABASE_URL or DB_NAME")
	}

	required := map[string]string{
		"BKASH_GRANT_TOKEN_URL":     c.Bkash.GrantTokenURL,
		"BKASH_CREATE_PAYMENT_URL":  c.Bkash.CreatePaymentURL,
		"BKASH_EXECUTE_PAYMENT_URL": c.Bkash.ExecutePaymentURL,
		"BKASH_API_KEY":             c.Bkash.AppKey,
		"BKASH_SECRET_KEY":          c.Bkash.AppSecret,
		"BKASH_USERNAME":            c.Bkash.Username,
		"BKASH_PASSWORD":            c.Bkash.Password,
	}
	for _, key := range []string{
		"BKASH_GRANT_TOKEN_URL", "BKASH_CREATE_PAYMENT_URL", "BKASH_EXECUTE_PAYMENT_URL",
		"BKASH_API_KEY", "BKASH_SECRET_KEY", "BKASH_USERNAME", "BKASH_PASSWORD",
	} {
		if required[key] == "" {
			missing = append(missing, key)
		}
	}

	if c.Bkash.Timeout <= 0 {
		missing = append(missing, "BKASH_TIMEOUT_SECONDS")
	}
	if c.Bkash.SessionTTL <= 0 {
		missing = append(missing, "BKASH_SESSION_TTL_MINUTES")
	}

	if len(missing) > 0 {
		return fmt.Errorf("invalid config, missing: %v", missing)
	}
	return nil
}
