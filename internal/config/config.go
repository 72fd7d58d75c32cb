package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Session  SessionConfig
	Payment  PaymentConfig
	Admin    AdminConfig
	Order    OrderConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port int
}

// DatabaseConfig is the MySQL catalog store (menu items and addons).
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// MongoConfig is the order document store.
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// RedisConfig is the session store backing carts and pending-order snapshots.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

type PaymentConfig struct {
	Provider      string
	ServerKey     string
	ClientKey     string
	SnapURL       string
	StatusURL     string
	CreateTimeout time.Duration
	StatusTimeout time.Duration
}

type AdminConfig struct {
	Username string
	Password string
}

type OrderConfig struct {
	SaveRetryAttempts   int
	LookupRetryAttempts int
	RetryBackoff        time.Duration
	AllowBackward       bool
	StapleAddonName     string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "catering")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "catering")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "catering")
	viper.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SESSION_COOKIE_NAME", "catering_session")
	viper.SetDefault("SESSION_TTL", "24h")
	viper.SetDefault("PAYMENT_PROVIDER", "midtrans")
	viper.SetDefault("PAYMENT_SERVER_KEY", "")
	viper.SetDefault("PAYMENT_CLIENT_KEY", "")
	viper.SetDefault("PAYMENT_SNAP_URL", "https://app.sandbox.midtrans.com/snap/v1/transactions")
	viper.SetDefault("PAYMENT_STATUS_URL", "https://api.sandbox.midtrans.com/v2")
	viper.SetDefault("PAYMENT_CREATE_TIMEOUT", "30s")
	viper.SetDefault("PAYMENT_STATUS_TIMEOUT", "10s")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "admin123")
	viper.SetDefault("ORDER_SAVE_RETRY_ATTEMPTS", 3)
	viper.SetDefault("ORDER_LOOKUP_RETRY_ATTEMPTS", 3)
	viper.SetDefault("ORDER_RETRY_BACKOFF", "1s")
	viper.SetDefault("ORDER_ALLOW_BACKWARD", false)
	viper.SetDefault("ORDER_STAPLE_ADDON_NAME", "Rice")
	viper.SetDefault("LOG_LEVEL", "info")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}
	mongoTimeout, err := time.ParseDuration(viper.GetString("MONGO_CONNECT_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	sessionTTL, err := time.ParseDuration(viper.GetString("SESSION_TTL"))
	if err != nil {
		return nil, err
	}
	createTimeout, err := time.ParseDuration(viper.GetString("PAYMENT_CREATE_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	statusTimeout, err := time.ParseDuration(viper.GetString("PAYMENT_STATUS_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	retryBackoff, err := time.ParseDuration(viper.GetString("ORDER_RETRY_BACKOFF"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Mongo: MongoConfig{
			URI:            viper.GetString("MONGO_URI"),
			Database:       viper.GetString("MONGO_DATABASE"),
			ConnectTimeout: mongoTimeout,
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			CookieName: viper.GetString("SESSION_COOKIE_NAME"),
			TTL:        sessionTTL,
		},
		Payment: PaymentConfig{
			Provider:      viper.GetString("PAYMENT_PROVIDER"),
			ServerKey:     viper.GetString("PAYMENT_SERVER_KEY"),
			ClientKey:     viper.GetString("PAYMENT_CLIENT_KEY"),
			SnapURL:       viper.GetString("PAYMENT_SNAP_URL"),
			StatusURL:     viper.GetString("PAYMENT_STATUS_URL"),
			CreateTimeout: createTimeout,
			StatusTimeout: statusTimeout,
		},
		Admin: AdminConfig{
			Username: viper.GetString("ADMIN_USERNAME"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
		Order: OrderConfig{
			SaveRetryAttempts:   viper.GetInt("ORDER_SAVE_RETRY_ATTEMPTS"),
			LookupRetryAttempts: viper.GetInt("ORDER_LOOKUP_RETRY_ATTEMPTS"),
			RetryBackoff:        retryBackoff,
			AllowBackward:       viper.GetBool("ORDER_ALLOW_BACKWARD"),
			StapleAddonName:     viper.GetString("ORDER_STAPLE_ADDON_NAME"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
