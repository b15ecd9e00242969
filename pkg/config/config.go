package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Cashfree     CashfreeConfig
	Swipes       SwipeConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MOLLE_APP_ENV" required:"true"`
	Port         string `envconfig:"MOLLE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MOLLE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MOLLE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MOLLE_DB_DSN"`
	Driver string `envconfig:"MOLLE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MOLLE_DB_HOST"`
	LegacyPort     int    `envconfig:"MOLLE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MOLLE_DB_USER"`
	LegacyPassword string `envconfig:"MOLLE_DB_PASSWORD"`
	LegacyName     string `envconfig:"MOLLE_DB_NAME"`
	LegacySSLMode  string `envconfig:"MOLLE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MOLLE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MOLLE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MOLLE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MOLLE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MOLLE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MOLLE_REDIS_ADDR"`
	Password     string        `envconfig:"MOLLE_REDIS_PASSWORD"`
	DB           int           `envconfig:"MOLLE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MOLLE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MOLLE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MOLLE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MOLLE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MOLLE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MOLLE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MOLLE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"MOLLE_JWT_EXPIRATION_MINUTES" default:"60"`
}

type CashfreeConfig struct {
	ClientID      string        `envconfig:"MOLLE_CASHFREE_CLIENT_ID"`
	ClientSecret  string        `envconfig:"MOLLE_CASHFREE_CLIENT_SECRET"`
	WebhookSecret string        `envconfig:"MOLLE_CASHFREE_WEBHOOK_SECRET"`
	Env           string        `envconfig:"MOLLE_CASHFREE_ENV" default:"sandbox"`
	APIVersion    string        `envconfig:"MOLLE_CASHFREE_API_VERSION" default:"2023-08-01"`
	HTTPTimeout   time.Duration `envconfig:"MOLLE_CASHFREE_HTTP_TIMEOUT" default:"15s"`

	WebhookIdempotencyTTL time.Duration `envconfig:"MOLLE_CASHFREE_WEBHOOK_IDEMPOTENCY_TTL" default:"72h"`
}

// Environment returns the normalized Cashfree environment (sandbox/production).
func (c CashfreeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(c.Env))
	if env == "" {
		return "sandbox"
	}
	return env
}

type SwipeConfig struct {
	// FreeSwipes is the free allotment granted to users without a subscription.
	FreeSwipes int `envconfig:"MOLLE_SWIPES_FREE_ALLOTMENT" default:"3"`
	// PurchaseBaseGrant is added on top of the purchased swipe count when a
	// swipe-pack payment completes.
	PurchaseBaseGrant int `envconfig:"MOLLE_SWIPES_PURCHASE_BASE_GRANT" default:"3"`
	// PricePerSwipeINR prices swipe packs at purchase-order creation.
	PricePerSwipeINR int `envconfig:"MOLLE_SWIPES_PRICE_PER_SWIPE_INR" default:"10"`
	// DefaultDailyLimit seeds lazily-created user preferences.
	DefaultDailyLimit int `envconfig:"MOLLE_SWIPES_DEFAULT_DAILY_LIMIT" default:"20"`
}

type RateLimitConfig struct {
	SwipeWindow time.Duration `envconfig:"MOLLE_RATE_LIMIT_SWIPE_WINDOW" default:"1m"`
	SwipeLimit  int64         `envconfig:"MOLLE_RATE_LIMIT_SWIPE_LIMIT" default:"120"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MOLLE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
