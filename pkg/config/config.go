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
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Bidding      BiddingConfig
	Catalog      CatalogConfig
	Scheduler    SchedulerConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
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
	Env          string `envconfig:"MAZAD_APP_ENV" required:"true"`
	Port         string `envconfig:"MAZAD_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MAZAD_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MAZAD_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"MAZAD_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"MAZAD_DB_DSN"`
	Driver string `envconfig:"MAZAD_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MAZAD_DB_HOST"`
	LegacyPort     int    `envconfig:"MAZAD_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MAZAD_DB_USER"`
	LegacyPassword string `envconfig:"MAZAD_DB_PASSWORD"`
	LegacyName     string `envconfig:"MAZAD_DB_NAME"`
	LegacySSLMode  string `envconfig:"MAZAD_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MAZAD_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MAZAD_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MAZAD_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MAZAD_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MAZAD_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MAZAD_REDIS_ADDR"`
	Password     string        `envconfig:"MAZAD_REDIS_PASSWORD"`
	DB           int           `envconfig:"MAZAD_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MAZAD_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MAZAD_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MAZAD_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MAZAD_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MAZAD_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MAZAD_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MAZAD_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"MAZAD_JWT_EXPIRATION_MINUTES" default:"60"`
}

// BiddingConfig carries the tunables of the single-auction bidding engine.
type BiddingConfig struct {
	AntiSnipeWindow    time.Duration `envconfig:"MAZAD_BIDDING_ANTI_SNIPE_WINDOW" default:"60s"`
	AntiSnipeExtension time.Duration `envconfig:"MAZAD_BIDDING_ANTI_SNIPE_EXTENSION" default:"120s"`
	DefaultEntryFee    int64         `envconfig:"MAZAD_BIDDING_DEFAULT_ENTRY_FEE" default:"200"`
}

// CatalogConfig carries the tunables of sequential catalog sessions.
type CatalogConfig struct {
	LotDuration         time.Duration `envconfig:"MAZAD_CATALOG_LOT_DURATION" default:"90s"`
	DefaultBidIncrement int64         `envconfig:"MAZAD_CATALOG_DEFAULT_BID_INCREMENT" default:"500"`
}

type SchedulerConfig struct {
	SweepInterval time.Duration `envconfig:"MAZAD_SCHEDULER_SWEEP_INTERVAL" default:"60s"`
	LockTTL       time.Duration `envconfig:"MAZAD_SCHEDULER_LOCK_TTL" default:"5m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MAZAD_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"MAZAD_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"MAZAD_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"MAZAD_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	NotificationTopic        string `envconfig:"MAZAD_PUBSUB_NOTIFICATION_TOPIC" default:"mazad-notification-events"`
	NotificationSubscription string `envconfig:"MAZAD_PUBSUB_NOTIFICATION_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"MAZAD_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"MAZAD_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"MAZAD_OUTBOX_MAX_ATTEMPTS" default:"10"`
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
