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
	Ingest       IngestConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = "file:vendhub.db?cache=shared"
		}
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VENDHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"VENDHUB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VENDHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VENDHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VENDHUB_DB_DSN"`
	Driver string `envconfig:"VENDHUB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VENDHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"VENDHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VENDHUB_DB_USER"`
	LegacyPassword string `envconfig:"VENDHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"VENDHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"VENDHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VENDHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VENDHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VENDHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VENDHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VENDHUB_REDIS_URL" required:"true"`
	Address      string        `envconfig:"VENDHUB_REDIS_ADDR"`
	Password     string        `envconfig:"VENDHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"VENDHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VENDHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VENDHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VENDHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VENDHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VENDHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// IngestConfig bounds the CSV upload surface. Parsing and reconciliation
// behavior itself is fixed; only operational limits live here.
type IngestConfig struct {
	MaxUploadBytes   int64         `envconfig:"VENDHUB_INGEST_MAX_UPLOAD_BYTES" default:"10485760"`
	IdempotencyTTL   time.Duration `envconfig:"VENDHUB_INGEST_IDEMPOTENCY_TTL" default:"24h"`
	MaxErrorLines    int           `envconfig:"VENDHUB_INGEST_MAX_ERROR_LINES" default:"100"`
	UploadRateLimit  int64         `envconfig:"VENDHUB_INGEST_UPLOAD_RATE_LIMIT" default:"30"`
	UploadRateWindow time.Duration `envconfig:"VENDHUB_INGEST_UPLOAD_RATE_WINDOW" default:"1m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"VENDHUB_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"VENDHUB_AUTO_MIGRATE" default:"false"`
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
