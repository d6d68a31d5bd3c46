package config

// EnvPrefix is the envconfig prefix shared by every VendHub variable.
const EnvPrefix = "VENDHUB"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names, spelled out so tests and tooling can
// reference them without string literals drifting.
const (
	EnvAppEnv       = "VENDHUB_APP_ENV"
	EnvPort         = "VENDHUB_APP_PORT"
	EnvLogLevel     = "VENDHUB_LOG_LEVEL"
	EnvLogWarnStack = "VENDHUB_LOG_WARN_STACK"

	EnvDBDSN     = "VENDHUB_DB_DSN"
	EnvDBDriver  = "VENDHUB_DB_DRIVER"
	EnvDBHost    = "VENDHUB_DB_HOST"
	EnvDBPort    = "VENDHUB_DB_PORT"
	EnvDBUser    = "VENDHUB_DB_USER"
	EnvDBPass    = "VENDHUB_DB_PASSWORD"
	EnvDBName    = "VENDHUB_DB_NAME"
	EnvDBSSLMode = "VENDHUB_DB_SSLMODE"

	EnvRedisURL = "VENDHUB_REDIS_URL"

	EnvUseSQLite   = "VENDHUB_USE_SQLITE"
	EnvAutoMigrate = "VENDHUB_AUTO_MIGRATE"

	EnvIngestMaxUploadBytes = "VENDHUB_INGEST_MAX_UPLOAD_BYTES"
	EnvIngestIdempotencyTTL = "VENDHUB_INGEST_IDEMPOTENCY_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
