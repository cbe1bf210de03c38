package config

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "DOOKIEES"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "DOOKIEES_APP_ENV"
	EnvPort     = "DOOKIEES_APP_PORT"
	EnvDBDSN    = "DOOKIEES_DB_DSN"
	EnvDBHost   = "DOOKIEES_DB_HOST"
	EnvDBUser   = "DOOKIEES_DB_USER"
	EnvDBName   = "DOOKIEES_DB_NAME"
	EnvRedisURL = "DOOKIEES_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
