package config

const EnvPrefix = "MOLLE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "MOLLE_DB_DSN"
	EnvDBHost = "MOLLE_DB_HOST"
	EnvDBUser = "MOLLE_DB_USER"
	EnvDBName = "MOLLE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
