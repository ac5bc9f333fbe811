package config

const (
	EnvPrefix = "MAZAD"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "MAZAD_DB_DSN"
	EnvDBHost = "MAZAD_DB_HOST"
	EnvDBUser = "MAZAD_DB_USER"
	EnvDBName = "MAZAD_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
