// Package config loads SmartWords configuration with spf13/viper.
//
// Values come from, in order of precedence: environment variables, an
// optional config file (YAML, TOML or JSON), then defaults.
//
// # Environment Variables
//
//	SERVER_PORT              HTTP port (default 8080)
//	SERVER_ENV               development | production | test
//	CORS_ALLOWED_ORIGINS     comma-separated origins
//	STORE_BACKEND            surrealdb | mongodb | sqlite | memory
//	STORE_HEALTH_INTERVAL    store ping interval (default 30s)
//	DB_HOST, DB_PORT, DB_NAMESPACE, DB_DATABASE, DB_USER, DB_PASSWORD, DB_TIMEOUT
//	MONGO_URI, MONGO_DATABASE, MONGO_CONNECT_TIMEOUT, MONGO_OPERATION_TIMEOUT
//	SQLITE_PATH
//	LOG_LEVEL, LOG_FORMAT
//	OTEL_SERVICE_NAME, OTEL_ENDPOINT, OTEL_SAMPLE_RATE
//	RATE_LIMIT_RPS, RATE_LIMIT_BURST
//
// # Usage
//
//	cfg, err := config.Load(configFile)
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
