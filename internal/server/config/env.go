package config

import (
	"os"
	"strconv"
	"time"

	"github.com/subosito/gotenv"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first when present; variables already set in
// the process environment take precedence over it.
//
// Recognized variables:
//
//	API_ID, API_HASH, ADDRESS, SESSION_STORE, SESSION_DIR, SQLITE_PATH,
//	DATABASE_DSN, S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION,
//	S3_BASE_ENDPOINT, S3_PREFIX, SESSION_SECRET, CONNECTION_RETRIES,
//	DIAL_TIMEOUT, LOG_LEVEL
//
// A non-numeric API_ID is ignored so the server still starts and reports a
// configuration error per request.
func parseEnv(config *Config) {
	_ = gotenv.Load()

	setString(&config.APIHash, "API_HASH")
	setString(&config.EndpointAddrHTTP, "ADDRESS")
	setString(&config.SessionStore, "SESSION_STORE")
	setString(&config.SessionDir, "SESSION_DIR")
	setString(&config.SQLitePath, "SQLITE_PATH")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.S3RootUser, "S3_ROOT_USER")
	setString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "S3_BUCKET")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	setString(&config.S3Prefix, "S3_PREFIX")
	setString(&config.SessionSecret, "SESSION_SECRET")
	setString(&config.LogLevel, "LOG_LEVEL")
	setInt(&config.APIID, "API_ID")
	setInt(&config.ConnectionRetries, "CONNECTION_RETRIES")

	if v, ok := os.LookupEnv("DIAL_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.DialTimeout = d
		}
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
