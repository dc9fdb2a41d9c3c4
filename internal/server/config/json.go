package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tgproxy/internal/flagx"
	"github.com/dmitrijs2005/tgproxy/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// Durations use timex.Duration, which accepts both "10s" strings and integer
// nanoseconds. Only fields present in the file override the current Config.
type JsonConfig struct {
	EndpointAddrHTTP  *string         `json:"endpoint_addr_http"`
	APIID             *int            `json:"api_id"`
	APIHash           *string         `json:"api_hash"`
	SessionStore      *string         `json:"session_store"`
	SessionDir        *string         `json:"session_dir"`
	SQLitePath        *string         `json:"sqlite_path"`
	DatabaseDSN       *string         `json:"database_dsn"`
	S3RootUser        *string         `json:"s3_root_user"`
	S3RootPassword    *string         `json:"s3_root_password"`
	S3Bucket          *string         `json:"s3_bucket"`
	S3Region          *string         `json:"s3_region"`
	S3BaseEndpoint    *string         `json:"s3_base_endpoint"`
	S3Prefix          *string         `json:"s3_prefix"`
	SessionSecret     *string         `json:"session_secret"`
	ConnectionRetries *int            `json:"connection_retries"`
	DialTimeout       *timex.Duration `json:"dial_timeout"`
	DialogsLimit      *int            `json:"dialogs_limit"`
	MaxMessagesLimit  *int            `json:"max_messages_limit"`
	LogLevel          *string         `json:"log_level"`
	ShutdownTimeout   *timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags. If neither
// is set, no JSON file is loaded. If the file cannot be read or contains
// invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlayString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	overlayInt(&config.APIID, c.APIID)
	overlayString(&config.APIHash, c.APIHash)
	overlayString(&config.SessionStore, c.SessionStore)
	overlayString(&config.SessionDir, c.SessionDir)
	overlayString(&config.SQLitePath, c.SQLitePath)
	overlayString(&config.DatabaseDSN, c.DatabaseDSN)
	overlayString(&config.S3RootUser, c.S3RootUser)
	overlayString(&config.S3RootPassword, c.S3RootPassword)
	overlayString(&config.S3Bucket, c.S3Bucket)
	overlayString(&config.S3Region, c.S3Region)
	overlayString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	overlayString(&config.S3Prefix, c.S3Prefix)
	overlayString(&config.SessionSecret, c.SessionSecret)
	overlayInt(&config.ConnectionRetries, c.ConnectionRetries)
	overlayInt(&config.DialogsLimit, c.DialogsLimit)
	overlayInt(&config.MaxMessagesLimit, c.MaxMessagesLimit)
	overlayString(&config.LogLevel, c.LogLevel)
	if c.DialTimeout != nil {
		config.DialTimeout = c.DialTimeout.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func overlayString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func overlayInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
