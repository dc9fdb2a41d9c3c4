package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/tgproxy/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-i int      Telegram API id
//	-k string   Telegram API hash
//	-t string   session store (memory, file, sqlite, postgres, s3)
//	-f string   session directory for the file store
//	-q string   SQLite database path
//	-d string   PostgreSQL DSN
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-x string   S3 key prefix
//	-s string   session sealing secret
//	-r int      connection retries
//	-v string   log level
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-i", "-k", "-t", "-f", "-q", "-d", "-u", "-p", "-b", "-g", "-e", "-x", "-s", "-r", "-v",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.IntVar(&config.APIID, "i", config.APIID, "telegram api id")
	fs.StringVar(&config.APIHash, "k", config.APIHash, "telegram api hash")
	fs.StringVar(&config.SessionStore, "t", config.SessionStore, "session store backend")
	fs.StringVar(&config.SessionDir, "f", config.SessionDir, "session directory")
	fs.StringVar(&config.SQLitePath, "q", config.SQLitePath, "sqlite database path")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3Prefix, "x", config.S3Prefix, "S3 key prefix")
	fs.StringVar(&config.SessionSecret, "s", config.SessionSecret, "session sealing secret")
	fs.IntVar(&config.ConnectionRetries, "r", config.ConnectionRetries, "connection retries")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
