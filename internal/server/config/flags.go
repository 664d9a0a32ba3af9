package config

import (
	"flag"
	"io"
	"time"

	"github.com/vmtecnologia/usersvc/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, milliseconds
//	-b int      bcrypt cost
//	-f string   log format, json or text
//	-l string   log level
//
// Arguments belonging to other flag sets (such as -c) are filtered out first.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-b", "-f", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run HTTP server")
	fs.StringVar(&config.GRPCHealthAddr, "g", config.GRPCHealthAddr, "address and port to run gRPC health server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format (json|text)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	tokenExpiration := fs.Int64("t", config.TokenExpiration.Milliseconds(), "token validity (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.TokenExpiration = time.Duration(*tokenExpiration) * time.Millisecond
	return nil
}
