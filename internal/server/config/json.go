package config

import (
	"encoding/json"
	"os"

	"github.com/vmtecnologia/usersvc/internal/flagx"
	"github.com/vmtecnologia/usersvc/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations accept
// either a Go duration string ("1h") or an integer number of milliseconds.
type JsonConfig struct {
	HTTPAddr        string         `json:"http_addr"`
	GRPCHealthAddr  string         `json:"grpc_health_addr"`
	DatabaseDSN     string         `json:"database_dsn"`
	SecretKey       string         `json:"jwt_secret"`
	TokenExpiration timex.Duration `json:"jwt_expiration"`
	BcryptCost      int            `json:"bcrypt_cost"`
	LogFormat       string         `json:"log_format"`
	LogLevel        string         `json:"log_level"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
	SMTPHost        string         `json:"smtp_host"`
	SMTPPort        int            `json:"smtp_port"`
	SMTPUsername    string         `json:"smtp_username"`
	SMTPPassword    string         `json:"smtp_password"`
	SMTPFrom        string         `json:"smtp_from"`
}

// parseJson overlays the file named by -c/-config onto config. Keys absent
// from the file leave the current value in place. No flag, no change.
func parseJson(config *Config, args []string) error {
	jsonConfigFile := flagx.ConfigFilePath(args)

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return err
	}

	c := &JsonConfig{
		HTTPAddr:        config.HTTPAddr,
		GRPCHealthAddr:  config.GRPCHealthAddr,
		DatabaseDSN:     config.DatabaseDSN,
		SecretKey:       config.SecretKey,
		TokenExpiration: timex.Duration{Duration: config.TokenExpiration},
		BcryptCost:      config.BcryptCost,
		LogFormat:       config.LogFormat,
		LogLevel:        config.LogLevel,
		ShutdownTimeout: timex.Duration{Duration: config.ShutdownTimeout},
		SMTPHost:        config.SMTP.Host,
		SMTPPort:        config.SMTP.Port,
		SMTPUsername:    config.SMTP.Username,
		SMTPPassword:    config.SMTP.Password,
		SMTPFrom:        config.SMTP.From,
	}

	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	config.HTTPAddr = c.HTTPAddr
	config.GRPCHealthAddr = c.GRPCHealthAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenExpiration = c.TokenExpiration.Duration
	config.BcryptCost = c.BcryptCost
	config.LogFormat = c.LogFormat
	config.LogLevel = c.LogLevel
	config.ShutdownTimeout = c.ShutdownTimeout.Duration
	config.SMTP = SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		Username: c.SMTPUsername,
		Password: c.SMTPPassword,
		From:     c.SMTPFrom,
	}
	return nil
}
