package config

import (
	"time"

	"github.com/caarlos0/env/v7"
)

type envConfig struct {
	HTTPAddr          string        `env:"USERSVC_HTTP_ADDR"`
	GRPCHealthAddr    string        `env:"USERSVC_GRPC_HEALTH_ADDR"`
	DatabaseDSN       string        `env:"USERSVC_DB_DSN"`
	SecretKey         string        `env:"USERSVC_JWT_SECRET"`
	TokenExpirationMS int64         `env:"USERSVC_JWT_EXPIRATION_MS"`
	BcryptCost        int           `env:"USERSVC_BCRYPT_COST"`
	LogFormat         string        `env:"USERSVC_LOG_FORMAT"`
	LogLevel          string        `env:"USERSVC_LOG_LEVEL"`
	ShutdownTimeout   time.Duration `env:"USERSVC_SHUTDOWN_TIMEOUT"`
	SMTPHost          string        `env:"USERSVC_SMTP_HOST"`
	SMTPPort          int           `env:"USERSVC_SMTP_PORT"`
	SMTPUsername      string        `env:"USERSVC_SMTP_USERNAME"`
	SMTPPassword      string        `env:"USERSVC_SMTP_PASSWORD"`
	SMTPFrom          string        `env:"USERSVC_SMTP_FROM"`
}

// parseEnv overlays USERSVC_* variables onto config. Unset variables leave
// the current value in place.
func parseEnv(config *Config, opts ...env.Options) error {
	c := envConfig{
		HTTPAddr:          config.HTTPAddr,
		GRPCHealthAddr:    config.GRPCHealthAddr,
		DatabaseDSN:       config.DatabaseDSN,
		SecretKey:         config.SecretKey,
		TokenExpirationMS: config.TokenExpiration.Milliseconds(),
		BcryptCost:        config.BcryptCost,
		LogFormat:         config.LogFormat,
		LogLevel:          config.LogLevel,
		ShutdownTimeout:   config.ShutdownTimeout,
		SMTPHost:          config.SMTP.Host,
		SMTPPort:          config.SMTP.Port,
		SMTPUsername:      config.SMTP.Username,
		SMTPPassword:      config.SMTP.Password,
		SMTPFrom:          config.SMTP.From,
	}

	if err := env.Parse(&c, opts...); err != nil {
		return err
	}

	config.HTTPAddr = c.HTTPAddr
	config.GRPCHealthAddr = c.GRPCHealthAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenExpiration = time.Duration(c.TokenExpirationMS) * time.Millisecond
	config.BcryptCost = c.BcryptCost
	config.LogFormat = c.LogFormat
	config.LogLevel = c.LogLevel
	config.ShutdownTimeout = c.ShutdownTimeout
	config.SMTP = SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		Username: c.SMTPUsername,
		Password: c.SMTPPassword,
		From:     c.SMTPFrom,
	}
	return nil
}
