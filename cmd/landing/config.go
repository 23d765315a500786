package main

import (
	"net"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/rideaware/landing"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "5000"
)

// envBindings maps config keys to the environment variables deployments
// already set.
var envBindings = map[string]string{
	"db.type":                "DB_TYPE",
	"db.path":                "DB_PATH",
	"db.host":                "PG_HOST",
	"db.port":                "PG_PORT",
	"db.name":                "PG_DATABASE",
	"db.user":                "PG_USER",
	"db.password":            "PG_PASSWORD",
	"db.uri":                 "MONGO_URI",
	"smtp.host":              "SMTP_SERVER",
	"smtp.port":              "SMTP_PORT",
	"smtp.username":          "SMTP_USER",
	"smtp.password":          "SMTP_PASSWORD",
	"contact.admin_email":    "ADMIN_EMAIL",
	"sentry.dsn":             "SENTRY_DSN",
	"newsletter.hmac.secret": "HMAC_SECRET",
}

// loadConfig reads config.yaml from paths when present, then applies
// environment overrides on top of the defaults.
func loadConfig(paths ...string) (*landing.Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetDefault("http.addr", net.JoinHostPort(defaultHost, defaultPort))
	v.SetDefault("db.type", "postgres")
	v.SetDefault("db.path", "landing.db")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "landing")
	v.SetDefault("db.timeout", "10s")
	v.SetDefault("smtp.port", 465)
	v.SetDefault("newsletter.product.name", "RideAware")
	v.SetDefault("newsletter.product.link", "https://rideaware.org")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, errors.Wrapf(err, "failed to bind %s", env)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	var config landing.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	if host, port := os.Getenv("HOST"), os.Getenv("PORT"); host != "" || port != "" {
		if host == "" {
			host = defaultHost
		}
		if port == "" {
			port = defaultPort
		}
		config.HTTP.Addr = net.JoinHostPort(host, port)
	}

	return &config, nil
}
