package landing

import "time"

// Config represents the main config
type Config struct {
	DB struct {
		Type     string // "postgres", "sqlite", "bolt" or "mongo"
		Path     string
		Host     string
		Port     int
		Name     string
		User     string
		Password string
		URI      string
		Timeout  time.Duration
	}

	HTTP struct {
		Addr     string
		Domain   string
		MaxConns int `mapstructure:"max_conns"`
	}

	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
	}

	Newsletter struct {
		From    string
		Product struct {
			Name string
			Link string
		}
		HMAC struct {
			Secret   string
			Required bool
		}
	}

	Contact struct {
		AdminEmail string `mapstructure:"admin_email"`
	}

	Sentry struct {
		DSN string
	}
}
