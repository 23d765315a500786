package main

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rideaware/landing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := loadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", config.HTTP.Addr)
	assert.Equal(t, "postgres", config.DB.Type)
	assert.Equal(t, 5432, config.DB.Port)
	assert.Equal(t, 10*time.Second, config.DB.Timeout)
	assert.Equal(t, 465, config.SMTP.Port)
	assert.Equal(t, "RideAware", config.Newsletter.Product.Name)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("PG_HOST", "db.internal")
	t.Setenv("PG_PORT", "6543")
	t.Setenv("PG_DATABASE", "rideaware")
	t.Setenv("SMTP_SERVER", "smtp.example.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("ADMIN_EMAIL", "admin@rideaware.org")
	t.Setenv("HMAC_SECRET", "s3cret")
	t.Setenv("PORT", "8080")

	config, err := loadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "db.internal", config.DB.Host)
	assert.Equal(t, 6543, config.DB.Port)
	assert.Equal(t, "rideaware", config.DB.Name)
	assert.Equal(t, "smtp.example.com", config.SMTP.Host)
	assert.Equal(t, 587, config.SMTP.Port)
	assert.Equal(t, "admin@rideaware.org", config.Contact.AdminEmail)
	assert.Equal(t, "s3cret", config.Newsletter.HMAC.Secret)
	assert.Equal(t, "0.0.0.0:8080", config.HTTP.Addr)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`
http:
  addr: 127.0.0.1:9000
  max_conns: 64
db:
  type: sqlite
  path: /var/lib/landing/landing.db
newsletter:
  hmac:
    required: true
`)
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "config.yaml"), data, 0o600))
	t.Setenv("DB_TYPE", "bolt")

	config, err := loadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", config.HTTP.Addr)
	assert.Equal(t, 64, config.HTTP.MaxConns)
	assert.Equal(t, "bolt", config.DB.Type)
	assert.Equal(t, "/var/lib/landing/landing.db", config.DB.Path)
	assert.True(t, config.Newsletter.HMAC.Required)
}

func TestOpenStore(t *testing.T) {
	for _, typ := range []string{"sqlite", "bolt"} {
		t.Run(typ, func(t *testing.T) {
			var config landing.Config
			config.DB.Type = typ
			config.DB.Path = filepath.Join(t.TempDir(), "landing.db")

			store, err := openStore(&config, zerolog.Nop())
			require.NoError(t, err)
			require.NoError(t, store.Open())
			defer store.Close()

			newsletters, err := store.ListNewsletters(context.Background())
			require.NoError(t, err)
			assert.Empty(t, newsletters)
		})
	}

	var config landing.Config
	config.DB.Type = "mysql"
	_, err := openStore(&config, zerolog.Nop())
	assert.Error(t, err)
}
