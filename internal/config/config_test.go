package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, ":5555", cfg.AppPort)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "recipebook.db", cfg.DatabaseDSN)
	assert.Equal(t, "session", cfg.SessionCookieName)
	assert.Equal(t, 168*time.Hour, cfg.SessionMaxAge)
	assert.False(t, cfg.SessionCookieSecure)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, devSessionSecret, cfg.SessionSecret)
}

func TestFromViper_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", ":9000")
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("DATABASE_DSN", "host=db user=app dbname=recipes sslmode=disable")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_MAX_AGE", "30m")
	t.Setenv("SESSION_COOKIE_SECURE", "true")

	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.AppPort)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.Equal(t, 30*time.Minute, cfg.SessionMaxAge)
	assert.True(t, cfg.SessionCookieSecure)
}

func TestFromViper_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want error
	}{
		{
			name: "unknown driver",
			env:  map[string]string{"DB_DRIVER": "mysql"},
			want: ErrUnknownDriver,
		},
		{
			name: "production without secret",
			env:  map[string]string{"APP_ENV": "production"},
			want: ErrMissingSecret,
		},
		{
			name: "non-positive max age",
			env:  map[string]string{"SESSION_MAX_AGE": "0s"},
			want: ErrInvalidMaxAge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromViper(newViper())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
