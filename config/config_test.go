package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
port: "9090"
timezone: UTC
database:
  driver: sqlite
  path: /tmp/expiry-test.db
jwt:
  access_ttl: 15m
sections: [bakery, dairy]
users:
  - username: admin
    password_hash: "$2a$10$abcdefghijklmnopqrstuuJ8v3hZ8Yh1n6u0sA3iU5E6bq2m0QeG."
    section: all
  - username: baker
    password_hash: "$2a$10$abcdefghijklmnopqrstuuJ8v3hZ8Yh1n6u0sA3iU5E6bq2m0QeG."
    section: bakery
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileAndEnv(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("DATABASE_PATH", "/tmp/override.db")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWT.SecretKey)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
	assert.Equal(t, []string{"bakery", "dairy"}, cfg.Sections)
	require.Len(t, cfg.Users, 2)
	assert.Equal(t, "baker", cfg.Users[1].Username)
	assert.Equal(t, "bakery", cfg.Users[1].Section)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_MissingFileStillNeedsUsers(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "s3cret")

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no users")
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load(writeConfig(t, sampleYAML))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret_key")
}

func validConfig() *Config {
	return &Config{
		Timezone: "UTC",
		Database: DatabaseConfig{Driver: DriverSQLite, Path: "x.db"},
		JWT:      JWTConfig{SecretKey: "k", AccessTTL: time.Hour, RefreshTTL: time.Hour},
		Sections: []string{"bakery"},
		Users: []UserConfig{
			{Username: "admin", PasswordHash: "h", Section: "all"},
			{Username: "baker", PasswordHash: "h", Section: "bakery"},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "unsupported database.driver"},
		{"postgres needs no path", func(c *Config) {
			c.Database.Driver = DriverPostgres
			c.Database.Path = ""
		}, ""},
		{"sqlite needs path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "invalid timezone"},
		{"no sections", func(c *Config) { c.Sections = nil }, "section"},
		{"duplicate user", func(c *Config) { c.Users[1].Username = "admin" }, "duplicate username"},
		{"missing hash", func(c *Config) { c.Users[0].PasswordHash = "" }, "password_hash"},
		{"unknown user section", func(c *Config) { c.Users[1].Section = "dairy" }, "unknown section"},
		{"zero ttl", func(c *Config) { c.JWT.AccessTTL = 0 }, "lifetimes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: "5433", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5433 sslmode=disable", d.DSN())
}
