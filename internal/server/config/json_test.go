package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr":                  "www.example:9000",
		"database_dsn":                   "postgres://u:p@db:5432/docs",
		"secret_key":                     "my_secret_key",
		"access_token_validity_duration": "12h",
		"bcrypt_cost":                    12,
		"allowed_origins":                []string{"https://docs.example.com"},
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddr)
		assert.Equal(t, "postgres://u:p@db:5432/docs", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 12*time.Hour, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 12, cfg.BCryptCost)
		assert.Equal(t, []string{"https://docs.example.com"}, cfg.AllowedOrigins)
	})

	t.Run("no config flag leaves values untouched", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			EndpointAddr: "defaults:1234",
			DatabaseDSN:  "postgres://defaults",
			SecretKey:    "defaults",
		}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddr)
		assert.Equal(t, "postgres://defaults", cfg.DatabaseDSN)
		assert.Equal(t, "defaults", cfg.SecretKey)
	})

	t.Run("partial json keeps other fields", func(t *testing.T) {
		path := writeTempJSON(t, dir, "partial.json", map[string]any{
			"secret_key": "only_secret",
		})
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "only_secret", cfg.SecretKey)
		assert.Equal(t, ":8080", cfg.EndpointAddr)
		assert.Equal(t, 24*time.Hour, cfg.AccessTokenValidityDuration)
	})
}
