package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, defaultMongoURI, cfg.Mongo.URI)
	assert.Equal(t, defaultMongoDB, cfg.Mongo.Database)
	assert.Equal(t, defaultMediaBudgetKB, cfg.Media.BudgetKB)
	assert.True(t, cfg.IsDev())
}

func TestLoadYAMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	raw := `
port: 8080
env: production
jwt_secret: super-secret
mongo:
  uri: mongodb://db:27017
  database: folio_prod
media:
  budget_kb: 250
allowed_origins:
  - example.com
  - "*.example.com"
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, "folio_prod", cfg.Mongo.Database)
	assert.Equal(t, 250, cfg.Media.BudgetKB)
	assert.Len(t, cfg.AllowedOrigins, 2)
	// unset fields still default
	assert.Equal(t, defaultRedisURL, cfg.RedisURL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()

	write := func(name, raw string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(raw), 0o644))
		return p
	}

	_, err := Load(write("env.yml", "env: staging\n"))
	assert.Error(t, err)

	_, err = Load(write("port.yml", "port: -1\n"))
	assert.Error(t, err)

	// production without a jwt secret is a misconfiguration
	_, err = Load(write("secret.yml", "env: production\n"))
	assert.Error(t, err)
}
