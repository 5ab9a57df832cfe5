package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "./web/templates", cfg.TemplatesDir)
	assert.Equal(t, "Tienda", cfg.ShopName)
	assert.False(t, cfg.Bootstrap.Enabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "PGX")
	t.Setenv("DB_DSN", "postgres://tienda@localhost/tienda")
	t.Setenv("BOOTSTRAP_ADMIN_USERNAME", "root")
	t.Setenv("BOOTSTRAP_ADMIN_PASSWORD", "Secreta123!")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Equal(t, "postgres://tienda@localhost/tienda", cfg.DBDSN)
	assert.True(t, cfg.Bootstrap.Enabled())
	assert.Equal(t, "Administrador", cfg.Bootstrap.Name)
}
