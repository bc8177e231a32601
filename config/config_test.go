package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marquee/premiere-engine/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "premiere.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFile_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.True(t, cfg.Archive.Enabled)

	price, err := cfg.UnitPrice()
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(10)))
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
data_dir = "/var/lib/premiere"
listen_addr = ":9090"
ticket_price = "12.50"

[archive]
enabled = false
`)

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/var/lib/premiere", cfg.DataDir)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.False(t, cfg.Archive.Enabled)

	price, err := cfg.UnitPrice()
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("12.50")))
}

func TestLoad_PartialFile_KeepsDefaults(t *testing.T) {
	path := writeConfig(t, `listen_addr = ":9090"`)

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "./data", cfg.DataDir, "unset fields keep defaults")
	assert.Equal(t, "10", cfg.TicketPrice)
}

func TestLoad_InvalidTicketPrice_Rejected(t *testing.T) {
	path := writeConfig(t, `ticket_price = "free"`)

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoad_NonPositiveTicketPrice_Rejected(t *testing.T) {
	path := writeConfig(t, `ticket_price = "0"`)

	_, err := config.Load(path)
	assert.ErrorContains(t, err, "ticket_price must be greater than 0")
}

func TestLoad_MalformedTOML_Rejected(t *testing.T) {
	path := writeConfig(t, `data_dir = [unclosed`)

	_, err := config.Load(path)
	assert.Error(t, err)
}
