package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, 3000.0, cfg.PayOutMin)
	assert.Equal(t, 9000.0, cfg.PayOutMax)
	assert.Equal(t, uint64(0), cfg.RandomSeed)
	assert.False(t, cfg.RandomSeedSet)
	assert.Equal(t, 1.08265, cfg.DefaultTaxMultiplier)
	assert.False(t, cfg.ArchiveEnabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://localhost/shreports?sslmode=disable")
	t.Setenv("OUTPUT_DIR", "/tmp/reports")
	t.Setenv("PAYOUT_MIN", "1000")
	t.Setenv("PAYOUT_MAX", "2000")
	t.Setenv("RANDOM_SEED", "42")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/reports", cfg.OutputDir)
	assert.Equal(t, 1000.0, cfg.PayOutMin)
	assert.Equal(t, 2000.0, cfg.PayOutMax)
	assert.Equal(t, uint64(42), cfg.RandomSeed)
	assert.True(t, cfg.RandomSeedSet)
	assert.True(t, cfg.ArchiveEnabled())
}

func TestLoadAcceptsZeroPayOutAndSeed(t *testing.T) {
	t.Setenv("PAYOUT_MIN", "0")
	t.Setenv("PAYOUT_MAX", "0")
	t.Setenv("RANDOM_SEED", "0")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 0.0, cfg.PayOutMin)
	assert.Equal(t, 0.0, cfg.PayOutMax)
	assert.Equal(t, uint64(0), cfg.RandomSeed)
	assert.True(t, cfg.RandomSeedSet)
}

func TestLoadUnknownEnvFallsBackToProd(t *testing.T) {
	t.Setenv("ENV", "staging")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
}

func TestLoadRejectsInvertedPayOutRange(t *testing.T) {
	t.Setenv("PAYOUT_MIN", "5000")
	t.Setenv("PAYOUT_MAX", "100")

	_, err := load(viper.New())
	assert.Error(t, err)
}

func TestLoadRejectsMultiplierBelowOne(t *testing.T) {
	t.Setenv("DEFAULT_TAX_MULTIPLIER", "0.5")

	_, err := load(viper.New())
	assert.Error(t, err)
}

func TestDefaultDirectoryLookup(t *testing.T) {
	dir := DefaultDirectory(decimal.RequireFromString("1.08265"))

	p := dir.Lookup("Shell - Syed Empires")
	assert.True(t, p.Known)
	assert.Equal(t, "807606", p.ID)
	assert.True(t, decimal.RequireFromString("1.08875").Equal(p.TaxMultiplier))

	// spacing and case are ignored
	p = dir.Lookup("gulf - 33 chestnut gasoline")
	assert.True(t, p.Known)
	assert.Equal(t, "Gulf  - 33 Chestnut Gasoline", p.Name)
	assert.True(t, decimal.RequireFromString("1.08375").Equal(p.TaxMultiplier))

	p = dir.Lookup("Gulf  - Kirmani Fresh Market")
	assert.True(t, decimal.RequireFromString("1.06").Equal(p.TaxMultiplier))
}

func TestDefaultDirectoryUnknownStation(t *testing.T) {
	dir := DefaultDirectory(decimal.RequireFromString("1.08265"))

	p := dir.Lookup("  Sunoco - Nowhere  ")
	assert.False(t, p.Known)
	assert.Equal(t, "Sunoco - Nowhere", p.Name)
	assert.Empty(t, p.ID)
	assert.True(t, decimal.RequireFromString("1.08265").Equal(p.TaxMultiplier))
}

func TestDirectoryStationsSorted(t *testing.T) {
	dir := DefaultDirectory(decimal.RequireFromString("1.08265"))

	stations := dir.Stations()
	require.Len(t, stations, 27)
	for i := 1; i < len(stations); i++ {
		assert.LessOrEqual(t, normalizeName(stations[i-1].Name), normalizeName(stations[i].Name))
	}
}

func TestLoadDirectoryFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.yaml")
	content := `stations:
  - name: "Test Station"
    id: "123456"
    tax_multiplier: 1.07
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	dir, err := LoadDirectory(path, decimal.RequireFromString("1.08265"))
	require.NoError(t, err)

	p := dir.Lookup("test station")
	assert.True(t, p.Known)
	assert.Equal(t, "123456", p.ID)
	assert.True(t, decimal.RequireFromString("1.07").Equal(p.TaxMultiplier))

	assert.False(t, dir.Lookup("Shell - Syed Empires").Known)
}

func TestLoadDirectoryRejectsBadMultiplier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.yaml")
	content := `stations:
  - name: "Broken"
    id: "1"
    tax_multiplier: 0.9
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadDirectory(path, decimal.RequireFromString("1.08265"))
	assert.Error(t, err)
}

func TestConfigDirectoryUsesStationsFile(t *testing.T) {
	cfg := &Config{DefaultTaxMultiplier: 1.08265}
	dir, err := cfg.Directory()
	require.NoError(t, err)
	assert.Len(t, dir.Stations(), 27)

	cfg.StationsFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.Directory()
	assert.Error(t, err)
}
