package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// No config file in the test working directory: defaults apply.
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5200, cfg.Server.Port)
	assert.Equal(t, "public", cfg.Server.PublicDir)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "prebill.db", cfg.Store.DSN)
	assert.Equal(t, "local", cfg.OCR.Provider)
	assert.Equal(t, "pdftotext", cfg.OCR.PdfToTextPath)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PREBILL_SERVER_PORT", "9999")
	t.Setenv("PREBILL_STORE_DRIVER", "postgres")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Store.Driver)
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "noisy", Format: "json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
}

func TestInitLogger_Console(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
}
