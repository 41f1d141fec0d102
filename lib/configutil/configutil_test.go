package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl   string `json:"base_url"`
	UserAgent string `json:"user_agent"`
	Fuzzy     bool   `json:"fuzzy"`
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(
		filepath.Join(dir, "config.json5"),
		[]byte(`{
			// comments are allowed
			base_url: "https://example.com",
			user_agent: "osrs-info",
		}`),
		0600,
	)
	require.NoError(t, err)
	err = os.WriteFile(
		filepath.Join(dir, "config.local.json5"),
		[]byte(`{user_agent: "osrs-info (dev)", fuzzy: true}`),
		0600,
	)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://example.com", cfg.BaseUrl)
	require.Equal(t, "osrs-info (dev)", cfg.UserAgent)
	require.True(t, cfg.Fuzzy)
}

func TestReadConfigMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadConfig[testConfig](filepath.Join(dir, "nope.json5"))
	require.True(t, os.IsNotExist(err))
}
