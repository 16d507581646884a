package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func withTerminal(t *testing.T, tty bool) {
	t.Helper()
	orig := stderrIsTerminal
	stderrIsTerminal = func() bool { return tty }
	t.Cleanup(func() { stderrIsTerminal = orig })
}

func TestLoad_Defaults(t *testing.T) {
	withTerminal(t, true)
	cfg, err := Load(nil, t.TempDir())
	require.NoError(t, err)

	home, err := homedir.Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".prefy", "catalog.db"), cfg.CatalogDB)
	assert.Equal(t, "./configs", cfg.TemplatesDir)
	assert.Equal(t, "general_interests", cfg.DefaultTemplate)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.LogConsole)
	assert.Empty(t, cfg.LogFile)
}

func TestLoad_LogConsoleFollowsTerminal(t *testing.T) {
	withTerminal(t, false)
	cfg, err := Load(nil, t.TempDir())
	require.NoError(t, err)
	assert.False(t, cfg.LogConsole)

	t.Setenv("PREFY_LOG_CONSOLE", "true")
	cfg, err = Load(nil, t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.LogConsole)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := writeConfig(t, "catalog_db: /tmp/cat.db\ndefault_template: travel\nlog_console: false\n")

	cfg, err := Load(nil, dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cat.db", cfg.CatalogDB)
	assert.Equal(t, "travel", cfg.DefaultTemplate)
	assert.False(t, cfg.LogConsole)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := writeConfig(t, "log_level: info\n")
	t.Setenv("PREFY_LOG_LEVEL", "debug")

	cfg, err := Load(nil, dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	t.Setenv("PREFY_CATALOG_DB", "/from/env.db")
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--catalog-db", ":memory:"}))

	cfg, err := Load(fs, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.CatalogDB)
}

func TestLoad_UnchangedFlagDoesNotShadowFile(t *testing.T) {
	dir := writeConfig(t, "templates_dir: /srv/templates\n")
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(fs, dir)
	require.NoError(t, err)
	assert.Equal(t, "/srv/templates", cfg.TemplatesDir)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := writeConfig(t, "log_level: [unclosed\n")
	_, err := Load(nil, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}
