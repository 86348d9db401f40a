package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv removes JSPY_ variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SOURCE", "OUT_DIR", "WORKERS", "STRICT", "VERBOSE", "OUTPUT"} {
		t.Setenv(EnvPrefix+key, "")
		require.NoError(t, os.Unsetenv(EnvPrefix+key))
	}
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("source", "", "")
	flags.String("out-dir", "", "")
	flags.Int("workers", DefaultWorkers, "")
	flags.Bool("strict", false, "")
	flags.BoolP("verbose", "v", false, "")
	flags.StringP("output", "o", "", "")
	return flags
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"json output", func(c *Config) { c.OutputFormat = "json" }, ""},
		{"unknown output", func(c *Config) { c.OutputFormat = "yaml" }, "invalid output format"},
		{"empty output", func(c *Config) { c.OutputFormat = "" }, "invalid output format"},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, "source: docs/main.json\nout_dir: build\nworkers: 2\nstrict: true\noutput: markdown\n")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "docs", "main.json"), cfg.Source)
	assert.Equal(t, filepath.Join(dir, "build"), cfg.OutDir)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfig_DiscoversFileUpward(t *testing.T) {
	ResetConfig()
	clearEnv(t)
	root := t.TempDir()
	writeConfig(t, root, "workers: 7\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0750))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Workers)
	assert.Equal(t, ConfigFileName, filepath.Base(GetConfigFileUsed()))
}

func TestLoadConfig_AltFileName(t *testing.T) {
	ResetConfig()
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileNameAlt), []byte("verbose: true\n"), 0600))
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, "source: from-file.json\nworkers: 2\n")

	t.Setenv("JSPY_SOURCE", "/abs/from-env.json")
	t.Setenv("JSPY_WORKERS", "9")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "/abs/from-env.json", cfg.Source)
	assert.Equal(t, 9, cfg.Workers)
}

func TestLoadConfig_EnvRelativeSourceNotRebased(t *testing.T) {
	ResetConfig()
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "output: text\n")

	t.Setenv("JSPY_SOURCE", "rel/doc.json")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "rel/doc.json", cfg.Source)
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "output: markdown\nworkers: 2\nout_dir: file-out\n")
	t.Setenv("JSPY_OUTPUT", "text")

	flags := newFlagSet()
	require.NoError(t, flags.Set("output", "json"))
	require.NoError(t, flags.Set("workers", "3"))
	require.NoError(t, flags.Set("out-dir", "flag-out"))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "flag-out", cfg.OutDir)
}

func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("JSPY_OUTPUT", "text")

	cfg, err := LoadConfig("", newFlagSet())
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.OutputFormat)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
}

func TestLoadConfig_Invalid(t *testing.T) {
	ResetConfig()
	clearEnv(t)
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")

	path := writeConfig(t, dir, "workers: 0\n")
	_, err = LoadConfig(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestGetLogger(t *testing.T) {
	fallback := GetLogger(context.Background())
	require.NotNil(t, fallback)
	assert.False(t, fallback.Enabled(context.Background(), slog.LevelError))

	logger := NewLogger(os.Stderr, true)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))

	quiet := NewLogger(os.Stderr, false)
	assert.False(t, quiet.Enabled(ctx, slog.LevelInfo))
	assert.True(t, quiet.Enabled(ctx, slog.LevelWarn))
}
