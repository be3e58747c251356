package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("locale", "", "")
	fs.String("output-dir", "", "")
	fs.StringP("output", "o", "", "")
	fs.Bool("validate", false, "")
	fs.Bool("validate-commands", false, "")
	fs.Bool("remove-decorators", false, "")
	fs.BoolP("verbose", "v", false, "")
	return fs
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		wantLocale string
		wantOutput string
		errSubstr  string
	}{
		{name: "defaults", cfg: Config{}, wantLocale: "en", wantOutput: "text"},
		{name: "canonical locale", cfg: Config{Locale: "en-gb", Output: "JSON"}, wantLocale: "en-GB", wantOutput: "json"},
		{name: "underscore locale", cfg: Config{Locale: "fr_CA", Output: "text"}, wantLocale: "fr-CA", wantOutput: "text"},
		{name: "bad locale", cfg: Config{Locale: "not a locale!"}, errSubstr: "invalid locale"},
		{name: "bad output", cfg: Config{Locale: "en", Output: "yaml"}, errSubstr: "unknown output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Validate()
			if tt.errSubstr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLocale, cfg.Locale)
			assert.Equal(t, tt.wantOutput, cfg.Output)
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, OutputText, cfg.Output)
	assert.Empty(t, cfg.OutputDir)
	assert.False(t, cfg.Validate)
	assert.False(t, cfg.ValidateCommands)
	assert.False(t, cfg.RemoveDecorators)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_Precedence(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "concerto.yaml"), []byte(`
locale: de
output_dir: from-file
validate: true
remove_decorators: true
`), 0o600))
	t.Setenv("CONCERTO_OUTPUT_DIR", "from-env")
	t.Setenv("CONCERTO_OUTPUT", "json")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--output", "text", "--validate-commands"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "concerto.yaml", GetConfigFileUsed())
	assert.Equal(t, "de", cfg.Locale, "file overrides default")
	assert.Equal(t, "from-env", cfg.OutputDir, "env overrides file")
	assert.Equal(t, OutputText, cfg.Output, "flag overrides env")
	assert.True(t, cfg.Validate)
	assert.True(t, cfg.ValidateCommands)
	assert.True(t, cfg.RemoveDecorators)
}

func TestLoadConfig_UnchangedFlagsDoNotOverride(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("CONCERTO_LOCALE", "fr")

	flags := testFlags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.Locale)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("locale: es\n"), 0o600))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "es", cfg.Locale)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		ResetConfig()
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})

	t.Run("invalid locale", func(t *testing.T) {
		ResetConfig()
		t.Chdir(t.TempDir())
		t.Setenv("CONCERTO_LOCALE", "@@")
		_, err := LoadConfig("", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid locale")
	})
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, Default(), GetConfig(ctx))
	assert.NotNil(t, GetLogger(ctx))

	cfg := &Config{Locale: "fr", Output: OutputJSON}
	ctx = WithConfig(ctx, cfg)
	assert.Same(t, cfg, GetConfig(ctx))
	assert.True(t, GetConfig(ctx).IsJSON())
}
