package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sdejongh/rawpick/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateExtensions(t *testing.T) {
	tests := []struct {
		name       string
		extensions []string
		wantErr    bool
	}{
		{"Valid", []string{"cr2", "nef"}, false},
		{"LeadingDotAllowed", []string{".cr2"}, false},
		{"Nil", nil, true},
		{"Empty", []string{}, true},
		{"Blank", []string{"cr2", "  "}, true},
		{"OnlyDot", []string{"."}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Match.Extensions = tt.extensions

			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, models.IsKind(err, models.KindConfigInvalid))
		})
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := Default()
	cfg.Match.Extensions = []string{""}
	cfg.Output.Format = "xml"
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)

	var violations ValidationErrors
	require.True(t, errors.As(err, &violations))
	require.Len(t, violations, 3)
	assert.Equal(t, "match.extensions", violations[0].Field)
	assert.Equal(t, "output.format", violations[1].Field)
	assert.Equal(t, "logging.level", violations[2].Field)
	assert.Contains(t, err.Error(), "3 problems")
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("OverridesDefaults", func(t *testing.T) {
		path := filepath.Join(dir, "ok.yaml")
		require.NoError(t, os.WriteFile(path, []byte("match:\n  extensions: [nef, ARW]\n  exclude: [\".trash/\"]\nlogging:\n  level: debug\n"), 0644))

		cfg, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"nef", "ARW"}, cfg.Match.Extensions)
		assert.Equal(t, []string{".trash/"}, cfg.Match.Exclude)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "human", cfg.Output.Format)
	})

	t.Run("EmptyListRejected", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("match:\n  extensions: []\n"), 0644))

		_, err := LoadFromFile(path)
		assert.True(t, models.IsKind(err, models.KindConfigInvalid))
	})

	t.Run("NullListRejected", func(t *testing.T) {
		path := filepath.Join(dir, "null.yaml")
		require.NoError(t, os.WriteFile(path, []byte("match:\n  extensions: null\n"), 0644))

		_, err := LoadFromFile(path)
		assert.True(t, models.IsKind(err, models.KindConfigInvalid))
	})

	t.Run("Malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("match: [unclosed"), 0644))

		_, err := LoadFromFile(path)
		assert.Error(t, err)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		path := filepath.Join(dir, "typo.yaml")
		require.NoError(t, os.WriteFile(path, []byte("match:\n  extension: [nef]\n"), 0644))

		_, err := LoadFromFile(path)
		assert.ErrorContains(t, err, "extension")
	})

	t.Run("EmptyFileKeepsDefaults", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, nil, 0644))

		cfg, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.Match.Extensions = []string{"raf"}

	require.NoError(t, SaveToFile(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# rawpick configuration"))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"raf"}, loaded.Match.Extensions)
}

func TestSaveRejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Match.Extensions = nil
	assert.Error(t, SaveToFile(cfg, filepath.Join(t.TempDir(), "c.yaml")))
}

func TestDefaultConfigPath(t *testing.T) {
	path, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, AppDirName, filepath.Base(filepath.Dir(path)))
}

func TestValidateBandwidth(t *testing.T) {
	cfg := Default()
	cfg.Copy.Bandwidth = "20MB"
	assert.NoError(t, cfg.Validate())

	cfg.Copy.Bandwidth = "quick"
	err := cfg.Validate()
	require.Error(t, err)

	var violations ValidationErrors
	require.True(t, errors.As(err, &violations))
	assert.Equal(t, "copy.bandwidth", violations[0].Field)
}
