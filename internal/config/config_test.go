package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocloc/internal/scanner"
)

// isolate 切换到空目录并重置 HOME，避免读到开发机上的配置文件。
func isolate(t *testing.T) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	config, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "gocloc", config.App.Name)
	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "console", config.Log.Mode)
	assert.True(t, config.Scan.Parallel)
	assert.True(t, config.Scan.SkipBinary)
	assert.GreaterOrEqual(t, config.Scan.Workers, 1)
	assert.Equal(t, scanner.DefaultMaxBytes, config.Scan.MaxBytes)
	assert.Equal(t, scanner.DefaultExcludeDirs, config.Scan.ExcludeDirs)
	assert.Equal(t, "table", config.Output.Format)

	// 修改加载结果不能影响包级默认值。
	config.Scan.ExcludeDirs[0] = "changed"
	assert.Equal(t, ".git", scanner.DefaultExcludeDirs[0])
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "gocloc.yaml")
	content := `
scan:
  workers: 3
  parallel: false
  exclude_dirs: [".git", "dist"]
output:
  format: JSON
  by_file: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, 3, config.Scan.Workers)
	assert.False(t, config.Scan.Parallel)
	assert.Equal(t, []string{".git", "dist"}, config.Scan.ExcludeDirs)
	assert.Equal(t, "json", config.Output.Format)
	assert.True(t, config.Output.ByFile)
}

func TestLoadDiscoversDotFile(t *testing.T) {
	isolate(t)

	require.NoError(t, os.WriteFile(".gocloc.yaml", []byte("output:\n  format: yaml\n"), 0o644))

	config, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "yaml", config.Output.Format)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "gocloc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scan:\n  workers: 3\n"), 0o644))
	t.Setenv("GOCLOC_SCAN_WORKERS", "5")

	config, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, 5, config.Scan.Workers)
}

func TestLoadErrors(t *testing.T) {
	isolate(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("invalid format", func(t *testing.T) {
		v := New()
		v.Set("output.format", "xml")

		_, err := Load(v, "")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("zero workers", func(t *testing.T) {
		v := New()
		v.Set("scan.workers", 0)

		_, err := Load(v, "")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("file mode without path", func(t *testing.T) {
		v := New()
		v.Set("log.mode", "file")
		v.Set("log.file_path", "")

		_, err := Load(v, "")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestValidateQuietAndVerbose(t *testing.T) {
	isolate(t)

	config, err := Load(New(), "")
	require.NoError(t, err)

	config.App.Quiet = true
	config.App.Verbose = true
	assert.ErrorIs(t, Validate(config), ErrInvalidConfig)
}
