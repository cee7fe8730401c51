package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"gocloc/internal/config"
	"gocloc/internal/languages"
	"gocloc/internal/model"
	"gocloc/internal/scanner"
)

// execute 在隔离的 HOME 和工作目录下运行一次命令。
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("COLUMNS", "120")
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	rootCmd := newRootCmd("test", languages.NewRegistry())
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeTree 在临时目录中按相对路径写入文件。
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func sampleTree(t *testing.T) string {
	return writeTree(t, map[string]string{
		"main.go":             "package main\n\n// c\nfunc main() {}\n",
		"scripts/util.py":     "# c\nx = 1\n",
		"README.txt":          "hello\n",
		"node_modules/dep.js": "var x = 1;\n",
	})
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "test\n", stdout)

	stdout, _, err = execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "gocloc version test")
}

func TestLanguageCmd(t *testing.T) {
	stdout, _, err := execute(t, "language")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Python")
	assert.Contains(t, stdout, "lua")
}

func TestScanCmdJSON(t *testing.T) {
	root := sampleTree(t)

	stdout, _, err := execute(t, "scan", root, "--format", "json", "--parallel=false")
	require.NoError(t, err)

	var result model.ScanResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))

	assert.Equal(t, int64(2), result.Total.Files)
	assert.Equal(t, model.LineMetrics{Total: 6, Code: 3, Comment: 2, Blank: 1}, result.Total.LineMetrics)
	assert.Equal(t, int64(1), result.Ignored)
	require.Len(t, result.Languages, 2)
	assert.Equal(t, "Go", result.Languages[0].Language)
	assert.Equal(t, "Python", result.Languages[1].Language)
}

func TestScanCmdTableAndExport(t *testing.T) {
	root := sampleTree(t)
	outputPath := filepath.Join(t.TempDir(), "reports", "result.yaml")

	stdout, stderr, err := execute(t, "scan", root, "--format", "yaml", "--output", outputPath, "--workers", "3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "scanned_path:")
	assert.Contains(t, stderr, "Result exported to "+outputPath)

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	var exported model.ScanResult
	require.NoError(t, yaml.Unmarshal(content, &exported))
	assert.Equal(t, int64(2), exported.Total.Files)

	stdout, _, err = execute(t, "scan", root, "--by-file")
	require.NoError(t, err)
	assert.Contains(t, stdout, "SUM")
	assert.Contains(t, stdout, "scripts/util.py")
}

func TestScanCmdExcludeFlag(t *testing.T) {
	root := sampleTree(t)

	stdout, _, err := execute(t, "scan", root, "--format", "json", "--exclude", "scripts")
	require.NoError(t, err)

	var result model.ScanResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))

	// node_modules 不再被排除，scripts 被排除。
	names := make([]string, 0, len(result.Languages))
	for _, item := range result.Languages {
		names = append(names, item.Language)
	}
	assert.Equal(t, []string{"Go", "JavaScript"}, names)
}

func TestScanCmdErrors(t *testing.T) {
	root := sampleTree(t)

	_, _, err := execute(t, "scan", root, "--format", "xml")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, _, err = execute(t, "scan", filepath.Join(root, "main.go"))
	assert.ErrorIs(t, err, scanner.ErrNotDirectory)

	_, _, err = execute(t, "scan", filepath.Join(root, "missing"))
	assert.Error(t, err)
}

func TestClassifyCmd(t *testing.T) {
	root := sampleTree(t)

	stdout, _, err := execute(t, "classify", filepath.Join(root, "main.go"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "    1  code     package main")
	assert.Contains(t, stdout, "    3  comment  // c")
	assert.Contains(t, stdout, "Go (c-like): total=4 code=2 comment=1 blank=1")

	stdout, _, err = execute(t, "classify", filepath.Join(root, "README.txt"), "--language", "python")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Python")

	_, _, err = execute(t, "classify", filepath.Join(root, "README.txt"))
	assert.Error(t, err)
}

func TestScanCmdFilterFlags(t *testing.T) {
	root := writeTree(t, map[string]string{
		"small.go": "package a\n",
		"large.go": "package b\n\n// padding comment line\nvar x = 1\n",
	})

	stdout, _, err := execute(t, "scan", root, "--format", "json", "--max-bytes", "16")
	require.NoError(t, err)

	var result model.ScanResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, int64(1), result.Total.Files)
	assert.Equal(t, int64(1), result.Skipped)

	stdout, _, err = execute(t, "scan", root, "--format", "json", "--max-bytes", "0")
	require.NoError(t, err)

	var unlimited model.ScanResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &unlimited))
	assert.Equal(t, int64(2), unlimited.Total.Files)
	assert.Equal(t, int64(0), unlimited.Skipped)
}
