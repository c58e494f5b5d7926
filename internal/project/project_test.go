package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadPackage(t *testing.T) {
	path := writeFile(t, "package.json", `{
		"name": "web",
		"version": "1.2.3",
		"main": "./src/index.js",
		"scripts": {"build": "webpack"}
	}`)

	pkg, err := LoadPackage(path)
	require.NoError(t, err)
	require.Equal(t, &Package{Name: "web", Version: "1.2.3", Main: "./src/index.js"}, pkg)
}

func TestLoadPackage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "missing version", content: `{"main": "index.js"}`, errMsg: "version is required"},
		{name: "missing main", content: `{"version": "1.0.0"}`, errMsg: "main is required"},
		{name: "malformed", content: `{"version":`, errMsg: "parse package metadata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPackage(writeFile(t, "package.json", tt.content))
			require.ErrorContains(t, err, tt.errMsg)
		})
	}

	_, err := LoadPackage(filepath.Join(t.TempDir(), "package.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig(t *testing.T) {
	expected := &Config{
		Build:    BuildConfig{Dist: "dist"},
		DevLocal: DevLocalConfig{DevServerPort: 8080},
	}

	t.Run("json", func(t *testing.T) {
		cfg, err := LoadConfig(writeFile(t, "projectConfig.json", `{
			// local overrides live elsewhere
			"build": {"dist": "dist"},
			"devLocal": {"devServerPort": 8080}
		}`))
		require.NoError(t, err)
		require.Equal(t, expected, cfg)
	})

	t.Run("yaml", func(t *testing.T) {
		cfg, err := LoadConfig(writeFile(t, "projectConfig.yaml", "build:\n  dist: dist\ndevLocal:\n  devServerPort: 8080\n"))
		require.NoError(t, err)
		require.Equal(t, expected, cfg)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "projectConfig.json", `{}`))
		require.ErrorContains(t, err, "build.dist is required")
		require.ErrorContains(t, err, "devLocal.devServerPort 0 is out of range")
	})
}
