package commands

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		".babelrc":                 `{"presets": ["es2015", "react"], "plugins": ["transform-class-properties"]}`,
		"package.json":             `{"name": "web", "version": "1.2.3", "main": "./src/index.js"}`,
		"config/projectConfig.yml": "build:\n  dist: dist\ndevLocal:\n  devServerPort: 8080\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	}

	return dir
}

func sources(dir, env string) SourceFlags {
	return SourceFlags{
		BuildEnv: env,
		WorkDir:  dir,
		Babelrc:  ".babelrc",
		Package:  "package.json",
		Project:  "config/projectConfig.yml",
	}
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestConfigCmd(t *testing.T) {
	dir := setupProject(t)
	out := filepath.Join(dir, "webpack.json")

	cmd := &ConfigCmd{SourceFlags: sources(dir, "test"), Out: out}
	require.NoError(t, cmd.Run(context.Background(), &Globals{}))

	doc := readJSON(t, out)
	require.Equal(t, "production", doc["mode"])
	require.Equal(t, true, doc["bail"])
	require.Equal(t, map[string]any{"main": "./src/index.js"}, doc["entry"])
	require.Equal(t, filepath.Join(dir, "dist"), doc["output"].(map[string]any)["path"])
}

func TestBabelCmd(t *testing.T) {
	dir := setupProject(t)
	out := filepath.Join(dir, "babel.json")

	cmd := &BabelCmd{SourceFlags: sources(dir, ""), Mode: "auto", Out: out}
	require.NoError(t, cmd.Run(context.Background(), &Globals{}))

	doc := readJSON(t, out)
	require.Equal(t, true, doc["cacheDirectory"])
	require.Equal(t, []any{
		"transform-class-properties",
		"transform-react-jsx-source",
		"transform-react-jsx-self",
	}, doc["plugins"])

	cmd.Mode = "production"
	require.NoError(t, cmd.Run(context.Background(), &Globals{}))

	doc = readJSON(t, out)
	require.Equal(t, false, doc["cacheDirectory"])
	require.Equal(t, []any{"transform-class-properties"}, doc["plugins"])
	require.Equal(t, []any{
		[]any{"env", map[string]any{"modules": false, "loose": true}},
		"react",
	}, doc["presets"])
}

func TestConfigCmd_MissingBabelrc(t *testing.T) {
	dir := setupProject(t)
	require.NoError(t, os.Remove(filepath.Join(dir, ".babelrc")))

	cmd := &ConfigCmd{SourceFlags: sources(dir, ""), Out: filepath.Join(dir, "webpack.json")}
	require.ErrorContains(t, cmd.Run(context.Background(), &Globals{}), "load babel config")
	require.NoFileExists(t, filepath.Join(dir, "webpack.json"))
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()

	out := filepath.Join(dir, "out.json")
	require.NoError(t, writeJSON(out, map[string]int{"port": 8080}))
	require.Equal(t, map[string]any{"port": float64(8080)}, readJSON(t, out))

	failed := filepath.Join(dir, "failed.json")
	err := writeJSON(failed, map[string]any{"bad": make(chan int)})
	require.ErrorContains(t, err, "failed to encode output")
	require.NoFileExists(t, failed)
}
