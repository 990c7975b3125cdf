package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Default(t *testing.T) {
	cfg := Default()

	assert.Equal(t, expectedFormat, cfg.Format)
	assert.Equal(t, expectedType, cfg.Type)
	assert.Equal(t, "grammar.bnf", cfg.Build.Grammar)
	assert.True(t, cfg.Cache.Enabled)
}

func Test_ScanFileInfo_findsHeaderBeforeFirstTable(t *testing.T) {
	data := []byte(`format = "grouper"
type = "config"

[build]
grammar = "g.bnf"
out_dir = "out"
`)

	info, err := ScanFileInfo(data)
	assert.NoError(t, err)
	assert.Equal(t, "grouper", info.Format)
	assert.Equal(t, "config", info.Type)
}

func Test_ScanFileInfo_noTables(t *testing.T) {
	data := []byte(`format = "grouper"
type = "config"
`)

	info, err := ScanFileInfo(data)
	assert.NoError(t, err)
	assert.Equal(t, "grouper", info.Format)
}

func Test_Load_validFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grouper.toml")
	content := `format = "grouper"
type = "config"

[build]
grammar = "my.bnf"
out_dir = "dist"

[cache]
enabled = false
path = ".cache"
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "my.bnf", cfg.Build.Grammar)
	assert.Equal(t, "dist", cfg.Build.OutDir)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, ".cache", cfg.Cache.Path)
}

func Test_Load_rejectsWrongHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "other.toml")
	content := `format = "somethingelse"
type = "config"
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func Test_Load_missingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/grouper.toml")
	assert.Error(t, err)
}
