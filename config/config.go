// Package config loads grouper's TOML run configuration, using a
// pre-scan-then-decode pattern: the file's format/type header is parsed
// from the top-level table alone before the full document is decoded, so
// a file written for a different tool is rejected with a clear message
// rather than silently misparsed.
package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileInfo is the header every grouper config file must carry.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

// BuildConfig controls where the grammar source is read from and where
// build output is written.
type BuildConfig struct {
	Grammar string `toml:"grammar"`
	OutDir  string `toml:"out_dir"`
}

// CacheConfig controls the artifact cache cmd/grouper's --cache flag
// uses.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Config is the full decoded form of a grouper.toml file.
type Config struct {
	FileInfo

	Build BuildConfig `toml:"build"`
	Cache CacheConfig `toml:"cache"`
}

const (
	expectedFormat = "grouper"
	expectedType   = "config"
)

// Default returns the configuration grouper uses when no config file is
// given.
func Default() Config {
	return Config{
		FileInfo: FileInfo{Format: expectedFormat, Type: expectedType},
		Build: BuildConfig{
			Grammar: "grammar.bnf",
			OutDir:  "build",
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    ".grouper-cache",
		},
	}
}

// ScanFileInfo parses just the top-level table of a TOML document — the
// lines before the first "[section]" header — to recover its format/type
// header without paying the cost of decoding the whole file. Scanning
// line-by-line rather than byte-by-byte means a "[" only ends the
// top-level table when it is the first non-blank character of its own
// line, matching how a TOML table header is actually written.
func ScanFileInfo(data []byte) (FileInfo, error) {
	var topLevel bytes.Buffer

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "[") {
			break
		}
		topLevel.WriteString(line)
		topLevel.WriteByte('\n')
	}

	var info FileInfo
	err := toml.Unmarshal(topLevel.Bytes(), &info)
	return info, err
}

// Load reads and decodes the config file at path, applying Default's
// values for anything left unset. It returns an error if the file cannot
// be read, is not valid TOML, or does not carry grouper's config header.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	info, err := ScanFileInfo(data)
	if err != nil {
		return Config{}, fmt.Errorf("reading config header: %w", err)
	}
	if info.Format != expectedFormat || info.Type != expectedType {
		return Config{}, fmt.Errorf("not a grouper config file (format=%q type=%q)", info.Format, info.Type)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	return cfg, nil
}
