package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"classcheck/internal/activity"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	ExportDir string `toml:"export_dir"`
	LogDir    string `toml:"log_dir"`
}

// Matching contains configuration for name normalization and claim matching.
type Matching struct {
	// Prefixes are honorific and label markers removed during normalization.
	// An empty list selects the built-in markers; prefix removal is always on.
	Prefixes []string `toml:"prefixes"`
	// StripChars are punctuation runes dropped after prefix removal.
	StripChars string `toml:"strip_chars"`
	// MatchMode is "all" (every contained key matches) or "longest".
	MatchMode string `toml:"match_mode"`
}

// Activities describes the fixed activity id range ("1.1" .. "1.14").
type Activities struct {
	Prefix string `toml:"prefix"`
	First  int    `toml:"first"`
	Last   int    `toml:"last"`
}

// Columns contains header keywords used to discover column roles.
type Columns struct {
	StudentNumber []string `toml:"student_number"`
	Name          []string `toml:"name"`
	Room          []string `toml:"room"`
}

// Batch contains configuration for batch execution.
type Batch struct {
	Workers int `toml:"workers"`
}

// Export contains configuration for matrix export and rendering.
type Export struct {
	Format         string `toml:"format"`
	VerifiedSymbol string `toml:"verified_symbol"`
	FlaggedSymbol  string `toml:"flagged_symbol"`
	MissingSymbol  string `toml:"missing_symbol"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for classcheck.
//
// Configuration sections by subsystem:
//   - Paths: export and log directories
//   - Matching: normalization prefixes and multi-match policy
//   - Activities: activity id range
//   - Columns: header keywords for roster and submission files
//   - Batch: worker count for parallel stages
//   - Export: output format and verdict symbols
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Matching   Matching   `toml:"matching"`
	Activities Activities `toml:"activities"`
	Columns    Columns    `toml:"columns"`
	Batch      Batch      `toml:"batch"`
	Export     Export     `toml:"export"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("classcheck.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the export and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ExportDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ActivityRange returns the configured activity id range.
func (c *Config) ActivityRange() activity.Range {
	return activity.Range{
		Prefix: c.Activities.Prefix,
		First:  c.Activities.First,
		Last:   c.Activities.Last,
	}
}
