package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeActivities()
	c.normalizeColumns()
	c.normalizeExport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(envExportDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.ExportDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.ExportDir) == "" {
		c.Paths.ExportDir = defaultExportDir
	}
	var err error
	if c.Paths.ExportDir, err = expandPath(c.Paths.ExportDir); err != nil {
		return fmt.Errorf("paths.export_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMatching() {
	c.Matching.Prefixes = trimList(c.Matching.Prefixes)
	if c.Matching.StripChars == "" {
		c.Matching.StripChars = defaultStripChars
	}
	c.Matching.MatchMode = strings.ToLower(strings.TrimSpace(c.Matching.MatchMode))
	if c.Matching.MatchMode == "" {
		c.Matching.MatchMode = defaultMatchMode
	}
}

func (c *Config) normalizeActivities() {
	c.Activities.Prefix = strings.TrimSpace(c.Activities.Prefix)
	if c.Activities.Prefix == "" {
		c.Activities.Prefix = defaultActivityPrefix
	}
}

func (c *Config) normalizeColumns() {
	c.Columns.StudentNumber = lowerList(c.Columns.StudentNumber)
	if len(c.Columns.StudentNumber) == 0 {
		c.Columns.StudentNumber = append([]string(nil), defaultStudentNumberKeywords...)
	}
	c.Columns.Name = lowerList(c.Columns.Name)
	if len(c.Columns.Name) == 0 {
		c.Columns.Name = append([]string(nil), defaultNameKeywords...)
	}
	c.Columns.Room = lowerList(c.Columns.Room)
	if len(c.Columns.Room) == 0 {
		c.Columns.Room = append([]string(nil), defaultRoomKeywords...)
	}
}

func (c *Config) normalizeExport() {
	c.Export.Format = strings.ToLower(strings.TrimSpace(c.Export.Format))
	if c.Export.Format == "" {
		c.Export.Format = defaultExportFormat
	}
	if strings.TrimSpace(c.Export.VerifiedSymbol) == "" {
		c.Export.VerifiedSymbol = defaultVerifiedSymbol
	}
	if strings.TrimSpace(c.Export.FlaggedSymbol) == "" {
		c.Export.FlaggedSymbol = defaultFlaggedSymbol
	}
	if strings.TrimSpace(c.Export.MissingSymbol) == "" {
		c.Export.MissingSymbol = defaultMissingSymbol
	}
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func trimList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func lowerList(values []string) []string {
	out := trimList(values)
	for i := range out {
		out[i] = strings.ToLower(out[i])
	}
	return out
}
