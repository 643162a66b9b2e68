package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateActivities(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMatching() error {
	switch c.Matching.MatchMode {
	case MatchModeAll, MatchModeLongest:
		return nil
	default:
		return fmt.Errorf("matching.match_mode: unsupported value %q (want %q or %q)", c.Matching.MatchMode, MatchModeAll, MatchModeLongest)
	}
}

func (c *Config) validateActivities() error {
	if c.Activities.First < 1 {
		return errors.New("activities.first must be at least 1")
	}
	if c.Activities.Last < c.Activities.First {
		return errors.New("activities.last must not be less than activities.first")
	}
	if c.Activities.Last > maxActivityNumber {
		return fmt.Errorf("activities.last must be at most %d (activity ids carry one or two digits)", maxActivityNumber)
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.Workers < 1 || c.Batch.Workers > maxBatchWorkers {
		return fmt.Errorf("batch.workers must be between 1 and %d", maxBatchWorkers)
	}
	return nil
}

func (c *Config) validateExport() error {
	switch c.Export.Format {
	case ExportFormatTable, ExportFormatJSON, ExportFormatCSV, ExportFormatXLSX:
		return nil
	default:
		return fmt.Errorf("export.format: unsupported value %q", c.Export.Format)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
