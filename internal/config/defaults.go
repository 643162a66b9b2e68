package config

import "classcheck/internal/textutil"

const (
	defaultConfigPath      = "~/.config/classcheck/config.toml"
	defaultExportDir       = "~/classcheck/exports"
	defaultLogDir          = "~/.local/share/classcheck/logs"
	defaultStripChars      = textutil.DefaultStripChars
	defaultMatchMode       = MatchModeAll
	defaultActivityPrefix  = "1"
	defaultActivityFirst   = 1
	defaultActivityLast    = 14
	defaultBatchWorkers    = 4
	defaultExportFormat    = ExportFormatTable
	defaultVerifiedSymbol  = "✓"
	defaultFlaggedSymbol   = "?"
	defaultMissingSymbol   = "-"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	maxBatchWorkers        = 64
	maxActivityNumber      = 99
	envLogLevel            = "CLASSCHECK_LOG_LEVEL"
	envExportDir           = "CLASSCHECK_EXPORT_DIR"
)

// Match modes for claims whose content contains several roster keys.
const (
	MatchModeAll     = "all"
	MatchModeLongest = "longest"
)

// Export formats understood by the CLI and export package.
const (
	ExportFormatTable = "table"
	ExportFormatJSON  = "json"
	ExportFormatCSV   = "csv"
	ExportFormatXLSX  = "xlsx"
)

var (
	defaultStudentNumberKeywords = []string{"เลขที่", "number", "no.", "index"}
	defaultNameKeywords          = []string{"ชื่อ", "name", "surname", "สกุล"}
	defaultRoomKeywords          = []string{"ห้อง", "section", "room"}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ExportDir: defaultExportDir,
			LogDir:    defaultLogDir,
		},
		Matching: Matching{
			Prefixes:   append([]string(nil), textutil.DefaultPrefixes...),
			StripChars: defaultStripChars,
			MatchMode:  defaultMatchMode,
		},
		Activities: Activities{
			Prefix: defaultActivityPrefix,
			First:  defaultActivityFirst,
			Last:   defaultActivityLast,
		},
		Columns: Columns{
			StudentNumber: append([]string(nil), defaultStudentNumberKeywords...),
			Name:          append([]string(nil), defaultNameKeywords...),
			Room:          append([]string(nil), defaultRoomKeywords...),
		},
		Batch: Batch{
			Workers: defaultBatchWorkers,
		},
		Export: Export{
			Format:         defaultExportFormat,
			VerifiedSymbol: defaultVerifiedSymbol,
			FlaggedSymbol:  defaultFlaggedSymbol,
			MissingSymbol:  defaultMissingSymbol,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
