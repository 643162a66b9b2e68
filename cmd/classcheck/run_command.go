package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"classcheck/internal/batch"
	"classcheck/internal/config"
	"classcheck/internal/export"
	"classcheck/internal/matrix"
	"classcheck/internal/reconcile"
)

type runOptions struct {
	rosters     []string
	submissions []string
	format      string
	outDir      string
	matchMode   string
	jsonOutput  bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile roster files against submission exports",
		Long: `Load room rosters and submission exports, reconcile every claim against the
roster and print or export one completion matrix per room.

--roster and --submissions accept files or directories and may be repeated.`,
		Example: `  classcheck run --roster rosters/ --submissions export.csv
  classcheck run -r rooms.xlsx -s forms/ --format xlsx --out reports/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, ctx, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.rosters, "roster", "r", nil, "Roster file or directory (repeatable)")
	cmd.Flags().StringSliceVarP(&opts.submissions, "submissions", "s", nil, "Submission export file or directory (repeatable)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: table, json, csv or xlsx (default from config)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Export directory (default from config)")
	cmd.Flags().StringVar(&opts.matchMode, "match-mode", "", "Multi-match policy: all or longest (default from config)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the run report and matrices as JSON")
	_ = cmd.MarkFlagRequired("roster")
	return cmd
}

type runJSON struct {
	Report batch.Report    `json:"report"`
	Rooms  []matrix.Matrix `json:"rooms"`
	Files  []string        `json:"files,omitempty"`
}

func runBatch(cmd *cobra.Command, ctx *commandContext, opts runOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	format := strings.ToLower(strings.TrimSpace(opts.format))
	if format == "" {
		format = cfg.Export.Format
	}
	switch format {
	case config.ExportFormatTable, config.ExportFormatJSON, config.ExportFormatCSV, config.ExportFormatXLSX:
	default:
		return fmt.Errorf("unsupported format %q (want table, json, csv or xlsx)", format)
	}
	runnerOpts := batch.OptionsFromConfig(cfg)
	if mode := strings.ToLower(strings.TrimSpace(opts.matchMode)); mode != "" {
		if mode != config.MatchModeAll && mode != config.MatchModeLongest {
			return fmt.Errorf("unsupported match mode %q (want all or longest)", mode)
		}
		runnerOpts.Mode = reconcile.MatchMode(mode)
	}

	rosters, err := batch.ExpandInputs(opts.rosters)
	if err != nil {
		return err
	}
	submissions, err := batch.ExpandInputs(opts.submissions)
	if err != nil {
		return err
	}
	if len(rosters) == 0 {
		return errors.New("no roster files found")
	}

	logger, closeLog, err := ctx.logger(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	res, runErr := batch.NewRunner(runnerOpts, logger).Run(cmd.Context(), batch.Input{
		RosterPaths:     rosters,
		SubmissionPaths: submissions,
	})
	if res == nil {
		return runErr
	}

	var files []string
	if runErr == nil && format != config.ExportFormatTable {
		dir := cfg.Paths.ExportDir
		if strings.TrimSpace(opts.outDir) != "" {
			if dir, err = config.ExpandPath(opts.outDir); err != nil {
				return err
			}
		}
		writer := export.NewWriter(dir, export.SymbolsFromConfig(cfg.Export), logger)
		if files, err = writer.Export(cmd.Context(), format, res.Report.RunID, res.Matrices); err != nil {
			return fmt.Errorf("export matrices: %w", err)
		}
	}

	if opts.jsonOutput {
		if err := writeJSON(cmd, runJSON{Report: res.Report, Rooms: res.Matrices.Ordered(), Files: files}); err != nil {
			return err
		}
		return runErr
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	printReport(out, res.Report, colorize)
	if format == config.ExportFormatTable {
		symbols := export.SymbolsFromConfig(cfg.Export)
		for _, m := range res.Matrices.Ordered() {
			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Room "+m.Room, colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderMatrix(m, symbols, colorize))
		}
	}
	for _, f := range files {
		fmt.Fprintln(out, renderStatusLine("Exported", statusOK, f, colorize))
	}
	return runErr
}

func printReport(out io.Writer, report batch.Report, colorize bool) {
	for _, line := range renderSectionHeader("Run "+report.RunID, colorize) {
		fmt.Fprintln(out, line)
	}
	rosterKind := statusOK
	if report.RosterEntries == 0 {
		rosterKind = statusError
	}
	fmt.Fprintln(out, renderStatusLine("Roster", rosterKind,
		fmt.Sprintf("%d students in %d rooms from %d files", report.RosterEntries, len(report.Rooms), report.RosterFiles), colorize))
	fmt.Fprintln(out, renderStatusLine("Submissions", statusInfo,
		fmt.Sprintf("%d claims from %d files (%d naming several activities)", report.Claims, report.SubmissionFiles, report.AmbiguousRows), colorize))
	if report.Claims > 0 {
		stats := report.Reconcile
		kind := statusOK
		if stats.Unmatched > 0 || stats.FlaggedSet > 0 {
			kind = statusWarn
		}
		fmt.Fprintln(out, renderStatusLine("Reconciled", kind,
			fmt.Sprintf("%d verified, %d flagged, %d unmatched claims, %d out of range",
				stats.VerifiedSet, stats.FlaggedSet, stats.Unmatched, stats.OutOfRange), colorize))
	}
	for _, s := range report.Skipped {
		label := filepath.Base(s.Path)
		if s.Table != "" {
			label += " [" + s.Table + "]"
		}
		fmt.Fprintln(out, renderStatusLine("Skipped "+s.Role, statusWarn, fmt.Sprintf("%s (%s)", label, s.Kind), colorize))
	}
	if report.Error != "" {
		fmt.Fprintln(out, renderStatusLine("Error", statusError, report.Error, colorize))
	}
}
