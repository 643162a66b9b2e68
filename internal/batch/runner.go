package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"classcheck/internal/activity"
	"classcheck/internal/columns"
	"classcheck/internal/config"
	"classcheck/internal/logging"
	"classcheck/internal/matrix"
	"classcheck/internal/reconcile"
	"classcheck/internal/roster"
	"classcheck/internal/submission"
	"classcheck/internal/tabular"
	"classcheck/internal/textutil"
)

const (
	roleRoster     = "roster"
	roleSubmission = "submission"
)

// Input lists the files of one batch.
type Input struct {
	RosterPaths     []string
	SubmissionPaths []string
}

// Options configures a Runner.
type Options struct {
	Normalizer *textutil.Normalizer
	Keywords   columns.Keywords
	Activities activity.Range
	Mode       reconcile.MatchMode
	Workers    int
}

// OptionsFromConfig maps configuration onto runner options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	return Options{
		Normalizer: textutil.NewNormalizer(cfg.Matching.Prefixes, cfg.Matching.StripChars),
		Keywords: columns.Keywords{
			columns.RoleStudentNumber: cfg.Columns.StudentNumber,
			columns.RoleName:          cfg.Columns.Name,
			columns.RoleRoom:          cfg.Columns.Room,
		},
		Activities: cfg.ActivityRange(),
		Mode:       reconcile.MatchMode(cfg.Matching.MatchMode),
		Workers:    cfg.Batch.Workers,
	}
}

// Result is everything a batch produced.
type Result struct {
	Report   Report
	Roster   *roster.Roster
	Claims   []submission.Claim
	Verdicts reconcile.Verdicts
	Matrices matrix.Set
}

// Runner executes batches.
type Runner struct {
	opts     Options
	base     *slog.Logger
	newRunID func() string
	now      func() time.Time
}

// NewRunner constructs a runner.
func NewRunner(opts Options, logger *slog.Logger) *Runner {
	if opts.Normalizer == nil {
		opts.Normalizer = textutil.NewNormalizer(nil, "")
	}
	if opts.Activities.Len() == 0 {
		opts.Activities = activity.Default()
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		opts:     opts,
		base:     logger,
		newRunID: uuid.NewString,
		now:      time.Now,
	}
}

// run holds the collaborators of one batch, all logging with its run id.
type run struct {
	logger    *slog.Logger
	builder   *roster.Builder
	extractor *submission.Extractor
}

func (r *Runner) newRun(ctx context.Context) *run {
	base := logging.WithContext(ctx, r.base)
	return &run{
		logger:    logging.NewComponentLogger(base, "batch"),
		builder:   roster.NewBuilder(r.opts.Normalizer, r.opts.Keywords, base),
		extractor: submission.NewExtractor(r.opts.Normalizer, r.opts.Keywords, submission.NewPatterns(r.opts.Activities.Prefix), base),
	}
}

// fileResult is the per-file output of a parallel load stage.
type fileResult[T any] struct {
	items   []T
	skipped []SkippedInput
}

// Run executes one batch. Unreadable files and room tables without the
// required columns are skipped and recorded in the report. An empty roster
// returns the (empty) result together with an ErrConfiguration error. Only
// cancellation aborts the batch.
func (r *Runner) Run(ctx context.Context, in Input) (*Result, error) {
	runID := r.newRunID()
	ctx = logging.WithRunID(ctx, runID)
	rn := r.newRun(ctx)
	logger := rn.logger
	res := &Result{
		Report: Report{
			RunID:           runID,
			StartedAt:       r.now().UTC(),
			RosterFiles:     len(in.RosterPaths),
			SubmissionFiles: len(in.SubmissionPaths),
		},
		Matrices: matrix.Set{Matrices: map[string]matrix.Matrix{}},
	}
	logger.Info("batch started",
		logging.Int("roster_files", len(in.RosterPaths)),
		logging.Int("submission_files", len(in.SubmissionPaths)),
		logging.String("activities", r.opts.Activities.String()),
		logging.String("match_mode", string(r.opts.Mode)),
	)

	rosterResults, err := loadParallel(ctx, r.opts.Workers, in.RosterPaths, func(path string) fileResult[[]roster.Entry] {
		return rn.parseRosterFile(path)
	})
	if err != nil {
		return r.finish(logger, res, fmt.Errorf("load roster files: %w", err))
	}
	var groups [][]roster.Entry
	for _, fr := range rosterResults {
		groups = append(groups, fr.items...)
		res.Report.Skipped = append(res.Report.Skipped, fr.skipped...)
	}
	res.Roster = rn.builder.Assemble(groups...)
	res.Report.RosterEntries = res.Roster.Len()
	res.Report.Rooms = res.Roster.Rooms()

	if res.Roster.Len() == 0 {
		return r.finish(logger, res, Wrap(ErrConfiguration, roleRoster, "assemble", "", roster.ErrEmptyRoster))
	}

	claimResults, err := loadParallel(ctx, r.opts.Workers, in.SubmissionPaths, func(path string) fileResult[submission.Claim] {
		return rn.extractSubmissionFile(path)
	})
	if err != nil {
		return r.finish(logger, res, fmt.Errorf("load submission files: %w", err))
	}
	for _, fr := range claimResults {
		res.Claims = append(res.Claims, fr.items...)
		res.Report.Skipped = append(res.Report.Skipped, fr.skipped...)
	}
	res.Report.Claims = len(res.Claims)
	for _, c := range res.Claims {
		if c.Ambiguous {
			res.Report.AmbiguousRows++
		}
	}

	engine := reconcile.NewEngine(reconcile.Options{
		Mode:       r.opts.Mode,
		Activities: r.opts.Activities,
		Workers:    r.opts.Workers,
	}, logging.WithContext(ctx, r.base))
	verdicts, stats, err := engine.Reconcile(ctx, res.Roster, res.Claims)
	if err != nil {
		return r.finish(logger, res, err)
	}
	res.Verdicts = verdicts
	res.Report.Reconcile = stats
	res.Matrices = matrix.Build(res.Roster, verdicts, r.opts.Activities)
	return r.finish(logger, res, nil)
}

func (r *Runner) finish(logger *slog.Logger, res *Result, err error) (*Result, error) {
	res.Report.FinishedAt = r.now().UTC()
	if err != nil {
		res.Report.Error = err.Error()
		res.Report.ErrorKind = Kind(err)
		if IsConfiguration(err) {
			logging.WarnWithContext(logger, "batch produced no matrices", "empty_roster",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check that roster files have student number and name headers"),
				logging.String(logging.FieldImpact, "no completion matrices were built"),
			)
		} else {
			logger.Error("batch failed", logging.Error(err))
		}
		return res, err
	}
	logger.Info("batch complete",
		logging.Int("rooms", res.Matrices.Len()),
		logging.Int("roster_entries", res.Report.RosterEntries),
		logging.Int("claims", res.Report.Claims),
		logging.Int("skipped_inputs", len(res.Report.Skipped)),
		logging.Duration("duration", res.Report.Duration()),
	)
	return res, nil
}

func (rn *run) parseRosterFile(path string) fileResult[[]roster.Entry] {
	var out fileResult[[]roster.Entry]
	tables, err := tabular.Load(path)
	if err != nil {
		out.skipped = append(out.skipped, rn.skip(roleRoster, path, "", err))
		return out
	}
	for _, table := range tables {
		entries, err := rn.builder.ParseTable(table)
		if err != nil {
			out.skipped = append(out.skipped, rn.skip(roleRoster, path, table.Name, err))
			continue
		}
		out.items = append(out.items, entries)
	}
	return out
}

func (rn *run) extractSubmissionFile(path string) fileResult[submission.Claim] {
	var out fileResult[submission.Claim]
	tables, err := tabular.Load(path)
	if err != nil {
		out.skipped = append(out.skipped, rn.skip(roleSubmission, path, "", err))
		return out
	}
	out.items = rn.extractor.Extract(tables)
	return out
}

func (rn *run) skip(role, path, table string, err error) SkippedInput {
	kind := Kind(err)
	logging.WarnWithContext(rn.logger, role+" input skipped", kind,
		logging.File(path),
		logging.String("table", table),
		logging.Error(err),
	)
	return SkippedInput{Role: role, Path: path, Table: table, Kind: kind, Error: err.Error()}
}

// loadParallel applies fn to every path with at most workers goroutines and
// returns the results in input order.
func loadParallel[T any](ctx context.Context, workers int, paths []string, fn func(string) fileResult[T]) ([]fileResult[T], error) {
	results := make([]fileResult[T], len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = fn(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
