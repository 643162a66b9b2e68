package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"classcheck/internal/activity"
	"classcheck/internal/logging"
	"classcheck/internal/roster"
	"classcheck/internal/submission"
)

// Options configures a reconciliation run.
type Options struct {
	Mode       MatchMode
	Activities activity.Range
	// Workers bounds the number of rooms folded concurrently. Zero uses
	// GOMAXPROCS.
	Workers int
}

// Stats summarises how claims were applied.
type Stats struct {
	Claims      int `json:"claims"`
	OutOfRange  int `json:"out_of_range"`
	Unmatched   int `json:"unmatched"`
	MultiMatch  int `json:"multi_match"`
	Events      int `json:"events"`
	VerifiedSet int `json:"verified_cells"`
	FlaggedSet  int `json:"flagged_cells"`
}

// Event is the verdict one claim gives one cell.
type Event struct {
	Key     CellKey
	Verdict Verdict
	Source  string
}

// Engine reconciles claims against a roster.
type Engine struct {
	opts   Options
	logger *slog.Logger
}

// NewEngine constructs an engine. An unset activity range falls back to the
// default range and an unknown mode to MatchAll.
func NewEngine(opts Options, logger *slog.Logger) *Engine {
	if opts.Activities.Len() == 0 {
		opts.Activities = activity.Default()
	}
	if opts.Mode != MatchLongest {
		opts.Mode = MatchAll
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{opts: opts, logger: logging.NewComponentLogger(logger, "reconcile")}
}

// Events matches every claim independently and returns the resulting verdict
// events in claim order, together with the claim statistics.
func (e *Engine) Events(entries []roster.Entry, claims []submission.Claim) ([]Event, Stats) {
	stats := Stats{Claims: len(claims)}
	var events []Event
	for _, claim := range claims {
		if !e.opts.Activities.Contains(claim.ActivityID) {
			stats.OutOfRange++
			e.logger.Debug("claim outside activity range ignored",
				logging.Activity(claim.ActivityID),
				logging.String("source", claim.Source),
			)
			continue
		}
		matched := Matches(entries, claim, e.opts.Mode)
		switch len(matched) {
		case 0:
			stats.Unmatched++
			e.logger.Debug("claim matched no roster entry",
				logging.Activity(claim.ActivityID),
				logging.String("source", claim.Source),
			)
			continue
		case 1:
		default:
			stats.MultiMatch++
			e.logger.Debug("claim matched several roster entries",
				logging.Activity(claim.ActivityID),
				logging.String("source", claim.Source),
				logging.Int("matches", len(matched)),
			)
		}
		for _, entry := range matched {
			events = append(events, Event{
				Key: CellKey{
					StudentNumber: entry.StudentNumber,
					RoomLabel:     entry.RoomLabel,
					ActivityID:    claim.ActivityID,
				},
				Verdict: ClaimVerdict(entry, claim),
				Source:  claim.Source,
			})
		}
	}
	stats.Events = len(events)
	return events, stats
}

// Reconcile computes the verdict of every (entry, activity) cell. Rooms are
// folded concurrently; each worker owns the cells of one room.
func (e *Engine) Reconcile(ctx context.Context, r *roster.Roster, claims []submission.Claim) (Verdicts, Stats, error) {
	entries := r.Entries()
	events, stats := e.Events(entries, claims)

	byRoom := make(map[string][]Event)
	for _, ev := range events {
		byRoom[ev.Key.RoomLabel] = append(byRoom[ev.Key.RoomLabel], ev)
	}

	rooms := r.Rooms()
	results := make([]Verdicts, len(rooms))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i, room := range rooms {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.foldRoom(r.Room(room), byRoom[room])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, fmt.Errorf("reconcile rooms: %w", err)
	}

	out := make(Verdicts, len(entries)*e.opts.Activities.Len())
	for _, v := range results {
		out.fold(v)
	}
	for _, v := range out {
		switch v {
		case Verified:
			stats.VerifiedSet++
		case Flagged:
			stats.FlaggedSet++
		}
	}
	e.logger.Info("reconciliation complete",
		logging.Int("claims", stats.Claims),
		logging.Int("events", stats.Events),
		logging.Int("verified_cells", stats.VerifiedSet),
		logging.Int("flagged_cells", stats.FlaggedSet),
		logging.Int("unmatched_claims", stats.Unmatched),
	)
	return out, stats, nil
}

func (e *Engine) foldRoom(entries []roster.Entry, events []Event) Verdicts {
	ids := e.opts.Activities.IDs()
	cells := make(Verdicts, len(entries)*len(ids))
	for _, entry := range entries {
		for _, id := range ids {
			cells[CellKey{StudentNumber: entry.StudentNumber, RoomLabel: entry.RoomLabel, ActivityID: id}] = NotSubmitted
		}
	}
	for _, ev := range events {
		cells[ev.Key] = Merge(cells[ev.Key], ev.Verdict)
	}
	return cells
}

// Reconcile is a convenience wrapper around Engine.Reconcile.
func Reconcile(ctx context.Context, r *roster.Roster, claims []submission.Claim, opts Options) (Verdicts, error) {
	v, _, err := NewEngine(opts, nil).Reconcile(ctx, r, claims)
	return v, err
}
