package roster

import (
	"log/slog"
	"strings"

	"classcheck/internal/columns"
	"classcheck/internal/logging"
	"classcheck/internal/tabular"
	"classcheck/internal/textutil"
)

// Builder turns room tables into a Roster.
type Builder struct {
	normalizer *textutil.Normalizer
	keywords   columns.Keywords
	logger     *slog.Logger
}

// NewBuilder constructs a roster builder. A nil normalizer uses the default
// prefix list.
func NewBuilder(normalizer *textutil.Normalizer, keywords columns.Keywords, logger *slog.Logger) *Builder {
	if normalizer == nil {
		normalizer = textutil.NewNormalizer(nil, "")
	}
	return &Builder{
		normalizer: normalizer,
		keywords:   keywords,
		logger:     logging.NewComponentLogger(logger, "roster"),
	}
}

// ParseTable converts one room table into candidate entries. It does not
// deduplicate across tables; Assemble does.
func (b *Builder) ParseTable(table tabular.Table) ([]Entry, error) {
	res, err := columns.Require(table.Name, table.Headers, b.keywords, columns.RoleStudentNumber, columns.RoleName)
	if err != nil {
		return nil, err
	}
	numberCol, _ := res.Header(columns.RoleStudentNumber)
	nameCol, _ := res.Header(columns.RoleName)

	logger := b.logger.With(logging.Room(table.Name))
	code := RoomCode(table.Name)
	entries := make([]Entry, 0, len(table.Rows))
	for i, row := range table.Rows {
		number, ok := ParseStudentNumber(row[numberCol])
		if !ok {
			logger.Debug("row skipped: no student number",
				logging.Int("row", i+1),
				logging.String("value", row[numberCol]),
			)
			continue
		}
		name := strings.TrimSpace(row[nameCol])
		entries = append(entries, Entry{
			StudentNumber: number,
			DisplayName:   name,
			NormalizedKey: b.normalizer.Normalize(name),
			RoomLabel:     table.Name,
			RoomCode:      code,
		})
	}
	return entries, nil
}

// Assemble merges parsed tables in order. The first entry seen for a
// normalized key wins, entries with empty keys are dropped, and a repeated
// student number within a room keeps its first row.
func (b *Builder) Assemble(groups ...[]Entry) *Roster {
	byKey := make(map[string]Entry)
	type seat struct {
		room   string
		number int
	}
	seats := make(map[seat]struct{})
	var kept []Entry
	for _, group := range groups {
		for _, e := range group {
			if !e.Matchable() {
				b.logger.Debug("entry dropped: empty name key",
					logging.Room(e.RoomLabel),
					logging.Int("student_number", e.StudentNumber),
				)
				continue
			}
			if first, dup := byKey[e.NormalizedKey]; dup {
				b.logger.Info("duplicate roster name discarded",
					logging.Room(e.RoomLabel),
					logging.Int("student_number", e.StudentNumber),
					logging.String("kept_room", first.RoomLabel),
					logging.Int("kept_student_number", first.StudentNumber),
					logging.String("name", e.DisplayName),
				)
				continue
			}
			s := seat{room: e.RoomLabel, number: e.StudentNumber}
			if _, dup := seats[s]; dup {
				logging.WarnWithContext(b.logger, "duplicate student number discarded", "duplicate_student_number",
					logging.Room(e.RoomLabel),
					logging.Int("student_number", e.StudentNumber),
					logging.String("name", e.DisplayName),
					logging.String(logging.FieldImpact, "row ignored; first listing kept"),
				)
				continue
			}
			byKey[e.NormalizedKey] = e
			seats[s] = struct{}{}
			kept = append(kept, e)
		}
	}
	return newRoster(kept)
}

// Build parses tables sequentially and assembles the roster. Tables missing
// required columns are skipped and their errors returned alongside the
// roster.
func (b *Builder) Build(tables []tabular.Table) (*Roster, []error) {
	groups := make([][]Entry, 0, len(tables))
	var errs []error
	for _, table := range tables {
		entries, err := b.ParseTable(table)
		if err != nil {
			logging.WarnWithContext(b.logger, "room table skipped", "missing_column",
				logging.Room(table.Name),
				logging.File(table.Source),
				logging.Error(err),
				logging.String(logging.FieldImpact, "room omitted from matrices"),
			)
			errs = append(errs, err)
			continue
		}
		b.logger.Debug("room table parsed",
			logging.Room(table.Name),
			logging.Int("rows", len(entries)),
		)
		groups = append(groups, entries)
	}
	return b.Assemble(groups...), errs
}
