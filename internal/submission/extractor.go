package submission

import (
	"fmt"
	"log/slog"
	"strings"

	"classcheck/internal/columns"
	"classcheck/internal/logging"
	"classcheck/internal/tabular"
	"classcheck/internal/textutil"
)

// Extractor converts submission tables into claims.
type Extractor struct {
	normalizer *textutil.Normalizer
	keywords   columns.Keywords
	patterns   Patterns
	logger     *slog.Logger
}

// NewExtractor constructs an extractor. Only the room role of keywords is
// consulted.
func NewExtractor(normalizer *textutil.Normalizer, keywords columns.Keywords, patterns Patterns, logger *slog.Logger) *Extractor {
	if normalizer == nil {
		normalizer = textutil.NewNormalizer(nil, "")
	}
	if patterns.Activity == nil || patterns.Number == nil {
		patterns = NewPatterns("")
	}
	return &Extractor{
		normalizer: normalizer,
		keywords:   columns.Keywords{columns.RoleRoom: keywords[columns.RoleRoom]},
		patterns:   patterns,
		logger:     logging.NewComponentLogger(logger, "submission"),
	}
}

// ExtractRow builds the claim for a single row. roomColumn may be empty when
// the table has no room-hint column.
func (x *Extractor) ExtractRow(table tabular.Table, row tabular.Row, roomColumn string) (Claim, error) {
	raw := strings.Join(table.Values(row), " ")
	id, ambiguous, ok := x.patterns.FindActivity(raw)
	if !ok {
		return Claim{}, ErrPatternNotFound
	}
	claim := Claim{
		ActivityID:        id,
		NormalizedContent: x.normalizer.Normalize(raw),
		Ambiguous:         ambiguous,
	}
	if n, ok := x.patterns.FindStudentNumber(raw); ok {
		claim.ClaimedNumber = n
		claim.HasClaimedNumber = true
	}
	if roomColumn != "" {
		claim.ClaimedRoomCode = textutil.Digits(row[roomColumn])
	}
	return claim, nil
}

// ExtractTable returns the claims of every submission row in table.
func (x *Extractor) ExtractTable(table tabular.Table) []Claim {
	res := columns.Resolve(table.Headers, x.keywords)
	roomColumn, _ := res.Header(columns.RoleRoom)
	logger := x.logger.With(logging.File(table.Source))
	if roomColumn == "" {
		logger.Debug("no room column; claims carry no room code", logging.String("table", table.Name))
	}

	claims := make([]Claim, 0, len(table.Rows))
	for i, row := range table.Rows {
		claim, err := x.ExtractRow(table, row, roomColumn)
		if err != nil {
			continue
		}
		claim.Source = fmt.Sprintf("%s:%d", table.Name, i+1)
		if claim.Ambiguous {
			logger.Info("row names several activities; first one claimed",
				logging.Activity(claim.ActivityID),
				logging.String("source", claim.Source),
			)
		}
		claims = append(claims, claim)
	}
	logger.Debug("submission table extracted",
		logging.String("table", table.Name),
		logging.Int("rows", len(table.Rows)),
		logging.Int("claims", len(claims)),
	)
	return claims
}

// Extract returns the claims of all tables in order.
func (x *Extractor) Extract(tables []tabular.Table) []Claim {
	var claims []Claim
	for _, table := range tables {
		claims = append(claims, x.ExtractTable(table)...)
	}
	return claims
}
