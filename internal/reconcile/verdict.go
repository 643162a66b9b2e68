package reconcile

import "fmt"

// Verdict is the trust level of a (student, activity) cell. Values are
// ordered: NotSubmitted < Flagged < Verified.
type Verdict int

const (
	NotSubmitted Verdict = iota
	Flagged
	Verified
)

func (v Verdict) String() string {
	switch v {
	case NotSubmitted:
		return "not_submitted"
	case Flagged:
		return "flagged"
	case Verified:
		return "verified"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// MarshalText renders the verdict name for JSON and other text encodings.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Merge folds a new verdict into the current one. A Verified verdict always
// wins, a Flagged verdict only replaces NotSubmitted, and nothing ever lowers
// a cell.
func Merge(current, next Verdict) Verdict {
	if next > current {
		return next
	}
	return current
}

// CellKey identifies one reconciliation cell.
type CellKey struct {
	StudentNumber int
	RoomLabel     string
	ActivityID    string
}

// Verdicts maps every cell of the roster × activity space to its verdict.
type Verdicts map[CellKey]Verdict

// Get returns the verdict of a cell; unknown cells are NotSubmitted.
func (v Verdicts) Get(room string, studentNumber int, activityID string) Verdict {
	return v[CellKey{StudentNumber: studentNumber, RoomLabel: room, ActivityID: activityID}]
}

// fold merges another room's verdicts into v. Rooms never share cells, but
// folding with Merge keeps the operation safe for any split of the work.
func (v Verdicts) fold(other Verdicts) {
	for key, verdict := range other {
		v[key] = Merge(v[key], verdict)
	}
}
