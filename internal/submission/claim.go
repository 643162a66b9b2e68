package submission

import "errors"

// ErrPatternNotFound marks a row without an activity reference. It is an
// expected outcome: such rows are not submissions.
var ErrPatternNotFound = errors.New("no activity pattern found")

// Claim is one extracted assertion that somebody submitted an activity.
type Claim struct {
	ActivityID        string `json:"activity_id"`
	NormalizedContent string `json:"normalized_content"`
	// ClaimedNumber is meaningful only when HasClaimedNumber is set.
	ClaimedNumber    int    `json:"claimed_number,omitempty"`
	HasClaimedNumber bool   `json:"has_claimed_number"`
	ClaimedRoomCode  string `json:"claimed_room_code,omitempty"`
	// Ambiguous is set when the row text names more than one activity; only
	// the first is claimed.
	Ambiguous bool   `json:"ambiguous,omitempty"`
	Source    string `json:"source"`
}
