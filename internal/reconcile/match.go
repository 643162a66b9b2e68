package reconcile

import (
	"strings"

	"classcheck/internal/roster"
	"classcheck/internal/submission"
)

// MatchMode selects how a claim whose content holds several roster keys is
// applied.
type MatchMode string

const (
	// MatchAll applies the claim to every entry whose key it contains.
	MatchAll MatchMode = "all"
	// MatchLongest applies the claim only to the entries with the longest
	// contained key.
	MatchLongest MatchMode = "longest"
)

// ClaimVerdict computes the verdict one claim gives one matched entry.
func ClaimVerdict(entry roster.Entry, claim submission.Claim) Verdict {
	numberOK := !claim.HasClaimedNumber || claim.ClaimedNumber == entry.StudentNumber
	roomOK := claim.ClaimedRoomCode == "" || strings.Contains(claim.ClaimedRoomCode, entry.RoomCode)
	if numberOK && roomOK {
		return Verified
	}
	return Flagged
}

// Matches returns the entries a claim refers to. Entries with an empty key
// never match.
func Matches(entries []roster.Entry, claim submission.Claim, mode MatchMode) []roster.Entry {
	if claim.NormalizedContent == "" {
		return nil
	}
	var out []roster.Entry
	longest := 0
	for _, e := range entries {
		if !e.Matchable() || !strings.Contains(claim.NormalizedContent, e.NormalizedKey) {
			continue
		}
		if mode != MatchLongest {
			out = append(out, e)
			continue
		}
		switch n := len(e.NormalizedKey); {
		case n > longest:
			longest = n
			out = append(out[:0], e)
		case n == longest:
			out = append(out, e)
		}
	}
	return out
}
