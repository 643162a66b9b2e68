package reconcile

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"classcheck/internal/activity"
	"classcheck/internal/logging"
	"classcheck/internal/roster"
	"classcheck/internal/submission"
	"classcheck/internal/textutil"
)

const room = "ม.1-1"

func entry(number int, name, label string) roster.Entry {
	return roster.Entry{
		StudentNumber: number,
		DisplayName:   name,
		NormalizedKey: textutil.Normalize(name),
		RoomLabel:     label,
		RoomCode:      roster.RoomCode(label),
	}
}

func claim(id, raw string) submission.Claim {
	return submission.Claim{ActivityID: id, NormalizedContent: textutil.Normalize(raw), Source: raw}
}

func withNumber(c submission.Claim, n int) submission.Claim {
	c.ClaimedNumber = n
	c.HasClaimedNumber = true
	return c
}

func withRoom(c submission.Claim, code string) submission.Claim {
	c.ClaimedRoomCode = code
	return c
}

func buildRoster(entries ...roster.Entry) *roster.Roster {
	return roster.NewBuilder(nil, nil, logging.NewNop()).Assemble(entries)
}

func reconcile(t *testing.T, r *roster.Roster, claims []submission.Claim, mode MatchMode) Verdicts {
	t.Helper()
	v, _, err := NewEngine(Options{Mode: mode, Activities: activity.Default(), Workers: 2}, logging.NewNop()).
		Reconcile(context.Background(), r, claims)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	return v
}

func TestReconcileVerifiedWhenNumberAndRoomAgree(t *testing.T) {
	r := buildRoster(entry(5, "เด็กชายสมชาย ใจดี", room))
	c := withRoom(withNumber(claim("1.3", "เลขที่5 1.3 สมชายใจดี ห้อง11"), 5), "11")

	v := reconcile(t, r, []submission.Claim{c}, MatchAll)
	if got := v.Get(room, 5, "1.3"); got != Verified {
		t.Fatalf("cell 1.3 = %s, want verified", got)
	}
	if got := v.Get(room, 5, "1.4"); got != NotSubmitted {
		t.Fatalf("cell 1.4 = %s, want not_submitted", got)
	}
	if len(v) != activity.Default().Len() {
		t.Fatalf("cells = %d, want %d", len(v), activity.Default().Len())
	}
}

func TestReconcileFlaggedNeverOverridesVerified(t *testing.T) {
	r := buildRoster(entry(5, "เด็กชายสมชาย ใจดี", room))
	good := withRoom(withNumber(claim("1.3", "เลขที่5 1.3 สมชายใจดี ห้อง11"), 5), "11")
	wrongNumber := withNumber(claim("1.3", "เลขที่9 1.3 สมชายใจดี"), 9)

	for _, order := range [][]submission.Claim{{good, wrongNumber}, {wrongNumber, good}} {
		v := reconcile(t, r, order, MatchAll)
		if got := v.Get(room, 5, "1.3"); got != Verified {
			t.Fatalf("cell = %s, want verified", got)
		}
	}

	v := reconcile(t, r, []submission.Claim{wrongNumber}, MatchAll)
	if got := v.Get(room, 5, "1.3"); got != Flagged {
		t.Fatalf("lone mismatched claim = %s, want flagged", got)
	}
}

func TestReconcileClaimWithoutHintsIsVerified(t *testing.T) {
	r := buildRoster(entry(5, "เด็กชายสมชาย ใจดี", room))
	v := reconcile(t, r, []submission.Claim{claim("1.1", "1.1 สมชายใจดี")}, MatchAll)
	if got := v.Get(room, 5, "1.1"); got != Verified {
		t.Fatalf("cell = %s, want verified", got)
	}
}

func TestReconcileRoomMismatchFlags(t *testing.T) {
	r := buildRoster(entry(5, "สมชาย ใจดี", room))
	c := withRoom(claim("1.2", "1.2 สมชาย ใจดี"), "12")
	v := reconcile(t, r, []submission.Claim{c}, MatchAll)
	if got := v.Get(room, 5, "1.2"); got != Flagged {
		t.Fatalf("cell = %s, want flagged", got)
	}
}

func TestReconcileIgnoresOutOfRangeActivities(t *testing.T) {
	r := buildRoster(entry(5, "สมชาย ใจดี", room))
	v, stats, err := NewEngine(Options{Activities: activity.Range{Prefix: "1", First: 1, Last: 3}}, logging.NewNop()).
		Reconcile(context.Background(), r, []submission.Claim{claim("1.9", "1.9 สมชายใจดี")})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if _, ok := v[CellKey{StudentNumber: 5, RoomLabel: room, ActivityID: "1.9"}]; ok {
		t.Fatal("out-of-range activity produced a cell")
	}
	if stats.OutOfRange != 1 || stats.Events != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestReconcileOrderIndependent(t *testing.T) {
	r := buildRoster(
		entry(1, "สมชาย ใจดี", room),
		entry(2, "สมหญิง รักเรียน", room),
		entry(3, "Alice Smith", "ม.1-2"),
		entry(4, "Bob Stone", "ม.1-2"),
	)
	claims := []submission.Claim{
		withNumber(claim("1.1", "1.1 สมชาย ใจดี"), 1),
		withNumber(claim("1.1", "1.1 สมชาย ใจดี"), 7),
		withRoom(claim("1.2", "1.2 สมหญิง รักเรียน"), "12"),
		withRoom(claim("1.2", "1.2 สมหญิง รักเรียน"), "11"),
		withNumber(claim("1.3", "1.3 alice smith"), 9),
		claim("1.4", "1.4 Bob Stone"),
		withRoom(withNumber(claim("1.4", "1.4 Bob Stone"), 4), "99"),
		claim("1.5", "1.5 nobody here"),
	}
	want := reconcile(t, r, claims, MatchAll)

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 25; i++ {
		shuffled := append([]submission.Claim(nil), claims...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if diff := cmp.Diff(want, reconcile(t, r, shuffled, MatchAll)); diff != "" {
			t.Fatalf("permutation %d changed verdicts (-want +got):\n%s", i, diff)
		}
	}
	if got := want.Get("ม.1-2", 3, "1.3"); got != Flagged {
		t.Fatalf("alice 1.3 = %s, want flagged", got)
	}
	if got := want.Get("ม.1-2", 4, "1.4"); got != Verified {
		t.Fatalf("bob 1.4 = %s, want verified", got)
	}
}

func TestReconcileMonotoneOnceVerified(t *testing.T) {
	r := buildRoster(entry(5, "สมชาย ใจดี", room))
	claims := []submission.Claim{claim("1.1", "1.1 สมชายใจดี")}
	for i := 0; i < 5; i++ {
		claims = append(claims, withNumber(claim("1.1", "1.1 สมชายใจดี"), 40+i))
		v := reconcile(t, r, claims, MatchAll)
		if got := v.Get(room, 5, "1.1"); got != Verified {
			t.Fatalf("after %d flagged claims cell = %s", i+1, got)
		}
	}
}

func TestMatchesSkipsEmptyKeys(t *testing.T) {
	entries := []roster.Entry{
		{StudentNumber: 1, RoomLabel: room, NormalizedKey: ""},
		entry(2, "สมชาย", room),
	}
	got := Matches(entries, claim("1.1", "1.1 สมชาย"), MatchAll)
	if len(got) != 1 || got[0].StudentNumber != 2 {
		t.Fatalf("matches = %+v", got)
	}
	if got := Matches(entries, submission.Claim{ActivityID: "1.1"}, MatchAll); got != nil {
		t.Fatalf("empty content matched %+v", got)
	}
}

func TestMatchModes(t *testing.T) {
	r := buildRoster(
		entry(1, "สมชาย", room),
		entry(2, "สมชาย ใจดี", room),
		entry(3, "ใจดี", room),
	)
	c := claim("1.1", "1.1 สมชาย ใจดี")

	all := reconcile(t, r, []submission.Claim{c}, MatchAll)
	for _, n := range []int{1, 2, 3} {
		if got := all.Get(room, n, "1.1"); got != Verified {
			t.Errorf("match-all student %d = %s, want verified", n, got)
		}
	}

	longest := reconcile(t, r, []submission.Claim{c}, MatchLongest)
	want := map[int]Verdict{1: NotSubmitted, 2: Verified, 3: NotSubmitted}
	for n, v := range want {
		if got := longest.Get(room, n, "1.1"); got != v {
			t.Errorf("longest student %d = %s, want %s", n, got, v)
		}
	}
}

func TestMatchLongestKeepsTies(t *testing.T) {
	entries := []roster.Entry{entry(1, "abcd", room), entry(2, "wxyz", room), entry(3, "ab", room)}
	got := Matches(entries, claim("1.1", "1.1 abcd wxyz"), MatchLongest)
	if len(got) != 2 || got[0].StudentNumber != 1 || got[1].StudentNumber != 2 {
		t.Fatalf("matches = %+v", got)
	}
}

func TestReconcileEmptyRoster(t *testing.T) {
	v := reconcile(t, buildRoster(), []submission.Claim{claim("1.1", "1.1 x")}, MatchAll)
	if len(v) != 0 {
		t.Fatalf("verdicts = %v", v)
	}
}

func TestReconcileCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Reconcile(ctx, buildRoster(entry(1, "สมชาย", room)), nil, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
