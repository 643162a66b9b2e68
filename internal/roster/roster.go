package roster

import "sort"

// Roster is the immutable set of entries produced by a batch.
type Roster struct {
	entries []Entry
	rooms   []string
	byRoom  map[string][]int
}

func newRoster(entries []Entry) *Roster {
	r := &Roster{entries: entries, byRoom: make(map[string][]int)}
	for i, e := range entries {
		if _, ok := r.byRoom[e.RoomLabel]; !ok {
			r.rooms = append(r.rooms, e.RoomLabel)
		}
		r.byRoom[e.RoomLabel] = append(r.byRoom[e.RoomLabel], i)
	}
	return r
}

// Len returns the number of entries.
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Entries returns a copy of all entries in build order.
func (r *Roster) Entries() []Entry {
	if r == nil {
		return nil
	}
	return append([]Entry(nil), r.entries...)
}

// Rooms returns room labels in the order their first entry was built.
func (r *Roster) Rooms() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.rooms...)
}

// Room returns the entries of one room ordered by student number.
func (r *Roster) Room(label string) []Entry {
	if r == nil {
		return nil
	}
	idx := r.byRoom[label]
	out := make([]Entry, 0, len(idx))
	for _, i := range idx {
		out = append(out, r.entries[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StudentNumber < out[j].StudentNumber
	})
	return out
}
