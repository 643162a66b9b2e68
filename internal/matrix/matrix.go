// Package matrix lays reconciliation verdicts out as per-room completion
// matrices. It performs no matching of its own.
package matrix

import (
	"classcheck/internal/activity"
	"classcheck/internal/reconcile"
	"classcheck/internal/roster"
)

// Row is one student's line in a room matrix.
type Row struct {
	StudentNumber  int                 `json:"student_number"`
	DisplayName    string              `json:"display_name"`
	Cells          []reconcile.Verdict `json:"cells"`
	SubmittedCount int                 `json:"submitted_count"`
}

// Matrix is the completion matrix of one room. Cells[i] of every row
// corresponds to Activities[i].
type Matrix struct {
	Room       string   `json:"room"`
	Activities []string `json:"activities"`
	Rows       []Row    `json:"rows"`
}

// Cell returns the verdict for a student and activity.
func (m Matrix) Cell(studentNumber int, activityID string) (reconcile.Verdict, bool) {
	col := -1
	for i, id := range m.Activities {
		if id == activityID {
			col = i
			break
		}
	}
	if col < 0 {
		return reconcile.NotSubmitted, false
	}
	for _, row := range m.Rows {
		if row.StudentNumber == studentNumber {
			return row.Cells[col], true
		}
	}
	return reconcile.NotSubmitted, false
}

// Totals returns, per activity, how many students have a submitted cell.
func (m Matrix) Totals() []int {
	totals := make([]int, len(m.Activities))
	for _, row := range m.Rows {
		for i, v := range row.Cells {
			if v != reconcile.NotSubmitted {
				totals[i]++
			}
		}
	}
	return totals
}

// Set is the ordered collection of room matrices produced by a batch.
type Set struct {
	Rooms    []string          `json:"rooms"`
	Matrices map[string]Matrix `json:"matrices"`
}

// Get returns the matrix of a room.
func (s Set) Get(room string) (Matrix, bool) {
	m, ok := s.Matrices[room]
	return m, ok
}

// Ordered returns the matrices in room order.
func (s Set) Ordered() []Matrix {
	out := make([]Matrix, 0, len(s.Rooms))
	for _, room := range s.Rooms {
		out = append(out, s.Matrices[room])
	}
	return out
}

// Len returns the number of rooms.
func (s Set) Len() int { return len(s.Rooms) }

// Build lays out the verdicts of every roster room. Students are ordered by
// student number and activities by the range; rooms without entries are
// omitted. Missing verdicts read as NotSubmitted.
func Build(r *roster.Roster, verdicts reconcile.Verdicts, activities activity.Range) Set {
	ids := activities.IDs()
	set := Set{Matrices: make(map[string]Matrix)}
	for _, room := range r.Rooms() {
		entries := r.Room(room)
		if len(entries) == 0 {
			continue
		}
		m := Matrix{Room: room, Activities: ids, Rows: make([]Row, 0, len(entries))}
		for _, e := range entries {
			row := Row{
				StudentNumber: e.StudentNumber,
				DisplayName:   e.DisplayName,
				Cells:         make([]reconcile.Verdict, len(ids)),
			}
			for i, id := range ids {
				v := verdicts.Get(room, e.StudentNumber, id)
				row.Cells[i] = v
				if v != reconcile.NotSubmitted {
					row.SubmittedCount++
				}
			}
			m.Rows = append(m.Rows, row)
		}
		set.Rooms = append(set.Rooms, room)
		set.Matrices[room] = m
	}
	return set
}
