package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"classcheck/internal/matrix"
)

// Document is the JSON export of one run.
type Document struct {
	RunID       string          `json:"run_id,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
	Activities  []string        `json:"activities"`
	Rooms       []matrix.Matrix `json:"rooms"`
}

// NewDocument collects the matrices of set in room order.
func NewDocument(runID string, generatedAt time.Time, set matrix.Set) Document {
	doc := Document{RunID: runID, GeneratedAt: generatedAt.UTC(), Rooms: set.Ordered()}
	if len(doc.Rooms) > 0 {
		doc.Activities = doc.Rooms[0].Activities
	}
	if doc.Activities == nil {
		doc.Activities = []string{}
	}
	return doc
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
