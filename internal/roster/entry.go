package roster

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"classcheck/internal/textutil"
)

// ErrEmptyRoster indicates no room table produced a usable entry.
var ErrEmptyRoster = errors.New("roster is empty: no room file exposes both a student number and a name column")

// Entry is one enrolled student.
type Entry struct {
	StudentNumber int    `json:"student_number"`
	DisplayName   string `json:"display_name"`
	NormalizedKey string `json:"normalized_key"`
	RoomLabel     string `json:"room_label"`
	RoomCode      string `json:"room_code"`
}

// Matchable reports whether the entry can participate in matching.
func (e Entry) Matchable() bool {
	return e.NormalizedKey != ""
}

// RoomCode extracts the digits of a room label ("ม.1-1" -> "11").
func RoomCode(label string) string {
	return textutil.Digits(label)
}

// ParseStudentNumber reads an integer student number from a cell. Spreadsheet
// exports often render integers as floats ("5.0"); those are accepted when
// they carry no fractional part.
func ParseStudentNumber(cell string) (int, bool) {
	trimmed := strings.TrimSpace(cell)
	if textutil.IsMissing(trimmed) {
		return 0, false
	}
	trimmed = thaiDigits.Replace(trimmed)
	if n, err := strconv.Atoi(trimmed); err == nil {
		if n < 0 {
			return 0, false
		}
		return n, true
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

var thaiDigits = strings.NewReplacer(
	"๐", "0", "๑", "1", "๒", "2", "๓", "3", "๔", "4",
	"๕", "5", "๖", "6", "๗", "7", "๘", "8", "๙", "9",
)
