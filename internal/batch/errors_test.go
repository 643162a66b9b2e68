package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"classcheck/internal/columns"
	"classcheck/internal/roster"
	"classcheck/internal/tabular"
)

func TestWrapKeepsMarkerAndCause(t *testing.T) {
	err := Wrap(ErrConfiguration, "roster", "assemble", "no usable room", roster.ErrEmptyRoster)
	if !errors.Is(err, ErrConfiguration) || !errors.Is(err, roster.ErrEmptyRoster) {
		t.Fatalf("wrapped error lost its chain: %v", err)
	}
	if !strings.HasPrefix(err.Error(), "configuration error: roster: assemble: no usable room: ") {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if msg := Wrap(nil, "", "", "", nil).Error(); msg != "configuration error: batch failure" {
		t.Fatalf("default message %q", msg)
	}
}

func TestKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"file parse type", fmt.Errorf("load: %w", &tabular.FileParseError{Path: "x.csv", Err: errors.New("bad")}), "file_parse"},
		{"missing column type", &columns.MissingColumnError{Table: "ม.1-1"}, "missing_column"},
		{"configuration marker", Wrap(ErrConfiguration, "roster", "", "", roster.ErrEmptyRoster), "configuration"},
		{"file parse marker", Wrap(ErrFileParse, "submission", "load", "", nil), "file_parse"},
		{"canceled", fmt.Errorf("run: %w", context.Canceled), "canceled"},
		{"other", errors.New("boom"), "internal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Kind(tc.err); got != tc.want {
				t.Fatalf("Kind = %q, want %q", got, tc.want)
			}
		})
	}
}
