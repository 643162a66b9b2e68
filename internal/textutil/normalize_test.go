package textutil

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalizeStripsPrefixesAndWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"child male prefix", "เด็กชายสมชาย ใจดี", "สมชายใจดี"},
		{"child female prefix", "เด็กหญิงสมหญิง  รักเรียน", "สมหญิงรักเรียน"},
		{"abbreviated prefix", "ด.ช. สมชาย ใจดี", "สมชายใจดี"},
		{"abbreviated female", "ด.ญ.สมศรี มีสุข", "สมศรีมีสุข"},
		{"miss before mister", "นางสาว มานี ใจงาม", "มานีใจงาม"},
		{"mister", "นาย ปิติ ชูใจ", "ปิติชูใจ"},
		{"name label with colon", "ชื่อ : สมชาย ใจดี", "สมชายใจดี"},
		{"english label", "Name: John Smith", "johnsmith"},
		{"punctuation", "(สมชาย) ใจ-ดี_.", "สมชายใจดี"},
		{"empty", "", ""},
		{"whitespace only", "   \t", ""},
		{"nan marker", "NaN", ""},
		{"spaced nan collapses", "N a N", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func nestedPrefix(outer, inner, tail string, depth int) string {
	s := inner
	for range depth {
		s = outer + s + tail
	}
	return s
}

func TestNormalizeDeeplyNestedPrefixes(t *testing.T) {
	for _, depth := range []int{1, 2, 8, 9, 16, 40} {
		t.Run(fmt.Sprintf("depth %d", depth), func(t *testing.T) {
			in := nestedPrefix("นา", "นาย", "ย", depth)
			if got := Normalize(in); got != "" {
				t.Fatalf("Normalize(nested %d) = %q, want empty", depth, got)
			}
			named := nestedPrefix("นา", "นาย", "ย", depth) + "สมชาย"
			if got := Normalize(named); got != "สมชาย" {
				t.Fatalf("Normalize(nested %d + name) = %q, want สมชาย", depth, got)
			}
		})
	}
}

func FuzzNormalizeIsIdempotent(f *testing.F) {
	seeds := []string{
		"เด็กชายสมชาย ใจดี",
		"นานายย",
		nestedPrefix("นา", "นาย", "ย", 9),
		nestedPrefix("ด.", "ด.ช.", "ช.", 12),
		nestedPrefix("na", "name:", "me:", 10),
		"ด.ด.ช.ช.",
		"เลขที่5 1.3 เด็กชายสมชาย ใจดี ห้อง 1/1",
		"name:name:Alice",
		"ﬁle Straße",
		"école",
		"N a N",
		"((()))",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, in string) {
		if !utf8.ValidString(in) {
			t.Skip()
		}
		once := Normalize(in)
		if twice := Normalize(once); once != twice {
			t.Fatalf("Normalize not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	})
}

func TestNormalizeNestedPrefixesSettle(t *testing.T) {
	// Removing the inner marker exposes a new one; the fixpoint removes both.
	if got := Normalize("นานายย"); got != "" {
		t.Fatalf("Normalize nested = %q, want empty", got)
	}
}

func TestNormalizerCustomPrefixes(t *testing.T) {
	n := NewNormalizer([]string{"Dr."}, "")
	if got := n.Normalize("Dr. Jane Doe"); got != "janedoe" {
		t.Fatalf("custom prefix normalize = %q", got)
	}
	if got := n.Normalize("เด็กชายสมชาย"); got != "เด็กชายสมชาย" {
		t.Fatalf("default prefixes should not apply with custom list, got %q", got)
	}
}

func TestNormalizerEmptyPrefixesUseDefaults(t *testing.T) {
	for _, prefixes := range [][]string{nil, {}} {
		n := NewNormalizer(prefixes, "")
		if got := n.Normalize("เด็กชายสมชาย ใจดี"); got != "สมชายใจดี" {
			t.Fatalf("NewNormalizer(%#v) normalize = %q, want built-in prefixes removed", prefixes, got)
		}
	}
}

func TestRosterKeyIsSubstringOfContent(t *testing.T) {
	key := Normalize("เด็กชายสมชาย ใจดี")
	content := Normalize("เลขที่5 1.3 ด.ช. สมชาย  ใจดี ห้อง11")
	if key == "" {
		t.Fatal("expected non-empty key")
	}
	if !strings.Contains(content, key) {
		t.Fatalf("content %q does not contain key %q", content, key)
	}
}

func TestDigits(t *testing.T) {
	tests := map[string]string{
		"ม.1-1":   "11",
		"ห้อง ๒/๓": "23",
		"":        "",
		"abc":     "",
	}
	for in, want := range tests {
		if got := Digits(in); got != want {
			t.Errorf("Digits(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeSheetName(t *testing.T) {
	if got := SanitizeSheetName("ม.1/1"); got != "ม.1-1" {
		t.Fatalf("SanitizeSheetName = %q", got)
	}
	long := "abcdefghijklmnopqrstuvwxyz0123456789"
	if got := SanitizeSheetName(long); len([]rune(got)) != 31 {
		t.Fatalf("expected truncation to 31 runes, got %d", len([]rune(got)))
	}
	if got := SanitizeFileName("  ?? "); got != "room" {
		t.Fatalf("SanitizeFileName fallback = %q", got)
	}
}
