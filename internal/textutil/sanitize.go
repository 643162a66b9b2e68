package textutil

import (
	"strings"
	"unicode/utf8"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// sheetNameReplacer removes the characters spreadsheet applications reject in
// worksheet names.
var sheetNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"[", "(",
	"]", ")",
)

// maxSheetNameRunes is the worksheet name limit enforced by Excel.
const maxSheetNameRunes = 31

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. Returns "room" when nothing usable remains.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	out := strings.Trim(strings.TrimSpace(fileNameReplacer.Replace(name)), ".")
	if out == "" {
		return "room"
	}
	return out
}

// SanitizeSheetName converts a room label into a valid worksheet name.
func SanitizeSheetName(name string) string {
	out := strings.Trim(strings.TrimSpace(sheetNameReplacer.Replace(name)), "'")
	if out == "" {
		return "room"
	}
	if utf8.RuneCountInString(out) > maxSheetNameRunes {
		runes := []rune(out)
		out = string(runes[:maxSheetNameRunes])
	}
	return out
}
