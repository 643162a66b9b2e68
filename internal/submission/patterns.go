package submission

import (
	"regexp"
	"strconv"

	"classcheck/internal/textutil"
)

// Patterns holds the expressions used to scrape claims from row text.
type Patterns struct {
	// Activity must capture the activity number in group 1.
	Activity *regexp.Regexp
	// Number must capture the claimed student number in group 1.
	Number *regexp.Regexp
	prefix string
}

const digitClass = `[0-9๐-๙]`

// numberPattern accepts the localized "เลขที่", "No."/"No", "#", or a bare
// "n" directly in front of the digits.
var numberPattern = regexp.MustCompile(`(?i)(?:เลขที่|\bno\.?|#|\bn)\s*[:.]?\s*(` + digitClass + `{1,4})`)

// NewPatterns builds the default patterns for activity ids "<prefix>.N".
// The prefix must not be glued to a preceding digit, so "21.05" is not read
// as activity "1.5". Runs of more than two digits are rejected in
// FindActivity since RE2 has no lookahead.
func NewPatterns(prefix string) Patterns {
	if prefix == "" {
		prefix = "1"
	}
	activity := regexp.MustCompile(`(?:^|[^0-9])` + regexp.QuoteMeta(prefix) + `\.([0-9]+)`)
	return Patterns{Activity: activity, Number: numberPattern, prefix: prefix}
}

// FindActivity returns the first activity id in text. ambiguous is true when
// the text also names a different activity.
func (p Patterns) FindActivity(text string) (id string, ambiguous bool, ok bool) {
	for _, m := range p.Activity.FindAllStringSubmatch(text, -1) {
		found, valid := p.activityID(m[1])
		if !valid {
			continue
		}
		if !ok {
			id, ok = found, true
			continue
		}
		if found != id {
			ambiguous = true
			break
		}
	}
	return id, ambiguous, ok
}

func (p Patterns) activityID(digits string) (string, bool) {
	if len(digits) == 0 || len(digits) > 2 {
		return "", false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return "", false
	}
	return p.prefix + "." + strconv.Itoa(n), true
}

// FindStudentNumber returns the first claimed student number in text.
func (p Patterns) FindStudentNumber(text string) (int, bool) {
	m := p.Number.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(textutil.Digits(m[1]))
	if err != nil {
		return 0, false
	}
	return n, true
}
