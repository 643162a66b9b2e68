// Package columns maps spreadsheet headers onto the semantic roles the
// reconciliation core needs.
//
// Headers are matched by case-insensitive keyword substring. Resolution is a
// pure function of the header list so it can be tested without any file
// parsing.
package columns

import (
	"fmt"
	"strings"
)

// Role is a semantic column role.
type Role string

const (
	RoleStudentNumber Role = "student_number"
	RoleName          Role = "name"
	RoleRoom          Role = "room"
)

// resolutionOrder fixes which role claims a header first when keywords overlap.
var resolutionOrder = []Role{RoleStudentNumber, RoleName, RoleRoom}

// Keywords lists header keywords per role.
type Keywords map[Role][]string

// Resolution maps each recognized role to the header that carries it. Roles
// without a matching header are absent.
type Resolution map[Role]string

// Header returns the header resolved for role.
func (r Resolution) Header(role Role) (string, bool) {
	h, ok := r[role]
	return h, ok
}

// Resolve assigns headers to roles. Each header serves at most one role and
// the first matching header (in header order) wins.
func Resolve(headers []string, keywords Keywords) Resolution {
	res := make(Resolution, len(keywords))
	taken := make(map[string]bool, len(headers))
	for _, role := range resolutionOrder {
		words := keywords[role]
		if len(words) == 0 {
			continue
		}
		for _, header := range headers {
			if taken[header] {
				continue
			}
			if matches(header, words) {
				res[role] = header
				taken[header] = true
				break
			}
		}
	}
	return res
}

// Require resolves headers and fails with a *MissingColumnError when any of
// the required roles is absent.
func Require(table string, headers []string, keywords Keywords, required ...Role) (Resolution, error) {
	res := Resolve(headers, keywords)
	var missing []Role
	for _, role := range required {
		if _, ok := res[role]; !ok {
			missing = append(missing, role)
		}
	}
	if len(missing) > 0 {
		return res, &MissingColumnError{Table: table, Roles: missing, Headers: headers}
	}
	return res, nil
}

func matches(header string, words []string) bool {
	lowered := strings.ToLower(strings.TrimSpace(header))
	if lowered == "" {
		return false
	}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" && strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}

// MissingColumnError reports required roles that no header provides.
type MissingColumnError struct {
	Table   string
	Roles   []Role
	Headers []string
}

func (e *MissingColumnError) Error() string {
	names := make([]string, len(e.Roles))
	for i, r := range e.Roles {
		names[i] = string(r)
	}
	return fmt.Sprintf("%s: missing column(s) %s (headers: %s)",
		e.Table, strings.Join(names, ", "), strings.Join(e.Headers, ", "))
}

// ErrorKind classifies the failure for run reports.
func (e *MissingColumnError) ErrorKind() string { return "missing_column" }
