// Package submission extracts activity claims from free-text submission rows.
//
// Every row of an activity export is flattened into one content string. The
// raw text is scanned for an activity reference ("1.N") and an optional
// student-number marker; the room-hint column, when a table has one, supplies
// a digits-only room code. Rows without an activity reference are not
// submissions and are dropped without error.
//
// The regular expressions live in Patterns so they can be tested and swapped
// independently of reconciliation.
package submission
