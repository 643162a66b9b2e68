// Package roster builds the authoritative set of enrolled students from
// per-room tabular rows.
//
// Each room table must expose a student-number column and a name column;
// tables without them are skipped with a *columns.MissingColumnError. Names
// are turned into matching keys with textutil, and the first row carrying a
// given key wins: later duplicates (typo listings of the same person) are
// discarded so they can never double count. Rows with empty keys are dropped
// because an empty key would match every submission.
//
// Parsing a table is side-effect free, so callers may parse tables on separate
// workers and hand the results to Assemble in input order.
package roster
