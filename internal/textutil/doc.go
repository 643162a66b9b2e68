// Package textutil provides the text canonicalization used for roster matching
// and filename sanitization.
//
// The primary use cases are:
//   - Turning display names and free-text submission rows into matching keys
//   - Sanitizing room labels for safe filesystem use during export
//
// A Normalizer removes whitespace, folds case, strips honorific and role
// prefixes, and drops a small set of punctuation runes. The same normalizer
// must build both roster keys and submission content so a roster key can be
// found as a substring of the normalized content.
package textutil
