// Package naming derives display titles from filenames and routes top-level
// directories into catalog categories.
//
// Titles strip the final extension and collapse runs of "_" and "-" into a
// single space. Routing is a case-insensitive substring match of the
// directory name against an ordered keyword table; the first matching row
// wins and unmatched names fall back to [Otros].
package naming
