package astutil

import "github.com/alecthomas/repr"

// Dump renders v as a readable Go-syntax-ish value dump, for tests and
// interactive debugging.
//
// Grounded on sqltest/querydump.go's repr.String use for the same
// purpose (readable dumps of loosely-typed row values).
func Dump(v any) string {
	return repr.String(v)
}
