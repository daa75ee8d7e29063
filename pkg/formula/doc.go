// Package formula rewrites version, URL and sha256 fields of a package formula.
//
// The formula is never parsed. Fields are located with line scans and regular
// expressions and replaced in place, so everything else in the file stays
// byte-identical.
package formula
