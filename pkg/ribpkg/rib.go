// Package ribpkg provides RIB format validation.
//
// A RIB is the unique external account identifier, analogous to an IBAN:
// two country letters, a two digit check, a four character bank code and
// the account number. It is immutable once assigned.
package ribpkg

import "regexp"

var ribPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{4}[0-9]{7}([A-Z0-9]?){0,16}$`)

// IsValid returns true if the given string is a well formed RIB.
func IsValid(rib string) bool {
	return ribPattern.MatchString(rib)
}
