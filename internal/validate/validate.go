// Package validate holds the pure field rules shared by the resource
// handlers. Every function is a synchronous predicate over its input; none of
// them touch the store.
package validate

import (
	"net/netip"
	"regexp"
	"strings"
)

// 50 state codes, the District of Columbia, and five US territories.
var stateCodes = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {}, "DE": {}, "FL": {}, "GA": {},
	"HI": {}, "ID": {}, "IL": {}, "IN": {}, "IA": {}, "KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {},
	"MA": {}, "MI": {}, "MN": {}, "MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {}, "NH": {}, "NJ": {},
	"NM": {}, "NY": {}, "NC": {}, "ND": {}, "OH": {}, "OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {},
	"SD": {}, "TN": {}, "TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {}, "WI": {}, "WY": {},
	"DC": {}, "AS": {}, "GU": {}, "MP": {}, "PR": {}, "VI": {},
}

var (
	versionPattern = regexp.MustCompile(`^v\d+\.\d+\.\d+$`)
	zipPattern     = regexp.MustCompile(`^[0-9]{5,9}$`)
)

// OneOf reports whether value is exactly one of the allowed strings.
// Comparison is case-sensitive; an empty value never matches.
func OneOf(allowed []string, value string) bool {
	if value == "" {
		return false
	}
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// StateCode reports whether code is a US state, DC or territory code.
func StateCode(code string) bool {
	_, ok := stateCodes[code]
	return ok
}

// WhitespaceOnly reports whether s is empty after trimming.
func WhitespaceOnly(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Version reports whether s matches v<MAJOR>.<MINOR>.<PATCH> exactly.
func Version(s string) bool {
	return versionPattern.MatchString(s)
}

// IPAddress reports whether s parses as an IPv4 or IPv6 literal.
func IPAddress(s string) bool {
	_, err := netip.ParseAddr(s)
	return err == nil
}

// ZipCode reports whether s is five to nine digit characters.
func ZipCode(s string) bool {
	return zipPattern.MatchString(s)
}
