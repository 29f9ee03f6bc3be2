package semver

import (
	"strings"

	xsemver "golang.org/x/mod/semver"
)

// Normalize strips leading zeroes from every dot-separated segment of a
// version so that loosely formatted versions like "01.02.03" become "1.2.3".
// A segment consisting only of zeroes collapses to "0". Anything following
// the leading digits of a segment (e.g. "-beta") is kept as-is.
func Normalize(v string) string {
	parts := strings.Split(v, ".")
	for i, p := range parts {
		parts[i] = stripLeadingZeroes(p)
	}
	return strings.Join(parts, ".")
}

// stripLeadingZeroes keeps at least one digit of the leading numeric run:
// "007" -> "7", "000" -> "0", "00-beta" -> "0-beta", "0-beta" unchanged.
func stripLeadingZeroes(segment string) string {
	zeroes := 0
	for zeroes < len(segment) && segment[zeroes] == '0' {
		zeroes++
	}
	digits := zeroes
	for digits < len(segment) && segment[digits] >= '0' && segment[digits] <= '9' {
		digits++
	}

	switch {
	case zeroes == 0 || digits < 2:
		return segment
	case digits == zeroes:
		return segment[zeroes-1:]
	default:
		return segment[zeroes:]
	}
}

// IsValid reports whether v is a full semantic version
// (MAJOR.MINOR.PATCH with optional pre-release and build metadata).
// A leading "v" is not accepted.
func IsValid(v string) bool {
	if v == "" || v[0] == 'v' {
		return false
	}
	if !xsemver.IsValid("v" + v) {
		return false
	}

	core := v
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	return strings.Count(core, ".") == 2
}

// Compare compares two semantic versions.
// Returns -1 if a < b, 0 if a == b, +1 if a > b.
// Build metadata is ignored and pre-release versions sort before the
// corresponding release. Invalid versions sort before valid ones.
func Compare(a, b string) int {
	return xsemver.Compare(prefixed(a), prefixed(b))
}

func prefixed(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
