// Package validation decides which directory records are eligible for
// mirroring. The filter is pure: it produces deterministic output for a
// given input sequence and touches no persisted state.
//
// Eligibility is evaluated client-side rather than pushed into the
// provider's query filter; this keeps the fetch portable across provider
// filter-syntax variations.
package validation

import (
	"strings"

	"github.com/4Lienau/directory-sync/internal/directory"
)

// departmentDenylist is the canonical set of placeholder values that make a
// department attribute invalid for mirroring. Matching is case-insensitive
// after trimming whitespace.
var departmentDenylist = map[string]struct{}{
	"n/a":         {},
	"na":          {},
	"n.a.":        {},
	"none":        {},
	"null":        {},
	"nil":         {},
	"tbd":         {},
	"tba":         {},
	"unknown":     {},
	"test":        {},
	"testing":     {},
	"temp":        {},
	"placeholder": {},
	"x":           {},
	"xx":          {},
	"xxx":         {},
	"-":           {},
	"--":          {},
	"---":         {},
	".":           {},
	"..":          {},
	"...":         {},
	"?":           {},
	"??":          {},
	"???":         {},
}

// IsValidDepartment reports whether a department value is well-formed for
// mirroring: non-empty after trimming and not a denylisted placeholder.
func IsValidDepartment(department string) bool {
	trimmed := strings.TrimSpace(department)
	if trimmed == "" {
		return false
	}

	_, denied := departmentDenylist[strings.ToLower(trimmed)]
	return !denied
}

// Eligible reports whether a directory record may be written to the mirror.
func Eligible(r directory.Record) bool {
	return r.AccountEnabled && IsValidDepartment(r.Department)
}

// Partition splits records into eligible and ineligible sets, preserving
// input order within each set.
func Partition(records []directory.Record) (eligible, ineligible []directory.Record) {
	for _, r := range records {
		if Eligible(r) {
			eligible = append(eligible, r)
		} else {
			ineligible = append(ineligible, r)
		}
	}
	return eligible, ineligible
}
