package domain

import (
	"fmt"
	"strings"
)

// FilingStatus selects the bracket table and standard deduction for a calculation
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarriedJointly  FilingStatus = "married_jointly"
	FilingHeadOfHousehold FilingStatus = "head_of_household"
)

// FilingStatuses lists the supported statuses in display order
var FilingStatuses = []FilingStatus{FilingSingle, FilingMarriedJointly, FilingHeadOfHousehold}

// IsValid reports whether fs is one of the supported statuses
func (fs FilingStatus) IsValid() bool {
	switch fs {
	case FilingSingle, FilingMarriedJointly, FilingHeadOfHousehold:
		return true
	}
	return false
}

// Label returns a human readable form of the status
func (fs FilingStatus) Label() string {
	switch fs {
	case FilingSingle:
		return "Single"
	case FilingMarriedJointly:
		return "Married Filing Jointly"
	case FilingHeadOfHousehold:
		return "Head of Household"
	}
	return string(fs)
}

// ParseFilingStatus accepts the canonical names plus the common short forms
// (mfj, married, hoh). Anything else is rejected; there is no fallback status.
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "s":
		return FilingSingle, nil
	case "married_jointly", "married_filing_jointly", "married", "mfj":
		return FilingMarriedJointly, nil
	case "head_of_household", "hoh":
		return FilingHeadOfHousehold, nil
	}
	return "", NewInputError("filing_status", fmt.Sprintf("%q is not a recognized filing status", s))
}
