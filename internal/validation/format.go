// Package validation provides the date and timestamp format predicates
// consumed by the mission store.
package validation

import (
	"time"

	"missioncontrol/pkg/domain"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04"
)

var (
	_ domain.FormatValidator = Pattern{}
	_ domain.FormatValidator = Calendar{}
)

// Pattern checks layout only: digits and separators in the fixed positions
// of YYYY-MM-DD and YYYY-MM-DD HH:MM. Values such as 2026-13-40 pass.
type Pattern struct{}

// ValidDate implements domain.FormatValidator.
func (Pattern) ValidDate(s string) bool {
	return matchLayout(s, "dddd-dd-dd")
}

// ValidTimestamp implements domain.FormatValidator.
func (Pattern) ValidTimestamp(s string) bool {
	return matchLayout(s, "dddd-dd-dd dd:dd")
}

// Calendar additionally requires a real calendar date and a 24h clock time.
type Calendar struct{}

// ValidDate implements domain.FormatValidator.
func (Calendar) ValidDate(s string) bool {
	if !(Pattern{}).ValidDate(s) {
		return false
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// ValidTimestamp implements domain.FormatValidator.
func (Calendar) ValidTimestamp(s string) bool {
	if !(Pattern{}).ValidTimestamp(s) {
		return false
	}
	_, err := time.Parse(timestampLayout, s)
	return err == nil
}

// matchLayout compares s against a template where 'd' means an ASCII digit
// and every other byte must match literally.
func matchLayout(s, template string) bool {
	if len(s) != len(template) {
		return false
	}
	for i := 0; i < len(template); i++ {
		c := s[i]
		if template[i] == 'd' {
			if c < '0' || c > '9' {
				return false
			}
			continue
		}
		if c != template[i] {
			return false
		}
	}
	return true
}

// New returns the Calendar validator when strict is set, Pattern otherwise.
func New(strict bool) domain.FormatValidator {
	if strict {
		return Calendar{}
	}
	return Pattern{}
}
