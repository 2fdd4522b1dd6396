package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"opdash/internal/config"
)

// DateLayout is the calendar date format used for start and due dates.
const DateLayout = "2006-01-02"

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidNameLength checks a task name against the configured maximum,
// counting runes so accented names are measured as displayed.
func (v *Validator) IsValidNameLength(name string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(name)) <= v.MaxNameLength()
}

// IsNonNegative checks a production count
func (v *Validator) IsNonNegative(n int) bool {
	return n >= 0
}

// IsValidDate checks that s is a YYYY-MM-DD calendar date
func (v *Validator) IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// TrimString trims whitespace and returns the cleaned string
func (v *Validator) TrimString(s string) string {
	return strings.TrimSpace(s)
}

// MaxNameLength returns configured maximum task name length or default
func (v *Validator) MaxNameLength() int {
	if v.config != nil && v.config.Validation.TaskNameMaxLength > 0 {
		return v.config.Validation.TaskNameMaxLength
	}
	return 255
}
