// Package setting describes the scoped settings field selection reads.
package setting

import "github.com/kailas-cloud/searchscope/internal/domain/visibility"

// Setting scopes.
const (
	ScopeLanguages  = "i18n_languages"
	ScopeVisibility = "element_visibility"
	ScopeTemplate   = "default_template"
)

// Snapshot is the settings state a single field request works from.
type Snapshot struct {
	Cultures []string
	Flags    []visibility.Flag
	Template string
}

// Bool reads a stored setting value the way the settings were written to be
// read: only "" and "0" are false. "false", " 0" and "0.0" are true.
func Bool(v string) bool {
	return v != "" && v != "0"
}

// FormatBool renders a boolean the way Bool reads it back.
func FormatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
