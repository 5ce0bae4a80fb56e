package export

import (
	"strings"
)

const MaxNameLength = 100

func validNameChar(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' ||
		r == '.' || r == '_' || r == '-'
}

// ValidateName accepts a single path element made of letters, digits, dots,
// underscores and dashes. Hidden names and "."/".." are rejected.
func ValidateName(name string) error {
	switch {
	case name == "":
		return &InvalidNameError{Name: name, Reason: "name is empty"}
	case len(name) > MaxNameLength:
		return &InvalidNameError{Name: name, Reason: "name is longer than 100 bytes"}
	case name == "." || name == "..":
		return &InvalidNameError{Name: name, Reason: "name is a relative path element"}
	case strings.HasPrefix(name, "."):
		return &InvalidNameError{Name: name, Reason: "name starts with a dot"}
	}
	for _, r := range name {
		if !validNameChar(r) {
			return &InvalidNameError{Name: name, Reason: "only letters, digits, '.', '_' and '-' are allowed"}
		}
	}
	return nil
}

// Slug maps an artifact label onto a file name stem.
func Slug(label string) string {
	var b strings.Builder
	for _, r := range label {
		if r == '.' || !validNameChar(r) {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
