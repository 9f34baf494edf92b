// Package codes normalizes operator-entered identifiers and mints document numbers.
package codes

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	PrefixReceipt  = "RC"
	PrefixPickslip = "PS"
	PrefixQuote    = "QT"
)

// Normalize trims s and upper-cases it. Part numbers and bin segments are stored this way.
func Normalize(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}

// documentSuffixLen hex digits of a v4 uuid carry 62 random bits.
const documentSuffixLen = 16

// NewDocumentNumber returns prefix-XXXXXXXXXXXXXXXX built from a random uuid.
func NewDocumentNumber(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")

	return prefix + "-" + Normalize(id[len(id)-documentSuffixLen:])
}
