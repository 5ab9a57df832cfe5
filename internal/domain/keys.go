package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Clean trims, collapses inner whitespace and composes to NFC.
func Clean(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// NameKey is the comparison key for case-insensitive unique names:
// "  Leche   ENTERA " and "leche entera" share a key.
func NameKey(s string) string {
	return folder.String(Clean(s))
}

func EmailKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
