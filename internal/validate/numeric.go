package validate

import (
	"regexp"
	"strings"
)

var (
	reDigits    = regexp.MustCompile(`^[0-9]+$`)
	reDotGroups = regexp.MustCompile(`^[0-9]{1,3}(\.[0-9]{3})+$`)
)

// NormalizeDigits canonicalises a digits-only field. A fractional part made
// only of zeros is dropped ("12.00" -> "12"); a sign, any other fraction or a
// thousands separator ("4.500", "1,000") is rejected. The second return is
// the rejection message, "" on success.
func NormalizeDigits(s string) (string, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", MsgDigits
	}
	if strings.ContainsRune(s, ',') || reDotGroups.MatchString(s) {
		return "", MsgThousands
	}
	whole, frac, hasDot := strings.Cut(s, ".")
	if hasDot {
		if !reDigits.MatchString(frac) || !reDigits.MatchString(whole) {
			return "", MsgDigits
		}
		if strings.Trim(frac, "0") != "" {
			return "", MsgDecimals
		}
		s = whole
	}
	if !reDigits.MatchString(s) {
		return "", MsgDigits
	}
	return s, ""
}
