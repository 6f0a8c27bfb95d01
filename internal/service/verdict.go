package service

import (
	"strings"

	"tetrades/internal/dto"
)

// verdictMarker is the sentinel the generator is instructed to close its
// report with. The generated text is otherwise free form, so this scan is the
// only structural contract between the model and this service.
const verdictMarker = "[VERDICT:"

// ExtractVerdict scans generated text for the verdict sentinel and returns
// the token between the first marker occurrence and the next ']', trimmed of
// whitespace. A missing marker, or a marker with no closing bracket, yields
// HOLD. The tie-break for multiple occurrences is always the first one.
//
// Tokens outside the four-value enumeration are returned verbatim; callers
// decide whether to warn. See IsKnownVerdict.
func ExtractVerdict(text string) string {
	start := strings.Index(text, verdictMarker)
	if start < 0 {
		return dto.VerdictHold
	}

	rest := text[start+len(verdictMarker):]
	end := strings.Index(rest, "]")
	if end < 0 {
		return dto.VerdictHold
	}

	verdict := strings.TrimSpace(rest[:end])
	if verdict == "" {
		return dto.VerdictHold
	}
	return verdict
}

// IsKnownVerdict reports whether the token is one of the four values the
// generator is instructed to use.
func IsKnownVerdict(verdict string) bool {
	for _, v := range dto.VerdictValues() {
		if verdict == v {
			return true
		}
	}
	return false
}
