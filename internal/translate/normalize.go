package translate

import (
	"regexp"
	"strings"
)

// leadInPatterns match filler openings the model tends to emit before the
// actual content. Evaluated in order against the lower-cased sentence.
var leadInPatterns = []*regexp.Regexp{
	regexp.MustCompile(`it'?s time`),
	regexp.MustCompile(`let'?s go`),
	regexp.MustCompile(`i need to`),
	regexp.MustCompile(`i would like`),
	regexp.MustCompile(`i am going`),
	regexp.MustCompile(`i will`),
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize reduces raw generated text to a single sentence ending in '.'.
//
// The text is split on '.', and the first non-empty segment is used unless it
// starts with a known lead-in, in which case the second segment is used. The
// fallback happens at most once. Text with no non-empty segment is returned
// unchanged.
func Normalize(raw string) string {
	segments := splitSentences(raw)
	if len(segments) == 0 {
		return raw
	}

	main := segments[0]
	if len(segments) > 1 && IsLeadIn(main) {
		main = segments[1]
	}

	main = strings.TrimSpace(whitespaceRe.ReplaceAllString(main, " "))
	return main + "."
}

// IsLeadIn reports whether sentence contains one of the lead-in phrases.
func IsLeadIn(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, re := range leadInPatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

func splitSentences(text string) []string {
	parts := strings.Split(text, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
