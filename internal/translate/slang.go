package translate

import "strings"

// slang maps colloquial Malay tokens to an English gloss the fine-tuned model
// handles better. An empty gloss drops the token.
var slang = map[string]string{
	"dekat": "at",
	"gi":    "go",
	"pasal": "about",
	"macam": "like",
	"kan":   "right",
	"tak":   "not",
	"lah":   "",
}

// ExpandSlang replaces whole slang tokens in text and rejoins the result
// with single spaces. Matching is case-sensitive.
func ExpandSlang(text string) string {
	words := strings.Fields(text)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if gloss, ok := slang[w]; ok {
			if gloss == "" {
				continue
			}
			w = gloss
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}
