package validation

import (
	"unicode"

	"github.com/forPelevin/gomoji"
)

const variationSelector16 = '\ufe0f'

// ContainsEmoji reports whether s has at least one emoji. Text-style code
// points such as © or ‼ count too, matched through their emoji presentation.
func ContainsEmoji(s string) bool {
	if gomoji.ContainsEmoji(s) {
		return true
	}
	for _, r := range s {
		if r > unicode.MaxASCII && gomoji.ContainsEmoji(string([]rune{r, variationSelector16})) {
			return true
		}
	}
	return false
}
