// Package sentiment rates the emotional valence of chat text with a static
// word lexicon. Positive scores mean favorable tone, negative unfavorable,
// zero neutral or unknown.
package sentiment

import (
	"strings"
	"unicode"
)

// lexicon maps lowercase words to signed valence weights. Weights follow the
// usual -5..5 convention of lexicon-based analyzers.
var lexicon = map[string]int{
	// positive
	"awesome":    4,
	"amazing":    4,
	"superb":     5,
	"fantastic":  4,
	"wonderful":  4,
	"excellent":  3,
	"brilliant":  4,
	"great":      3,
	"love":       3,
	"loved":      3,
	"loves":      3,
	"adore":      3,
	"best":       3,
	"beautiful":  3,
	"delighted":  3,
	"excited":    3,
	"glad":       3,
	"happy":      3,
	"joy":        3,
	"perfect":    3,
	"thrilled":   5,
	"win":        4,
	"wins":       4,
	"wow":        4,
	"cool":       1,
	"fun":        4,
	"good":       3,
	"like":       2,
	"likes":      2,
	"liked":      2,
	"nice":       3,
	"thanks":     2,
	"thank":      2,
	"welcome":    2,
	"agree":      1,
	"fine":       2,
	"helpful":    2,
	"interested": 2,
	"ok":         2,
	"okay":       2,
	"yes":        1,

	// negative
	"awful":        -3,
	"terrible":     -3,
	"horrible":     -3,
	"worst":        -3,
	"hate":         -3,
	"hated":        -3,
	"hates":        -3,
	"bad":          -3,
	"angry":        -3,
	"annoyed":      -2,
	"annoying":     -2,
	"broken":       -1,
	"bug":          -2,
	"bugs":         -2,
	"cry":          -1,
	"crying":       -2,
	"depressed":    -2,
	"disappointed": -2,
	"disgusting":   -3,
	"dislike":      -2,
	"fail":         -2,
	"failed":       -2,
	"fails":        -2,
	"fear":         -2,
	"furious":      -3,
	"hurt":         -2,
	"lost":         -3,
	"mad":          -3,
	"no":           -1,
	"pain":         -2,
	"problem":      -2,
	"problems":     -2,
	"sad":          -2,
	"sorry":        -1,
	"stupid":       -2,
	"ugly":         -3,
	"unhappy":      -2,
	"upset":        -2,
	"wrong":        -2,
}

// Score sums the lexicon weights of the words in text. Unknown words and
// unparsable input score 0; scoring must never block message delivery, so
// any panic from a bad lexicon edit is absorbed into a neutral score.
func Score(text string) (score int) {
	defer func() {
		if recover() != nil {
			score = 0
		}
	}()

	for _, word := range tokenize(text) {
		score += lexicon[word]
	}
	return score
}

// tokenize lowercases text and splits it on anything that is not a letter,
// digit, or apostrophe.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
}
