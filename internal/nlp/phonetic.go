// internal/nlp/phonetic.go
package nlp

import "strings"

var phoneticFolder = strings.NewReplacer(
	"à", "a", "â", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"î", "i", "ï", "i",
	"ô", "o", "ö", "o",
	"ù", "u", "û", "u", "ü", "u",
	"ç", "s",
	"ph", "f",
	"qu", "k",
)

// foldPhonetic reduces a word to a crude phonetic skeleton: accents folded to
// their base vowel, common French digraphs collapsed, everything non-alphanumeric
// stripped.
func foldPhonetic(s string) string {
	s = phoneticFolder.Replace(strings.ToLower(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Similarity returns a cheap, order-insensitive similarity in [0,1] between two
// words. Identical phonetic skeletons score 1; otherwise a Dice-like coefficient
// over single characters, each character of the first word usable at most once.
// This is a fuzzy-match primitive, not an edit distance.
func Similarity(a, b string) float64 {
	na := foldPhonetic(a)
	nb := foldPhonetic(b)

	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	pool := make(map[rune]int, len(na))
	for _, r := range na {
		pool[r]++
	}

	common := 0
	for _, r := range nb {
		if pool[r] > 0 {
			pool[r]--
			common++
		}
	}

	return 2 * float64(common) / float64(len(na)+len(nb))
}
