package matching

import (
	"strings"

	"github.com/oksasatya/careerboost/internal/domain/skills"
)

// Similarity is the Sørensen–Dice coefficient over character bigrams of the
// accent-folded words, in [0,1]. Gender markers such as "(H/F)" are ignored.
func Similarity(a, b string) float64 {
	ba, bb := bigrams(a), bigrams(b)
	if len(ba) == 0 || len(bb) == 0 {
		return 0
	}
	na, nb := 0, 0
	for _, n := range ba {
		na += n
	}
	for _, n := range bb {
		nb += n
	}
	inter := 0
	for g, n := range ba {
		inter += min(n, bb[g])
	}
	return 2 * float64(inter) / float64(na+nb)
}

var titleNoise = strings.NewReplacer("(h/f)", " ", "h/f", " ", "(f/h)", " ", "f/h", " ", "(m/f)", " ")

func bigrams(s string) map[string]int {
	s = titleNoise.Replace(skills.Fold(s))
	out := map[string]int{}
	for _, w := range strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '+' || r == '#')
	}) {
		rs := []rune(w)
		if len(rs) == 1 {
			out[w]++
			continue
		}
		for i := 0; i+1 < len(rs); i++ {
			out[string(rs[i:i+2])]++
		}
	}
	return out
}
