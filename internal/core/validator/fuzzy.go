package validator

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// fuzzyThreshold 相似度門檻
const fuzzyThreshold = 80

type scored struct {
	name  string
	score int
}

// ratio 正規化編輯距離相似度，0–100
func ratio(a, b string) int {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 100
	}
	d := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * (1 - float64(d)/float64(maxLen))))
}

// rank 依相似度由高到低排序，同分保留食材表順序
func rank(query string, names []string) []scored {
	out := make([]scored, len(names))
	for i, name := range names {
		out[i] = scored{name: name, score: ratio(query, name)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].score > out[j].score
	})
	return out
}

func namesOf(matches []scored) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}
