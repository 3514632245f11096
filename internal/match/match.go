// Package match holds the pure text-normalization and similarity scoring
// used by the discovery strategies. Nothing in here touches a browser.
package match

import (
	"strings"
	"unicode"
)

var quoteRunes = map[rune]bool{
	'\'': true,
	'"':  true,
	'`':  true,
	'‘':  true,
	'’':  true,
	'“':  true,
	'”':  true,
}

// Normalize prepares free text for fuzzy comparison: lowercase, quotes
// stripped, punctuation collapsed to spaces, whitespace collapsed.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))

	lastSpace := true

	for _, r := range strings.ToLower(text) {
		switch {
		case quoteRunes[r]:
			// dropped entirely so "Let's" matches "lets"
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// NormalizeID prepares identifier-like values (id, class, data attributes)
// for comparison: lowercase with all separators removed, so "my-id_name"
// and "my id name" collapse to the same token.
func NormalizeID(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))

	for _, r := range strings.ToLower(text) {
		if unicode.IsSpace(r) || r == '-' || r == '_' || quoteRunes[r] {
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// Similarity returns the edit-similarity ratio of the free-text-normalized
// forms of a and b, in [0,1]. Empty input scores 0.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}

	return ratio(Normalize(a), Normalize(b))
}

// IDSimilarity is Similarity over identifier-normalized forms.
func IDSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}

	return ratio(NormalizeID(a), NormalizeID(b))
}

// ratio implements the Ratcliff/Obershelp matching-character ratio:
// 2*M/T where M is the total length of all recursively found longest
// common blocks and T the combined length of both strings.
func ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}

	matched := matchingRunes(ra, rb)

	return 2.0 * float64(matched) / float64(total)
}

type span struct {
	alo, ahi int
	blo, bhi int
}

func matchingRunes(a, b []rune) int {
	matched := 0
	queue := []span{{0, len(a), 0, len(b)}}

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, size := longestMatch(a, b, s.alo, s.ahi, s.blo, s.bhi)
		if size == 0 {
			continue
		}

		matched += size

		if s.alo < i && s.blo < j {
			queue = append(queue, span{s.alo, i, s.blo, j})
		}
		if i+size < s.ahi && j+size < s.bhi {
			queue = append(queue, span{i + size, s.ahi, j + size, s.bhi})
		}
	}

	return matched
}

// longestMatch finds the longest block of equal runes within
// a[alo:ahi] and b[blo:bhi], preferring the earliest occurrence.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (bestI, bestJ, bestSize int) {
	b2j := make(map[rune][]int, bhi-blo)
	for j := blo; j < bhi; j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	bestI, bestJ = alo, blo

	// lengths of matches ending at the previous row
	j2len := make(map[int]int)

	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for _, j := range b2j[a[i]] {
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestSize {
				bestI = i - k + 1
				bestJ = j - k + 1
				bestSize = k
			}
		}
		j2len = next
	}

	return bestI, bestJ, bestSize
}
