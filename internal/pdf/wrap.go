package pdf

import "strings"

// WrapByWidth breaks text at whitespace into lines whose measured width is
// at most maxWidth. A word that is wider than maxWidth on its own is split
// between runes.
func WrapByWidth(text string, maxWidth float64, measure func(string) float64) []string {
	return WrapHanging(text, maxWidth, maxWidth, measure)
}

// WrapHanging is WrapByWidth with a separate bound for the first line, for
// values printed after a label on the same baseline.
func WrapHanging(text string, firstWidth, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	limit := func() float64 {
		if len(lines) == 0 {
			return firstWidth
		}
		return maxWidth
	}

	cur := ""
	for _, word := range strings.Fields(text) {
		cand := word
		if cur != "" {
			cand = cur + " " + word
		}
		if measure(cand) <= limit() {
			cur = cand
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
			cur = ""
		}
		if measure(word) <= limit() {
			cur = word
			continue
		}
		runes := []rune(word)
		for len(runes) > 0 {
			n := fitRunes(runes, limit(), measure)
			if n == len(runes) {
				cur = string(runes)
				break
			}
			lines = append(lines, string(runes[:n]))
			runes = runes[n:]
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// fitRunes returns the length of the longest prefix of runes that fits
// maxWidth. It is at least one so callers always advance.
func fitRunes(runes []rune, maxWidth float64, measure func(string) float64) int {
	n := 1
	for n < len(runes) && measure(string(runes[:n+1])) <= maxWidth {
		n++
	}
	return n
}
