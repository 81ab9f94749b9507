package retrieval

import (
	"sort"
	"strings"
	"unicode"
)

// Stop words skipped during keyword extraction (Chinese + English).
var stopWords = map[string]bool{
	"的": true, "了": true, "是": true, "我": true, "你": true,
	"在": true, "吗": true, "呢": true, "啊": true, "请问": true,
	"一个": true, "什么": true, "怎么": true, "这个": true, "那个": true,
	"the": true, "a": true, "an": true, "is": true, "are": true,
	"what": true, "how": true, "my": true, "your": true, "i": true,
	"me": true, "of": true, "to": true, "in": true, "and": true,
}

// Tokenize breaks text into comparable terms without an external segmenter:
// latin words are lowercased whole, CJK runs are cut into overlapping bigrams.
// Bigrams approximate dictionary segmentation well enough for overlap scoring.
func Tokenize(text string) []string {
	var tokens []string
	var latin []rune
	var cjk []rune

	flushLatin := func() {
		if len(latin) > 0 {
			word := strings.ToLower(string(latin))
			if !stopWords[word] && len(word) > 1 {
				tokens = append(tokens, word)
			}
			latin = latin[:0]
		}
	}
	flushCJK := func() {
		if len(cjk) == 1 {
			if w := string(cjk); !stopWords[w] {
				tokens = append(tokens, w)
			}
		}
		for i := 0; i+1 < len(cjk); i++ {
			bigram := string(cjk[i : i+2])
			if !stopWords[bigram] {
				tokens = append(tokens, bigram)
			}
		}
		cjk = cjk[:0]
	}

	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			flushLatin()
			cjk = append(cjk, r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			flushCJK()
			latin = append(latin, r)
		default:
			flushLatin()
			flushCJK()
		}
	}
	flushLatin()
	flushCJK()

	return tokens
}

// Keywords returns the most frequent distinct tokens of the text, up to max.
func Keywords(text string, max int) []string {
	counts := make(map[string]int)
	var order []string
	for _, tok := range Tokenize(text) {
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	// Frequency descending, first appearance breaks ties.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if max > 0 && len(order) > max {
		order = order[:max]
	}
	return order
}

// OverlapScore counts how many query tokens appear in the document.
func OverlapScore(queryTokens []string, document string) int {
	if len(queryTokens) == 0 {
		return 0
	}
	lowered := strings.ToLower(document)
	score := 0
	for _, tok := range queryTokens {
		if strings.Contains(lowered, tok) {
			score++
		}
	}
	return score
}
