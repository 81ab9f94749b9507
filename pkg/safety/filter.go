package safety

import (
	"bufio"
	"os"
	"strings"
)

// Filter screens inbound user content against a banned-term list. The list is
// loaded once at startup; an empty or missing file yields a filter that
// passes everything.
type Filter struct {
	terms []string
}

func NewFilter(terms []string) *Filter {
	cleaned := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		cleaned = append(cleaned, t)
	}
	return &Filter{terms: cleaned}
}

// NewFilterFromFile reads one term per line. Lines starting with # are
// comments.
func NewFilterFromFile(path string) (*Filter, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewFilter(nil), nil
		}
		return nil, err
	}
	defer f.Close()

	var terms []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		terms = append(terms, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewFilter(terms), nil
}

// Match returns the first banned term found in the text, or "" when clean.
// Matching is case-insensitive substring search, which also covers CJK terms
// since those have no case.
func (f *Filter) Match(text string) string {
	if len(f.terms) == 0 {
		return ""
	}
	lowered := strings.ToLower(text)
	for _, term := range f.terms {
		if strings.Contains(lowered, term) {
			return term
		}
	}
	return ""
}

func (f *Filter) TermCount() int {
	return len(f.terms)
}
