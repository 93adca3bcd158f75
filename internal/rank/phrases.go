// internal/rank/phrases.go
package rank

import "strings"

// PhraseMatcher does plain case-insensitive substring matching against a
// fixed phrase list. There is no word-boundary or negation handling:
// "no visa required" still contains "visa".
type PhraseMatcher struct {
	phrases []string
}

func NewPhraseMatcher(phrases []string) PhraseMatcher {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return PhraseMatcher{phrases: uniq(out)}
}

// Match reports whether text contains at least one phrase.
func (m PhraseMatcher) Match(text string) bool {
	_, ok := m.First(text)
	return ok
}

// First returns the first configured phrase found in text.
func (m PhraseMatcher) First(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	text = strings.ToLower(text)
	for _, p := range m.phrases {
		if strings.Contains(text, p) {
			return p, true
		}
	}
	return "", false
}

func (m PhraseMatcher) Phrases() []string {
	return append([]string(nil), m.phrases...)
}

func uniq(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, t := range in {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
