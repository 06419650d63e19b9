package evaluation

import (
	"regexp"
	"strings"
)

var (
	tokenPattern    = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}+#'_-]*`)
	sentencePattern = regexp.MustCompile(`[.!?\n]+`)
	clausePattern   = regexp.MustCompile(`[,;:]+`)
)

var stopwords = toSet([]string{
	"a", "an", "and", "are", "as", "at", "be", "but", "by", "can", "could", "did", "do", "does",
	"for", "from", "had", "has", "have", "how", "i", "if", "in", "into", "is", "it", "its", "me",
	"my", "of", "on", "or", "our", "so", "that", "the", "their", "them", "then", "there", "these",
	"they", "this", "to", "us", "was", "we", "were", "what", "when", "where", "which", "who", "why",
	"will", "with", "would", "you", "your", "about", "should", "some", "any", "all",
	"tell", "describe", "explain", "time", "walk", "through",
})

// analysis is the tokenized form of one answer.
type analysis struct {
	tokens    []string
	joined    string
	tokenSet  map[string]struct{}
	sentences []string
}

func analyze(text string) analysis {
	tokens := tokenize(text)

	var sentences []string
	for _, s := range sentencePattern.Split(text, -1) {
		if len(tokenize(s)) > 0 {
			sentences = append(sentences, strings.TrimSpace(s))
		}
	}

	return analysis{
		tokens:    tokens,
		joined:    " " + strings.Join(tokens, " ") + " ",
		tokenSet:  toSet(tokens),
		sentences: sentences,
	}
}

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// significant drops stopwords. When nothing is left the original tokens are returned.
func significant(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, stop := stopwords[t]; !stop {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return tokens
	}
	return out
}

// containsPhrase matches a whole-word phrase against the answer.
func (a analysis) containsPhrase(phrase string) bool {
	tokens := tokenize(phrase)
	if len(tokens) == 0 {
		return false
	}
	return strings.Contains(a.joined, " "+strings.Join(tokens, " ")+" ")
}

// ContainsPhrase reports whether phrase occurs in text as whole words, ignoring case.
func ContainsPhrase(text, phrase string) bool {
	tokens := tokenize(text)
	return analysis{joined: " " + strings.Join(tokens, " ") + " "}.containsPhrase(phrase)
}

// countPhrase counts whole-word occurrences of the phrase.
func (a analysis) countPhrase(phrase string) int {
	tokens := tokenize(phrase)
	if len(tokens) == 0 {
		return 0
	}
	return strings.Count(a.joined, " "+strings.Join(tokens, " ")+" ")
}

// mentions reports whether a concept appears as a phrase or through all of its significant tokens.
func (a analysis) mentions(concept string) bool {
	if a.containsPhrase(concept) {
		return true
	}
	sig := significant(tokenize(concept))
	if len(sig) == 0 {
		return false
	}
	for _, t := range sig {
		if _, ok := a.tokenSet[t]; !ok {
			return false
		}
	}
	return true
}

// covers reports whether at least half of the point's significant tokens appear.
func (a analysis) covers(point string) bool {
	sig := significant(tokenize(point))
	if len(sig) == 0 {
		return false
	}
	hits := 0
	for _, t := range sig {
		if _, ok := a.tokenSet[t]; ok {
			hits++
		}
	}
	return hits*2 >= len(sig)
}

func (a analysis) clauses() int {
	count := 0
	for _, s := range a.sentences {
		for _, c := range clausePattern.Split(s, -1) {
			if len(tokenize(c)) > 0 {
				count++
			}
		}
	}
	return count
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
