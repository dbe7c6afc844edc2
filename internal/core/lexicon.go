package core

import (
	"sort"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// The two keyword lexicons are fixed, process-wide configuration.
// Phrases are stored in normalized form (lowercase, single spaces).
var (
	productivePhrases = []string{
		"solicita", "urgente", "problema", "erro", "precisa", "status",
		"anexo", "documento", "por favor", "retorno", "ajuda", "suporte",
		"informação", "dados", "relatório", "projeto", "cliente",
		"reunião", "deadline", "tarefa", "resultado", "feedback",
		"crítico",
	}
	unproductivePhrases = []string{
		"feliz natal", "obrigado", "parabéns", "boas festas",
		"ótimo trabalho", "valeu", "abraço", "agradecido",
		"cumprimento", "pessoalmente",
	}
)

// LexiconMatch reports which phrases were found in a normalized text.
// Productive reflects only the productive lexicon; unproductive hits
// are recorded in Matched but are scoring-equivalent to no context.
type LexiconMatch struct {
	Matched    []string
	Productive bool
}

// Lexicon matches whole phrases from both keyword sets in a single
// pass. Patterns and the scanned text are padded with spaces so that a
// substring hit is always a whole-word hit ("obrigado" cannot match
// inside another word).
type Lexicon struct {
	matcher    *ahocorasick.Matcher
	phrases    []string
	productive []bool
}

// NewLexicon precompiles the Aho-Corasick automaton over both phrase
// sets. Build once at startup; Match is read-only and safe for
// concurrent use.
func NewLexicon() *Lexicon {
	phrases := make([]string, 0, len(productivePhrases)+len(unproductivePhrases))
	productive := make([]bool, 0, cap(phrases))
	patterns := make([]string, 0, cap(phrases))

	for _, p := range productivePhrases {
		p = normalizePhrase(p)
		phrases = append(phrases, p)
		productive = append(productive, true)
		patterns = append(patterns, " "+p+" ")
	}
	for _, p := range unproductivePhrases {
		p = normalizePhrase(p)
		phrases = append(phrases, p)
		productive = append(productive, false)
		patterns = append(patterns, " "+p+" ")
	}

	return &Lexicon{
		matcher:    ahocorasick.NewStringMatcher(patterns),
		phrases:    phrases,
		productive: productive,
	}
}

// Match scans the normalized text for whole-phrase occurrences from
// either lexicon. Matched phrases are returned in lexicon order.
func (l *Lexicon) Match(text NormalizedText) LexiconMatch {
	if text.Clean == "" {
		return LexiconMatch{}
	}

	padded := " " + text.Clean + " "
	hits := l.matcher.Match([]byte(padded))
	if len(hits) == 0 {
		return LexiconMatch{}
	}
	sort.Ints(hits)

	match := LexiconMatch{Matched: make([]string, 0, len(hits))}
	for _, idx := range hits {
		if idx < 0 || idx >= len(l.phrases) {
			continue
		}
		match.Matched = append(match.Matched, l.phrases[idx])
		if l.productive[idx] {
			match.Productive = true
		}
	}
	return match
}

// ProductivePhraseCount is used by gateways for diagnostics output.
func (l *Lexicon) ProductivePhraseCount() int {
	n := 0
	for _, p := range l.productive {
		if p {
			n++
		}
	}
	return n
}

// PhraseCount returns the total number of phrases across both sets.
func (l *Lexicon) PhraseCount() int {
	return len(l.phrases)
}

// normalizePhrase keeps lexicon entries in the same canonical form as
// the scanned text.
func normalizePhrase(p string) string {
	return strings.Join(strings.Fields(strings.ToLower(p)), " ")
}
