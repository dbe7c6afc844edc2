package core

import (
	"reflect"
	"testing"
)

func TestLexiconWholePhraseMatching(t *testing.T) {
	lexicon := NewLexicon()

	testCases := []struct {
		name           string
		text           string
		wantMatched    []string
		wantProductive bool
	}{
		{
			name:           "productive keyword",
			text:           "preciso de suporte urgente",
			wantMatched:    []string{"urgente", "suporte"},
			wantProductive: true,
		},
		{
			name:           "multi word productive phrase",
			text:           "envie o contrato por favor",
			wantMatched:    []string{"por favor"},
			wantProductive: true,
		},
		{
			name:           "unproductive phrase only",
			text:           "feliz natal e boas festas",
			wantMatched:    []string{"feliz natal", "boas festas"},
			wantProductive: false,
		},
		{
			name:        "keyword inside a larger word does not match",
			text:        "ficou desobrigado de comparecer",
			wantMatched: nil,
		},
		{
			name:        "no match",
			text:        "nada relevante aqui",
			wantMatched: nil,
		},
		{
			name:        "empty text",
			text:        "",
			wantMatched: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			match := lexicon.Match(Normalize(tc.text))
			if match.Productive != tc.wantProductive {
				t.Errorf("Productive = %t, want %t", match.Productive, tc.wantProductive)
			}
			if len(match.Matched) == 0 && len(tc.wantMatched) == 0 {
				return
			}
			if !reflect.DeepEqual(match.Matched, tc.wantMatched) {
				t.Errorf("Matched = %v, want %v", match.Matched, tc.wantMatched)
			}
		})
	}
}

func TestLexiconBothSetsRecorded(t *testing.T) {
	lexicon := NewLexicon()

	// Productive and unproductive phrases both land in Matched, and the
	// productive flag wins.
	match := lexicon.Match(Normalize("obrigado pelo retorno sobre o projeto"))
	if !match.Productive {
		t.Fatal("expected productive context")
	}

	found := map[string]bool{}
	for _, kw := range match.Matched {
		found[kw] = true
	}
	for _, want := range []string{"retorno", "projeto", "obrigado"} {
		if !found[want] {
			t.Errorf("expected %q in matched keywords, got %v", want, match.Matched)
		}
	}
}

func TestLexiconPhraseCounts(t *testing.T) {
	lexicon := NewLexicon()
	if lexicon.PhraseCount() != 33 {
		t.Errorf("PhraseCount() = %d, want 33", lexicon.PhraseCount())
	}
	if lexicon.ProductivePhraseCount() != 23 {
		t.Errorf("ProductivePhraseCount() = %d, want 23", lexicon.ProductivePhraseCount())
	}
}
