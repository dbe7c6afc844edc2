package core

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		wantClean string
		wantWords []string
	}{
		{
			name:      "lowercases and collapses whitespace",
			raw:       "  Preciso   de\tSUPORTE\nurgente  ",
			wantClean: "preciso de suporte urgente",
			wantWords: []string{"preciso", "de", "suporte", "urgente"},
		},
		{
			name:      "strips boundary punctuation",
			raw:       "Urgente! Temos um problema, crítico.",
			wantClean: "urgente temos um problema crítico",
			wantWords: []string{"urgente", "temos", "um", "problema", "crítico"},
		},
		{
			name:      "keeps interior punctuation",
			raw:       "contato@empresa.com respondeu",
			wantClean: "contato@empresa.com respondeu",
			wantWords: []string{"contato@empresa.com", "respondeu"},
		},
		{
			name:      "empty input",
			raw:       "",
			wantClean: "",
			wantWords: nil,
		},
		{
			name:      "whitespace only",
			raw:       "   \n\t  ",
			wantClean: "",
			wantWords: nil,
		},
		{
			name:      "punctuation only token disappears",
			raw:       "ok !!! pronto",
			wantClean: "ok pronto",
			wantWords: []string{"ok", "pronto"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw)
			if got.Clean != tc.wantClean {
				t.Errorf("Clean = %q, want %q", got.Clean, tc.wantClean)
			}
			if len(got.Words) == 0 && len(tc.wantWords) == 0 {
				return
			}
			if !reflect.DeepEqual(got.Words, tc.wantWords) {
				t.Errorf("Words = %v, want %v", got.Words, tc.wantWords)
			}
		})
	}
}

func TestNormalizeWordCountFromWords(t *testing.T) {
	// The count must come from the tokenized form, not the raw string.
	got := Normalize("uma  frase   com    espaços")
	if got.WordCount() != 4 {
		t.Errorf("WordCount() = %d, want 4", got.WordCount())
	}
}
