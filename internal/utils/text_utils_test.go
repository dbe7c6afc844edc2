package utils

import (
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"
)

func TestExcerpt(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	if got := tp.Excerpt("curto", 300); got != "curto" {
		t.Errorf("Excerpt short text = %q, want unchanged", got)
	}
	if got := tp.Excerpt("abcdef", 3); got != "abc" {
		t.Errorf("Excerpt = %q, want %q", got, "abc")
	}
	if got := tp.Excerpt("qualquer", 0); got != "qualquer" {
		t.Errorf("Excerpt with maxRunes 0 = %q, want unchanged", got)
	}

	// Truncation counts runes, not bytes.
	got := tp.Excerpt("ação de cobrança", 4)
	if got != "ação" {
		t.Errorf("Excerpt = %q, want %q", got, "ação")
	}
	if !utf8.ValidString(got) {
		t.Errorf("Excerpt produced invalid UTF-8: %q", got)
	}
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	valid := "relatório em anexo"
	if got := tp.SanitizeUTF8(valid); got != valid {
		t.Errorf("SanitizeUTF8 changed valid text: %q", got)
	}

	invalid := "ok\xffentão"
	got := tp.SanitizeUTF8(invalid)
	if !utf8.ValidString(got) {
		t.Errorf("SanitizeUTF8 output still invalid: %q", got)
	}
	if got != "okentão" {
		t.Errorf("SanitizeUTF8 = %q, want %q", got, "okentão")
	}
}

func TestPrepareExcerpt(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	got := tp.PrepareExcerpt("ok\xffentão mais texto", 8)
	if !utf8.ValidString(got) {
		t.Errorf("PrepareExcerpt produced invalid UTF-8: %q", got)
	}
	if utf8.RuneCountInString(got) > 8 {
		t.Errorf("PrepareExcerpt longer than limit: %q", got)
	}
}
