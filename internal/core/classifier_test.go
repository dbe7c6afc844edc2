package core

import (
	"reflect"
	"strings"
	"testing"
)

// fillerText builds a text with exactly n neutral words.
func fillerText(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = "palavra"
	}
	return strings.Join(words, " ")
}

func TestBucketFor(t *testing.T) {
	testCases := []struct {
		wordCount int
		want      LengthBucket
	}{
		{0, BucketVeryShort},
		{1, BucketVeryShort},
		{49, BucketVeryShort},
		{50, BucketShort},
		{99, BucketShort},
		{100, BucketMedium},
		{199, BucketMedium},
		{200, BucketLong},
		{201, BucketLong},
		{5000, BucketLong},
	}

	for _, tc := range testCases {
		if got := BucketFor(tc.wordCount); got != tc.want {
			t.Errorf("BucketFor(%d) = %q, want %q", tc.wordCount, got, tc.want)
		}
	}
}

func TestClassifyScoreTable(t *testing.T) {
	classifier := NewClassifier(NewLexicon())

	testCases := []struct {
		name         string
		fillerWords  int
		withKeyword  bool
		wantBucket   LengthBucket
		wantCategory Category
		wantScore    float64
	}{
		{"very short without context", 10, false, BucketVeryShort, CategoryUnproductive, 0.2},
		{"very short with context", 9, true, BucketVeryShort, CategoryProductive, 0.4},
		{"short without context", 60, false, BucketShort, CategoryUnproductive, 0.3},
		{"short with context", 59, true, BucketShort, CategoryProductive, 0.4},
		{"medium without context", 150, false, BucketMedium, CategoryUnproductive, 0.5},
		{"medium with context", 149, true, BucketMedium, CategoryProductive, 0.6},
		{"long without context", 250, false, BucketLong, CategoryUnproductive, 0.7},
		{"long with context", 249, true, BucketLong, CategoryProductive, 0.9},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			text := fillerText(tc.fillerWords)
			if tc.withKeyword {
				text += " urgente"
			}

			result := classifier.Classify(Normalize(text))
			if result.Bucket != tc.wantBucket {
				t.Errorf("Bucket = %q, want %q", result.Bucket, tc.wantBucket)
			}
			if result.Category != tc.wantCategory {
				t.Errorf("Category = %q, want %q", result.Category, tc.wantCategory)
			}
			if result.Score != tc.wantScore {
				t.Errorf("Score = %v, want %v", result.Score, tc.wantScore)
			}
		})
	}
}

func TestClassifyProductiveWinsOverUnproductive(t *testing.T) {
	classifier := NewClassifier(NewLexicon())

	// Both lexicons match; the productive keyword decides the category
	// and the score column.
	result := classifier.Classify(Normalize("obrigado pelo relatório"))
	if result.Category != CategoryProductive {
		t.Errorf("Category = %q, want %q", result.Category, CategoryProductive)
	}
	if result.Score != 0.4 {
		t.Errorf("Score = %v, want 0.4", result.Score)
	}
	if !reflect.DeepEqual(result.MatchedKeywords, []string{"relatório", "obrigado"}) {
		t.Errorf("MatchedKeywords = %v, want both phrases recorded", result.MatchedKeywords)
	}
}

func TestClassifyUnproductiveKeywordsDoNotRaiseScore(t *testing.T) {
	classifier := NewClassifier(NewLexicon())

	// An unproductive-only match scores exactly like no match at all.
	withMatch := classifier.Classify(Normalize("obrigado por tudo"))
	noMatch := classifier.Classify(Normalize("até logo então amigo"))

	if withMatch.Category != CategoryUnproductive {
		t.Errorf("Category = %q, want %q", withMatch.Category, CategoryUnproductive)
	}
	if withMatch.Score != noMatch.Score {
		t.Errorf("unproductive-only score %v differs from no-match score %v",
			withMatch.Score, noMatch.Score)
	}
	if len(withMatch.MatchedKeywords) == 0 {
		t.Error("expected unproductive keywords to be recorded")
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	classifier := NewClassifier(NewLexicon())

	for _, text := range []string{"", "   ", "\n\t"} {
		result := classifier.Classify(Normalize(text))
		if result.Bucket != BucketVeryShort {
			t.Errorf("Classify(%q) Bucket = %q, want %q", text, result.Bucket, BucketVeryShort)
		}
		if result.Category != CategoryUnproductive {
			t.Errorf("Classify(%q) Category = %q, want %q", text, result.Category, CategoryUnproductive)
		}
		if result.Score != 0.2 {
			t.Errorf("Classify(%q) Score = %v, want 0.2", text, result.Score)
		}
		if len(result.MatchedKeywords) != 0 {
			t.Errorf("Classify(%q) MatchedKeywords = %v, want none", text, result.MatchedKeywords)
		}
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	classifier := NewClassifier(NewLexicon())
	text := Normalize("Preciso do status do projeto, por favor.")

	first := classifier.Classify(text)
	second := classifier.Classify(text)

	if first.Category != second.Category || first.Score != second.Score ||
		first.Bucket != second.Bucket ||
		!reflect.DeepEqual(first.MatchedKeywords, second.MatchedKeywords) {
		t.Errorf("repeated classification differs: %+v vs %+v", first, second)
	}
}

func TestClassifyScenarios(t *testing.T) {
	classifier := NewClassifier(NewLexicon())

	t.Run("long productive request", func(t *testing.T) {
		text := fillerText(210) +
			" segue o relatório em anexo conforme solicitado aguardo seu feedback antes da reunião"
		result := classifier.Classify(Normalize(text))
		if result.Category != CategoryProductive {
			t.Errorf("Category = %q, want %q", result.Category, CategoryProductive)
		}
		if result.Score != 0.9 {
			t.Errorf("Score = %v, want 0.9", result.Score)
		}
		if result.Bucket != BucketLong {
			t.Errorf("Bucket = %q, want %q", result.Bucket, BucketLong)
		}
		if result.ConfidencePercent() != 90 {
			t.Errorf("ConfidencePercent() = %d, want 90", result.ConfidencePercent())
		}
	})

	t.Run("holiday greeting", func(t *testing.T) {
		result := classifier.Classify(Normalize("Oi! Feliz Natal para você! Aproveite as festas!"))
		if result.Category != CategoryUnproductive {
			t.Errorf("Category = %q, want %q", result.Category, CategoryUnproductive)
		}
		if result.Score != 0.2 {
			t.Errorf("Score = %v, want 0.2", result.Score)
		}
		if !reflect.DeepEqual(result.MatchedKeywords, []string{"feliz natal"}) {
			t.Errorf("MatchedKeywords = %v, want [feliz natal]", result.MatchedKeywords)
		}
	})

	t.Run("short urgent incident", func(t *testing.T) {
		result := classifier.Classify(Normalize(
			"Urgente! Temos um problema crítico no sistema de produção. Preciso de ajuda imediata!"))
		if result.Category != CategoryProductive {
			t.Errorf("Category = %q, want %q", result.Category, CategoryProductive)
		}
		if result.Score != 0.4 {
			t.Errorf("Score = %v, want 0.4", result.Score)
		}
		if result.Bucket != BucketVeryShort {
			t.Errorf("Bucket = %q, want %q", result.Bucket, BucketVeryShort)
		}
		want := []string{"urgente", "problema", "ajuda", "crítico"}
		if !reflect.DeepEqual(result.MatchedKeywords, want) {
			t.Errorf("MatchedKeywords = %v, want %v", result.MatchedKeywords, want)
		}
	})
}
