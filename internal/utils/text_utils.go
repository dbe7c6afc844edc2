package utils

import (
	"unicode/utf8"

	"go.uber.org/zap"
)

// TextProcessor provides utilities for preparing email text for
// prompts: excerpting and UTF-8 sanitization.
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// Excerpt returns at most maxRunes runes of the text. Remote reply
// providers only ever see an excerpt, never the full body.
func (tp *TextProcessor) Excerpt(text string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}

	runes := []rune(text)
	excerpt := string(runes[:maxRunes])

	tp.logger.Debug("Text excerpted",
		zap.Int("original_runes", len(runes)),
		zap.Int("excerpt_runes", maxRunes))

	return excerpt
}

// SanitizeUTF8 ensures the string contains only valid UTF-8 characters
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				// Skip invalid UTF-8 sequences
				continue
			}
		}
		result = append(result, r)
	}

	tp.logger.Debug("Text sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(string(result))))

	return string(result)
}

// PrepareExcerpt sanitizes and excerpts in one operation
func (tp *TextProcessor) PrepareExcerpt(text string, maxRunes int) string {
	return tp.Excerpt(tp.SanitizeUTF8(text), maxRunes)
}
