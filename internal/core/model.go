package core

import (
	"time"
)

// Category is the triage verdict for an email.
type Category string

const (
	CategoryProductive   Category = "Produtivo"
	CategoryUnproductive Category = "Improdutivo"
)

// LengthBucket groups emails by word count. The bucket modulates the
// confidence score together with keyword context.
type LengthBucket string

const (
	BucketVeryShort LengthBucket = "very_short" // [0, 50) words
	BucketShort     LengthBucket = "short"      // [50, 100) words
	BucketMedium    LengthBucket = "medium"     // [100, 200) words
	BucketLong      LengthBucket = "long"       // [200, ∞) words
)

// EmailInput is the raw material for a triage request. The metadata
// fields are not used for scoring; they only personalize the reply.
type EmailInput struct {
	Text        string
	SenderName  string
	SenderEmail string
	Subject     string
}

// NormalizedText is the canonical form of an email body: lowercased,
// whitespace-collapsed, with boundary punctuation stripped from tokens.
// Word counts are always taken from Words, never from the raw string.
type NormalizedText struct {
	Clean string
	Words []string
}

// WordCount returns the number of tokens in the normalized text.
func (n NormalizedText) WordCount() int {
	return len(n.Words)
}

// ClassificationResult holds the category decision and its score.
// Score is always within [0.0, 1.0] and is fully determined by
// (Bucket, productive context present), so category and score can
// never disagree.
type ClassificationResult struct {
	Category        Category
	Score           float64
	Bucket          LengthBucket
	MatchedKeywords []string
	AnalyzedAt      time.Time
}

// ConfidencePercent renders the score as a whole percentage for display.
func (r *ClassificationResult) ConfidencePercent() int {
	return int(r.Score*100 + 0.5)
}

// ReplySource tells callers whether a suggestion came from the remote
// generative service or from the local template. Informational only.
type ReplySource string

const (
	ReplyGenerated ReplySource = "generated"
	ReplyFallback  ReplySource = "fallback"
)

// ReplySuggestion is the proposed answer to the triaged email.
type ReplySuggestion struct {
	Text   string
	Source ReplySource
}

// TriageResult bundles everything a gateway needs to render a response.
type TriageResult struct {
	Classification *ClassificationResult
	Reply          *ReplySuggestion
}
