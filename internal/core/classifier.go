package core

import (
	"time"
)

// scoreTable maps (bucket, productive context present) to the fixed
// confidence score. Category and score always come from the same pair.
var scoreTable = map[LengthBucket][2]float64{
	// [with context, without context]
	BucketVeryShort: {0.4, 0.2},
	BucketShort:     {0.4, 0.3},
	BucketMedium:    {0.6, 0.5},
	BucketLong:      {0.9, 0.7},
}

// Classifier applies the heuristic: length bucket from word count,
// keyword context from the lexicons, score from the fixed table.
// Stateless after construction and safe for concurrent use.
type Classifier struct {
	lexicon *Lexicon
}

// NewClassifier creates a classifier over the built-in lexicons.
func NewClassifier(lexicon *Lexicon) *Classifier {
	return &Classifier{lexicon: lexicon}
}

// BucketFor returns the length bucket for a word count. The mapping is
// total: every count lands in exactly one bucket.
func BucketFor(wordCount int) LengthBucket {
	switch {
	case wordCount < 50:
		return BucketVeryShort
	case wordCount < 100:
		return BucketShort
	case wordCount < 200:
		return BucketMedium
	default:
		return BucketLong
	}
}

// Classify decides the category and score for a normalized text.
//
// Productive keywords take priority: a single productive phrase makes
// the email Produtivo no matter how many unproductive phrases also
// match. Unproductive phrases on their own leave the category at the
// no-context default (Improdutivo) and the score in the
// without-context column; they still show up in MatchedKeywords.
// Malformed or empty input never fails: it is simply a very short text
// with no matches (Improdutivo, 0.2).
func (c *Classifier) Classify(text NormalizedText) *ClassificationResult {
	bucket := BucketFor(text.WordCount())
	match := c.lexicon.Match(text)

	category := CategoryUnproductive
	scores := scoreTable[bucket]
	score := scores[1]
	if match.Productive {
		category = CategoryProductive
		score = scores[0]
	}

	return &ClassificationResult{
		Category:        category,
		Score:           score,
		Bucket:          bucket,
		MatchedKeywords: match.Matched,
		AnalyzedAt:      time.Now(),
	}
}
