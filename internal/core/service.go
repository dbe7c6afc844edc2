package core

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TriageService is the core pipeline: normalize, classify, suggest a
// reply. Process never returns an error to the caller; the worst case
// is a template reply next to a low-confidence score.
type TriageService struct {
	classifier   *Classifier
	replyClient  ReplyClient
	cache        ReplyCache
	logger       *zap.Logger
	replyTimeout time.Duration
	cacheEnabled bool
	cacheTTL     time.Duration
}

// NewTriageService creates the triage pipeline. replyClient may be nil
// when no provider credential is configured; that is a normal operating
// mode and every reply comes from the local template.
func NewTriageService(
	classifier *Classifier,
	replyClient ReplyClient,
	cache ReplyCache,
	logger *zap.Logger,
	replyTimeout time.Duration,
	cacheEnabled bool,
	cacheTTL time.Duration,
) *TriageService {
	return &TriageService{
		classifier:   classifier,
		replyClient:  replyClient,
		cache:        cache,
		logger:       logger,
		replyTimeout: replyTimeout,
		cacheEnabled: cacheEnabled && cache != nil,
		cacheTTL:     cacheTTL,
	}
}

// Process runs the full pipeline for one email.
func (s *TriageService) Process(ctx context.Context, input *EmailInput) *TriageResult {
	normalized := Normalize(input.Text)
	result := s.classifier.Classify(normalized)

	s.logger.Debug("Email classified",
		zap.String("category", string(result.Category)),
		zap.Float64("score", result.Score),
		zap.String("bucket", string(result.Bucket)),
		zap.Int("words", normalized.WordCount()),
		zap.Strings("keywords", result.MatchedKeywords))

	reply := s.suggestReply(ctx, result, input)

	return &TriageResult{
		Classification: result,
		Reply:          reply,
	}
}

// Classify runs normalization and classification without touching the
// reply path. Used by gateways that only tag messages.
func (s *TriageService) Classify(text string) *ClassificationResult {
	return s.classifier.Classify(Normalize(text))
}

// suggestReply tries the remote client within the configured timeout
// and falls back to the local template on any failure. An absent
// client is expected, not an error.
func (s *TriageService) suggestReply(ctx context.Context, result *ClassificationResult, input *EmailInput) *ReplySuggestion {
	if s.replyClient == nil {
		s.logger.Debug("No reply provider configured, using template")
		return s.fallback(result.Category, input)
	}

	key := replyCacheKey(result.Category, input)
	if s.cacheEnabled {
		if cached, ok := s.cache.Get(key); ok {
			s.logger.Debug("Reply cache hit", zap.String("key", key))
			return cached
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.replyTimeout)
	defer cancel()

	text, err := s.replyClient.GenerateReply(callCtx, result, input)
	if err != nil {
		s.logger.Warn("Remote reply generation failed, using template", zap.Error(err))
		return s.fallback(result.Category, input)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		s.logger.Warn("Remote reply was empty, using template")
		return s.fallback(result.Category, input)
	}

	reply := &ReplySuggestion{Text: text, Source: ReplyGenerated}
	if s.cacheEnabled {
		s.cache.Set(key, reply, s.cacheTTL)
	}
	return reply
}

func (s *TriageService) fallback(category Category, input *EmailInput) *ReplySuggestion {
	return &ReplySuggestion{
		Text:   FallbackReply(category, input),
		Source: ReplyFallback,
	}
}

// replyCacheKey derives a stable key from the fields that shape the
// generated reply: category, an excerpt of the text, and the sender
// metadata.
func replyCacheKey(category Category, input *EmailInput) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s|%s",
		category, firstRunes(input.Text, 300), input.SenderName, input.Subject)
	return fmt.Sprintf("%x", h.Sum64())
}
