package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type stubReplyClient struct {
	reply string
	err   error
	calls int
}

func (c *stubReplyClient) GenerateReply(ctx context.Context, result *ClassificationResult, input *EmailInput) (string, error) {
	c.calls++
	return c.reply, c.err
}

type blockingReplyClient struct{}

func (blockingReplyClient) GenerateReply(ctx context.Context, result *ClassificationResult, input *EmailInput) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type mapReplyCache struct {
	entries map[string]*ReplySuggestion
	sets    int
}

func newMapReplyCache() *mapReplyCache {
	return &mapReplyCache{entries: make(map[string]*ReplySuggestion)}
}

func (c *mapReplyCache) Get(key string) (*ReplySuggestion, bool) {
	reply, ok := c.entries[key]
	return reply, ok
}

func (c *mapReplyCache) Set(key string, reply *ReplySuggestion, ttl time.Duration) {
	c.sets++
	c.entries[key] = reply
}

func newTestService(client ReplyClient, cache ReplyCache, cacheEnabled bool) *TriageService {
	return NewTriageService(
		NewClassifier(NewLexicon()),
		client,
		cache,
		zap.NewNop(),
		time.Second,
		cacheEnabled,
		time.Hour,
	)
}

func TestProcessWithoutReplyClient(t *testing.T) {
	service := newTestService(nil, nil, false)

	input := &EmailInput{
		Text:       "Preciso de suporte urgente com o sistema.",
		SenderName: "Ana",
		Subject:    "Sistema fora do ar",
	}
	result := service.Process(context.Background(), input)

	if result.Classification.Category != CategoryProductive {
		t.Errorf("Category = %q, want %q", result.Classification.Category, CategoryProductive)
	}
	if result.Reply.Source != ReplyFallback {
		t.Errorf("Source = %q, want %q", result.Reply.Source, ReplyFallback)
	}
	if strings.TrimSpace(result.Reply.Text) == "" {
		t.Error("fallback reply must not be empty")
	}
	if !strings.Contains(result.Reply.Text, "Ana") {
		t.Errorf("expected sender name in reply, got %q", result.Reply.Text)
	}
}

func TestProcessRemoteReplySuccess(t *testing.T) {
	client := &stubReplyClient{reply: "Olá, recebemos sua solicitação."}
	service := newTestService(client, nil, false)

	result := service.Process(context.Background(), &EmailInput{Text: "status do projeto"})

	if result.Reply.Source != ReplyGenerated {
		t.Errorf("Source = %q, want %q", result.Reply.Source, ReplyGenerated)
	}
	if result.Reply.Text != "Olá, recebemos sua solicitação." {
		t.Errorf("Text = %q", result.Reply.Text)
	}
}

func TestProcessRemoteReplyFailureFallsBack(t *testing.T) {
	client := &stubReplyClient{err: errors.New("provider unavailable")}
	service := newTestService(client, nil, false)

	result := service.Process(context.Background(), &EmailInput{Text: "status do projeto"})

	if result.Reply.Source != ReplyFallback {
		t.Errorf("Source = %q, want %q", result.Reply.Source, ReplyFallback)
	}
	if strings.TrimSpace(result.Reply.Text) == "" {
		t.Error("fallback reply must not be empty")
	}
}

func TestProcessEmptyRemoteReplyFallsBack(t *testing.T) {
	client := &stubReplyClient{reply: "   \n"}
	service := newTestService(client, nil, false)

	result := service.Process(context.Background(), &EmailInput{Text: "feliz natal"})

	if result.Reply.Source != ReplyFallback {
		t.Errorf("Source = %q, want %q", result.Reply.Source, ReplyFallback)
	}
}

func TestProcessRemoteReplyTimeout(t *testing.T) {
	service := NewTriageService(
		NewClassifier(NewLexicon()),
		blockingReplyClient{},
		nil,
		zap.NewNop(),
		10*time.Millisecond,
		false,
		0,
	)

	start := time.Now()
	result := service.Process(context.Background(), &EmailInput{Text: "urgente"})
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("timeout not enforced, took %v", elapsed)
	}

	if result.Reply.Source != ReplyFallback {
		t.Errorf("Source = %q, want %q", result.Reply.Source, ReplyFallback)
	}
}

func TestProcessCachesGeneratedReplies(t *testing.T) {
	client := &stubReplyClient{reply: "Resposta gerada."}
	cache := newMapReplyCache()
	service := newTestService(client, cache, true)

	input := &EmailInput{Text: "status do projeto", SenderName: "Bruno", Subject: "Status"}

	first := service.Process(context.Background(), input)
	second := service.Process(context.Background(), input)

	if client.calls != 1 {
		t.Errorf("provider called %d times, want 1", client.calls)
	}
	if cache.sets != 1 {
		t.Errorf("cache Set called %d times, want 1", cache.sets)
	}
	if first.Reply.Text != second.Reply.Text {
		t.Errorf("cached reply differs: %q vs %q", first.Reply.Text, second.Reply.Text)
	}
}

func TestProcessDoesNotCacheFallbacks(t *testing.T) {
	client := &stubReplyClient{err: errors.New("provider unavailable")}
	cache := newMapReplyCache()
	service := newTestService(client, cache, true)

	service.Process(context.Background(), &EmailInput{Text: "status do projeto"})

	if cache.sets != 0 {
		t.Errorf("cache Set called %d times, want 0", cache.sets)
	}
}

func TestClassifyShortcut(t *testing.T) {
	service := newTestService(nil, nil, false)

	result := service.Classify("Obrigado, ótimo trabalho!")
	if result.Category != CategoryUnproductive {
		t.Errorf("Category = %q, want %q", result.Category, CategoryUnproductive)
	}
	if result.Score != 0.2 {
		t.Errorf("Score = %v, want 0.2", result.Score)
	}
}

func TestFallbackReplyTemplates(t *testing.T) {
	productive := FallbackReply(CategoryProductive, &EmailInput{
		Text:       "Preciso do relatório de vendas.",
		SenderName: "Carla",
		Subject:    "Relatório",
	})
	if !strings.Contains(productive, "Prezado(a) Carla") {
		t.Errorf("missing personalized greeting: %q", productive)
	}
	if !strings.Contains(productive, "'Relatório'") {
		t.Errorf("missing subject echo: %q", productive)
	}
	if !strings.Contains(productive, "é bastante breve") {
		t.Errorf("missing length remark: %q", productive)
	}

	unproductive := FallbackReply(CategoryUnproductive, &EmailInput{Text: "Feliz Natal!"})
	if !strings.Contains(unproductive, "Prezado(a),") {
		t.Errorf("missing default greeting: %q", unproductive)
	}
	if !strings.Contains(unproductive, "(sem assunto)") {
		t.Errorf("missing default subject: %q", unproductive)
	}

	empty := FallbackReply(CategoryUnproductive, &EmailInput{})
	if !strings.Contains(empty, "(sem conteúdo)") {
		t.Errorf("missing empty-content marker: %q", empty)
	}
}
