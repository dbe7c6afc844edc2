package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/mailroom/email-triage/internal/core"
	"github.com/mailroom/email-triage/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient is an implementation of the ReplyClient interface using OpenAI
type OpenAIClient struct {
	client        *openai.Client
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
	excerptSize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	promptFormat  string
}

// NewOpenAIClient creates a new OpenAI reply client
func NewOpenAIClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	excerptSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *OpenAIClient {
	return &OpenAIClient{
		client:        openai.NewClient(apiKey),
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		excerptSize:   excerptSize,
		logger:        logger,
		textProcessor: textProcessor,
		promptFormat: `Dados do email recebido:
- Remetente: %s
- Email: %s
- Assunto: %s
- Corpo: %s

Categoria detectada: %s

Gere uma resposta profissional, personalizada e concisa (máximo 6 linhas) que:
1. Cumprimente o remetente pelo nome (se fornecido)
2. Reconheça o assunto/conteúdo
3. Forneça orientação apropriada
4. Ofereça disponibilidade

Não adicione explicações, apenas a resposta.`,
	}
}

// GenerateReply produces a suggested answer for a classified email
func (c *OpenAIClient) GenerateReply(ctx context.Context, result *core.ClassificationResult, input *core.EmailInput) (string, error) {
	prompt := fmt.Sprintf(c.promptFormat,
		orDefault(input.SenderName, "Não informado"),
		orDefault(input.SenderEmail, "Não informado"),
		orDefault(input.Subject, "Sem assunto"),
		c.textProcessor.PrepareExcerpt(input.Text, c.excerptSize),
		result.Category)

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "Você é um assistente de suporte corporativo profissional e atencioso. Responda apenas com o texto da resposta.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
