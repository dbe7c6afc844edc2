package openai

import (
	"github.com/mailroom/email-triage/internal/config"
	"github.com/mailroom/email-triage/internal/core"
	"github.com/mailroom/email-triage/internal/utils"
	"go.uber.org/zap"
)

// Factory creates OpenAI reply clients from configuration
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new OpenAI factory
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateReplyClient creates a new OpenAIClient
func (f *Factory) CreateReplyClient() (core.ReplyClient, error) {
	oaCfg := f.cfg.GetOpenAI()
	return NewOpenAIClient(
		oaCfg.APIKey,
		oaCfg.ModelName,
		oaCfg.MaxTokens,
		oaCfg.Temperature,
		oaCfg.TopP,
		f.cfg.GetReply().ExcerptSize,
		f.logger,
		f.textProcessor,
	), nil
}
