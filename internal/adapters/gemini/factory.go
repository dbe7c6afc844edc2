package gemini

import (
	"github.com/mailroom/email-triage/internal/config"
	"github.com/mailroom/email-triage/internal/core"
	"github.com/mailroom/email-triage/internal/utils"
	"go.uber.org/zap"
)

// Factory creates Gemini reply clients from configuration
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new Gemini factory
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateReplyClient creates a new GeminiClient
func (f *Factory) CreateReplyClient() (core.ReplyClient, error) {
	gemCfg := f.cfg.GetGemini()
	return NewGeminiClient(
		gemCfg.APIKey,
		gemCfg.ModelName,
		gemCfg.MaxTokens,
		gemCfg.Temperature,
		gemCfg.TopP,
		f.cfg.GetReply().ExcerptSize,
		f.logger,
		f.textProcessor,
	)
}
