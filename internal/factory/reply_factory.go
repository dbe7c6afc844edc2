package factory

import (
	"fmt"

	"github.com/mailroom/email-triage/internal/adapters/bedrock"
	"github.com/mailroom/email-triage/internal/adapters/gemini"
	"github.com/mailroom/email-triage/internal/adapters/openai"
	"github.com/mailroom/email-triage/internal/config"
	"github.com/mailroom/email-triage/internal/core"
	"github.com/mailroom/email-triage/internal/utils"
	"go.uber.org/zap"
)

// ReplyFactory creates reply clients
type ReplyFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewReplyFactory creates a new reply client factory
func NewReplyFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *ReplyFactory {
	return &ReplyFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateReplyClient creates a reply client based on the configuration.
// A nil client (with nil error) means no provider is available and the
// service runs in permanent template-fallback mode; a missing API key
// is an expected condition, not an error.
func (f *ReplyFactory) CreateReplyClient() (core.ReplyClient, error) {
	replyCfg := f.cfg.GetReply()

	switch replyCfg.Provider {
	case "none", "":
		f.logger.Info("Reply provider disabled, replies use the local template")
		return nil, nil
	case "gemini":
		if f.cfg.GetGemini().APIKey == "" {
			f.logger.Info("No Gemini API key configured, replies use the local template")
			return nil, nil
		}
		return gemini.NewFactory(f.cfg, f.logger, f.textProcessor).CreateReplyClient()
	case "openai":
		if f.cfg.GetOpenAI().APIKey == "" {
			f.logger.Info("No OpenAI API key configured, replies use the local template")
			return nil, nil
		}
		return openai.NewFactory(f.cfg, f.logger, f.textProcessor).CreateReplyClient()
	case "bedrock":
		return bedrock.NewFactory(f.cfg, f.logger, f.textProcessor).CreateReplyClient()
	default:
		return nil, fmt.Errorf("unsupported reply provider: %s", replyCfg.Provider)
	}
}
