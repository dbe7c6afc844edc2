package bedrock

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/mailroom/email-triage/internal/config"
	"github.com/mailroom/email-triage/internal/core"
	"github.com/mailroom/email-triage/internal/utils"
	"go.uber.org/zap"
)

// Factory creates Bedrock reply clients from configuration
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new Bedrock factory
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateReplyClient creates a new BedrockClient
func (f *Factory) CreateReplyClient() (core.ReplyClient, error) {
	brCfg := f.cfg.GetBedrock()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(brCfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := bedrockruntime.NewFromConfig(awsCfg)

	return NewBedrockClient(
		client,
		brCfg.ModelID,
		brCfg.MaxTokens,
		brCfg.Temperature,
		brCfg.TopP,
		f.cfg.GetReply().ExcerptSize,
		f.logger,
		f.textProcessor,
	), nil
}
