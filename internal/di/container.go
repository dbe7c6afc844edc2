package di

import (
	"fmt"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mailroom/email-triage/internal/adapters/extract"
	"github.com/mailroom/email-triage/internal/config"
	"github.com/mailroom/email-triage/internal/core"
	"github.com/mailroom/email-triage/internal/factory"
	"github.com/mailroom/email-triage/internal/logging"
	"github.com/mailroom/email-triage/internal/metrics"
	"github.com/mailroom/email-triage/internal/ports"
	"github.com/mailroom/email-triage/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewReplyFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewGatewayFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register reply client (may be nil when no credential is configured)
	if err := container.Provide(func(f *factory.ReplyFactory) (core.ReplyClient, error) {
		return f.CreateReplyClient()
	}); err != nil {
		return nil, err
	}

	// Register reply cache
	if err := container.Provide(func(f *factory.CacheFactory) (core.ReplyCache, error) {
		return f.CreateReplyCache()
	}); err != nil {
		return nil, err
	}

	// Register lexicon and classifier
	if err := container.Provide(core.NewLexicon); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewClassifier); err != nil {
		return nil, err
	}

	// Register triage service
	if err := container.Provide(func(
		cfg *config.Config,
		classifier *core.Classifier,
		replyClient core.ReplyClient,
		cacheRepo core.ReplyCache,
		cacheFactory *factory.CacheFactory,
		logger *zap.Logger,
	) (*core.TriageService, error) {
		replyTimeout, err := cfg.GetDuration("reply.timeout")
		if err != nil {
			return nil, fmt.Errorf("invalid reply timeout: %w", err)
		}
		cacheTTL, err := cacheFactory.GetCacheTTL()
		if err != nil {
			return nil, fmt.Errorf("invalid cache TTL: %w", err)
		}
		return core.NewTriageService(
			classifier,
			replyClient,
			cacheRepo,
			logger,
			replyTimeout,
			cacheFactory.IsCacheEnabled(),
			cacheTTL,
		), nil
	}); err != nil {
		return nil, err
	}

	// Register metrics recorder
	if err := container.Provide(metrics.NewRecorder); err != nil {
		return nil, err
	}

	// Register text extractor
	if err := container.Provide(func(logger *zap.Logger) ports.TextExtractor {
		return extract.NewExtractor(logger)
	}); err != nil {
		return nil, err
	}

	// Register email gateway
	if err := container.Provide(func(f *factory.GatewayFactory) (ports.EmailGateway, error) {
		return f.CreateEmailGateway()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
