package factory

import (
	"fmt"

	"github.com/mailroom/email-triage/internal/adapters/gateway"
	"github.com/mailroom/email-triage/internal/config"
	"github.com/mailroom/email-triage/internal/core"
	"github.com/mailroom/email-triage/internal/metrics"
	"github.com/mailroom/email-triage/internal/ports"
	"go.uber.org/zap"
)

// GatewayFactory creates email gateways based on configuration
type GatewayFactory struct {
	cfg       *config.Config
	logger    *zap.Logger
	service   *core.TriageService
	extractor ports.TextExtractor
	recorder  *metrics.Recorder
}

// NewGatewayFactory creates a new gateway factory
func NewGatewayFactory(
	cfg *config.Config,
	logger *zap.Logger,
	service *core.TriageService,
	extractor ports.TextExtractor,
	recorder *metrics.Recorder,
) *GatewayFactory {
	return &GatewayFactory{
		cfg:       cfg,
		logger:    logger,
		service:   service,
		extractor: extractor,
		recorder:  recorder,
	}
}

// CreateEmailGateway creates an email gateway based on the configuration
func (f *GatewayFactory) CreateEmailGateway() (ports.EmailGateway, error) {
	gatewayType := f.cfg.GetString("server.gateway_type")

	switch gatewayType {
	case "http":
		return gateway.NewHTTPGateway(
			f.service,
			f.extractor,
			f.recorder,
			f.logger,
			f.cfg.GetString("server.listen_address"),
			f.cfg.GetInt64("server.max_upload_bytes"),
		), nil
	case "smtp":
		return gateway.NewSMTPGateway(
			f.service,
			f.recorder,
			f.logger,
			f.cfg.GetString("smtp.listen_address"),
			f.cfg.GetString("smtp.upstream.address"),
			f.cfg.GetInt("smtp.upstream.port"),
			f.cfg.GetBool("smtp.upstream.enabled"),
			f.cfg.GetString("smtp.headers.category"),
			f.cfg.GetString("smtp.headers.score"),
			f.cfg.GetString("smtp.headers.keywords"),
		), nil
	case "cli":
		return gateway.NewCliGateway(
			f.service,
			f.logger,
			f.cfg.GetBool("cli.verbose"),
		)
	default:
		return nil, fmt.Errorf("unsupported gateway type: %s", gatewayType)
	}
}
