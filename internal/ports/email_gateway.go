package ports

import (
	"context"

	"github.com/mailroom/email-triage/internal/core"
)

// EmailGateway defines the serving surface that feeds emails into the
// triage pipeline (HTTP API, SMTP relay, CLI).
type EmailGateway interface {
	// ProcessEmail runs one email through the pipeline and returns the bundle.
	ProcessEmail(ctx context.Context, input *core.EmailInput) (*core.TriageResult, error)

	// Start starts the gateway.
	Start() error

	// Stop stops the gateway.
	Stop() error
}
