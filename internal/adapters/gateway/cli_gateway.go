package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/mailroom/email-triage/internal/core"
	"go.uber.org/zap"
)

// CliGateway runs one email through the pipeline and prints the result
// to stdout.
type CliGateway struct {
	service *core.TriageService
	logger  *zap.Logger
	verbose bool
}

// NewCliGateway creates a new CLI gateway
func NewCliGateway(service *core.TriageService, logger *zap.Logger, verbose bool) (*CliGateway, error) {
	return &CliGateway{
		service: service,
		logger:  logger,
		verbose: verbose,
	}, nil
}

// ProcessEmail processes an email and displays the results
func (g *CliGateway) ProcessEmail(ctx context.Context, input *core.EmailInput) (*core.TriageResult, error) {
	g.logger.Debug("Processing email", zap.String("sender", input.SenderEmail))

	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("Sender: %s <%s>\n", input.SenderName, input.SenderEmail)
	fmt.Printf("Subject: %s\n", input.Subject)
	fmt.Printf("Body length: %d bytes\n", len(input.Text))

	if g.verbose {
		preview := input.Text
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Printf("\nBody preview:\n%s\n", preview)
	}

	result := g.service.Process(ctx, input)
	cls := result.Classification

	fmt.Printf("\n=== Triage Result ===\n")
	fmt.Printf("Category: %s\n", cls.Category)
	fmt.Printf("Confidence: %d%% (%.2f)\n", cls.ConfidencePercent(), cls.Score)
	fmt.Printf("Length bucket: %s\n", cls.Bucket)
	if len(cls.MatchedKeywords) > 0 {
		fmt.Printf("Matched keywords: %s\n", strings.Join(cls.MatchedKeywords, ", "))
	}
	fmt.Printf("\n=== Suggested Reply (%s) ===\n%s\n", result.Reply.Source, result.Reply.Text)

	return result, nil
}

// Start is a no-op for the CLI gateway
func (g *CliGateway) Start() error {
	return nil
}

// Stop is a no-op for the CLI gateway
func (g *CliGateway) Stop() error {
	return nil
}
