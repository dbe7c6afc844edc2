package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net/mail"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mailroom/email-triage/internal/adapters/gateway"
	"github.com/mailroom/email-triage/internal/config"
	"github.com/mailroom/email-triage/internal/core"
	"github.com/mailroom/email-triage/internal/factory"
	"github.com/mailroom/email-triage/internal/logging"
	"github.com/mailroom/email-triage/internal/utils"
	"go.uber.org/zap"
)

var (
	// Reply provider flags
	provider    = flag.String("provider", "none", "Reply provider (gemini, openai, bedrock, none)")
	maxTokens   = flag.Int("max-tokens", 512, "Maximum tokens for generated replies")
	temperature = flag.Float64("temperature", 0.4, "Temperature for reply generation")
	topP        = flag.Float64("top-p", 0.9, "Top-p for reply generation")
	excerptSize = flag.Int("excerpt-size", 300, "Maximum excerpt size sent to the provider")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModelName = flag.String("gemini-model", "gemini-1.5-flash", "Gemini model name")

	// OpenAI flags
	openaiAPIKey    = flag.String("openai-api-key", "", "API key for OpenAI")
	openaiModelName = flag.String("openai-model", "gpt-4o-mini", "OpenAI model name")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Input flags
	inputFile    = flag.String("file", "", "Input email file in RFC 822 format (use stdin if not specified)")
	rawText      = flag.String("text", "", "Classify raw text instead of a parsed email message")
	senderName   = flag.String("sender-name", "", "Sender name for reply personalization")
	senderEmail  = flag.String("sender-email", "", "Sender address for reply personalization")
	subject      = flag.String("subject", "", "Subject for reply personalization")
	replyTimeout = flag.Duration("reply-timeout", 10*time.Second, "Timeout for the remote reply call")
	verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog      = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	_ = godotenv.Load()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := createConfigFromFlags()

	// Initialize reply client; nil means template-only mode
	textProcessor := utils.NewTextProcessor(logger)
	replyFactory := factory.NewReplyFactory(cfg, logger, textProcessor)
	replyClient, err := replyFactory.CreateReplyClient()
	if err != nil {
		logger.Fatal("Failed to create reply client", zap.Error(err))
	}

	service := core.NewTriageService(
		core.NewClassifier(core.NewLexicon()),
		replyClient,
		nil, // no reply cache for one-shot runs
		logger,
		*replyTimeout,
		false,
		0,
	)

	input := buildInput(logger)

	cliGateway, err := gateway.NewCliGateway(service, logger, *verbose)
	if err != nil {
		logger.Fatal("Failed to create CLI gateway", zap.Error(err))
	}

	if _, err := cliGateway.ProcessEmail(context.Background(), input); err != nil {
		logger.Fatal("Failed to process email", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := replyClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close reply client", zap.Error(err))
		}
	}
}

// buildInput assembles the email input from flags, a message file, or stdin.
func buildInput(logger *zap.Logger) *core.EmailInput {
	if *rawText != "" {
		return &core.EmailInput{
			Text:        *rawText,
			SenderName:  *senderName,
			SenderEmail: *senderEmail,
			Subject:     *subject,
		}
	}

	var emailReader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		emailReader = file
		logger.Info("Reading email from file", zap.String("file", *inputFile))
	} else {
		emailReader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	msg, err := mail.ReadMessage(bufio.NewReader(emailReader))
	if err != nil {
		logger.Fatal("Failed to parse email", zap.Error(err))
	}

	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		logger.Fatal("Failed to read email body", zap.Error(err))
	}

	from := msg.Header.Get("From")
	fromName := ""
	if addr, err := mail.ParseAddress(from); err == nil {
		from = addr.Address
		fromName = addr.Name
	}

	input := &core.EmailInput{
		Text:        string(bodyBytes),
		SenderName:  fromName,
		SenderEmail: from,
		Subject:     msg.Header.Get("Subject"),
	}
	if *senderName != "" {
		input.SenderName = *senderName
	}
	if *subject != "" {
		input.Subject = *subject
	}
	return input
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("reply.provider", *provider)
	v.Set("reply.excerpt_size", *excerptSize)

	switch *provider {
	case "gemini":
		apiKey := *geminiAPIKey
		if apiKey == "" {
			apiKey = os.Getenv("GENAI_API_KEY")
		}
		v.Set("gemini.api_key", apiKey)
		v.Set("gemini.model_name", *geminiModelName)
		v.Set("gemini.max_tokens", *maxTokens)
		v.Set("gemini.temperature", *temperature)
		v.Set("gemini.top_p", *topP)
	case "openai":
		v.Set("openai.api_key", *openaiAPIKey)
		v.Set("openai.model_name", *openaiModelName)
		v.Set("openai.max_tokens", *maxTokens)
		v.Set("openai.temperature", *temperature)
		v.Set("openai.top_p", *topP)
	case "bedrock":
		v.Set("bedrock.region", *bedrockRegion)
		v.Set("bedrock.model_id", *bedrockModelID)
		v.Set("bedrock.max_tokens", *maxTokens)
		v.Set("bedrock.temperature", *temperature)
		v.Set("bedrock.top_p", *topP)
	}

	return config.NewFromViper(v)
}
