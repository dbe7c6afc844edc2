package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/mailroom/email-triage/internal/core"
	"github.com/mailroom/email-triage/internal/metrics"
	"go.uber.org/zap"
)

// SMTPGateway is an inbound tagging relay: it accepts mail, classifies
// the text content, prepends triage headers, and hands the message to
// an upstream MTA. Classification never blocks delivery; a failure to
// relay is the only error a sender can see.
type SMTPGateway struct {
	service         *core.TriageService
	recorder        *metrics.Recorder
	logger          *zap.Logger
	listenAddr      string
	server          *smtp.Server
	upstreamAddr    string
	upstreamPort    int
	upstreamEnabled bool
	categoryHeader  string
	scoreHeader     string
	keywordsHeader  string
}

// NewSMTPGateway creates a new SMTP tagging relay
func NewSMTPGateway(
	service *core.TriageService,
	recorder *metrics.Recorder,
	logger *zap.Logger,
	listenAddr string,
	upstreamAddr string,
	upstreamPort int,
	upstreamEnabled bool,
	categoryHeader string,
	scoreHeader string,
	keywordsHeader string,
) *SMTPGateway {
	return &SMTPGateway{
		service:         service,
		recorder:        recorder,
		logger:          logger,
		listenAddr:      listenAddr,
		upstreamAddr:    upstreamAddr,
		upstreamPort:    upstreamPort,
		upstreamEnabled: upstreamEnabled,
		categoryHeader:  categoryHeader,
		scoreHeader:     scoreHeader,
		keywordsHeader:  keywordsHeader,
	}
}

// Start starts the SMTP server
func (g *SMTPGateway) Start() error {
	g.server = smtp.NewServer(&smtpBackend{gateway: g})

	g.server.Addr = g.listenAddr
	g.server.Domain = "localhost"
	g.server.ReadTimeout = 30 * time.Second
	g.server.WriteTimeout = 30 * time.Second
	g.server.MaxMessageBytes = 30 * 1024 * 1024
	g.server.MaxRecipients = 50
	g.server.AllowInsecureAuth = true

	g.logger.Info("SMTP gateway starting", zap.String("address", g.listenAddr))

	go func() {
		if err := g.server.ListenAndServe(); err != nil && err != smtp.ErrServerClosed {
			g.logger.Error("SMTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the SMTP server
func (g *SMTPGateway) Stop() error {
	if g.server != nil {
		return g.server.Close()
	}
	return nil
}

// ProcessEmail runs one email through the full pipeline. Used for
// direct calls and tests; the relay path only classifies.
func (g *SMTPGateway) ProcessEmail(ctx context.Context, input *core.EmailInput) (*core.TriageResult, error) {
	start := time.Now()
	result := g.service.Process(ctx, input)
	g.recorder.ObserveTriage(
		string(result.Classification.Category),
		string(result.Classification.Bucket),
		string(result.Reply.Source),
		time.Since(start))
	return result, nil
}

// relayUpstream sends the tagged message to the upstream MTA.
func (g *SMTPGateway) relayUpstream(sender string, recipients []string, data []byte) error {
	addr := fmt.Sprintf("%s:%d", g.upstreamAddr, g.upstreamPort)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to upstream MTA: %w", err)
	}
	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}
	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	accepted := false
	for _, rcpt := range recipients {
		if err := c.Rcpt(rcpt, nil); err != nil {
			g.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", rcpt),
				zap.Error(err))
			continue
		}
		accepted = true
	}
	if !accepted {
		return fmt.Errorf("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send message data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		g.logger.Warn("QUIT command failed", zap.Error(err))
	}
	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	gateway *SMTPGateway
}

func (b *smtpBackend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{gateway: b.gateway}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	gateway    *SMTPGateway
	sender     string
	recipients []string
}

func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = nil
}

func (s *smtpSession) Logout() error {
	return nil
}

func (s *smtpSession) AuthPlain(_, _ string) error {
	return smtp.ErrAuthUnsupported
}

func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data classifies the message and prepends the triage headers before
// relaying. Classification problems degrade to an untagged relay, not
// a rejection.
func (s *smtpSession) Data(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		s.gateway.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		s.gateway.logger.Error("Failed to parse message", zap.Error(err))
		return err
	}

	text, err := extractTextFromMessage(msg)
	if err != nil {
		s.gateway.logger.Warn("Failed to extract text content, tagging from raw body", zap.Error(err))
		text = ""
	}

	result := s.gateway.service.Classify(text)

	s.gateway.logger.Info("Inbound message classified",
		zap.String("sender", s.sender),
		zap.String("subject", decodeEncodedHeader(msg.Header.Get("Subject"))),
		zap.String("category", string(result.Category)),
		zap.Float64("score", result.Score))

	tagged := s.tagMessage(raw, result)

	if !s.gateway.upstreamEnabled {
		s.gateway.logger.Debug("Upstream relay disabled, dropping tagged message",
			zap.String("sender", s.sender))
		return nil
	}

	if err := s.gateway.relayUpstream(s.sender, s.recipients, tagged); err != nil {
		s.gateway.logger.Error("Failed to relay message", zap.Error(err))
		return fmt.Errorf("451 Temporary failure relaying message")
	}
	return nil
}

// tagMessage prepends the triage headers to the raw message.
func (s *smtpSession) tagMessage(raw []byte, result *core.ClassificationResult) []byte {
	var tagged bytes.Buffer
	fmt.Fprintf(&tagged, "%s: %s\r\n", s.gateway.categoryHeader, result.Category)
	fmt.Fprintf(&tagged, "%s: %.2f\r\n", s.gateway.scoreHeader, result.Score)
	if len(result.MatchedKeywords) > 0 {
		fmt.Fprintf(&tagged, "%s: %s\r\n", s.gateway.keywordsHeader,
			strings.Join(result.MatchedKeywords, ", "))
	}
	tagged.Write(raw)
	return tagged.Bytes()
}
