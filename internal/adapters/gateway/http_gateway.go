package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mailroom/email-triage/internal/core"
	"github.com/mailroom/email-triage/internal/metrics"
	"github.com/mailroom/email-triage/internal/ports"
	"go.uber.org/zap"
)

// HTTPGateway serves the triage pipeline as a JSON API. It accepts
// pasted text or an uploaded file (routed through the text extractor)
// plus optional sender metadata.
type HTTPGateway struct {
	service        *core.TriageService
	extractor      ports.TextExtractor
	recorder       *metrics.Recorder
	logger         *zap.Logger
	listenAddr     string
	maxUploadBytes int64
	server         *http.Server
}

// NewHTTPGateway creates a new HTTP gateway
func NewHTTPGateway(
	service *core.TriageService,
	extractor ports.TextExtractor,
	recorder *metrics.Recorder,
	logger *zap.Logger,
	listenAddr string,
	maxUploadBytes int64,
) *HTTPGateway {
	return &HTTPGateway{
		service:        service,
		extractor:      extractor,
		recorder:       recorder,
		logger:         logger,
		listenAddr:     listenAddr,
		maxUploadBytes: maxUploadBytes,
	}
}

// triageRequest is the JSON/form body for POST /api/v1/triage.
type triageRequest struct {
	Text        string `json:"text"`
	SenderName  string `json:"sender_name"`
	SenderEmail string `json:"sender_email"`
	Subject     string `json:"subject"`
}

// triageResponse is the wire form of a TriageResult. ReplyHTML is the
// display-safe rendering: user-originating content is escaped and line
// breaks become explicit markup.
type triageResponse struct {
	Category        string   `json:"category"`
	Score           float64  `json:"score"`
	Confidence      string   `json:"confidence"`
	LengthBucket    string   `json:"length_bucket"`
	MatchedKeywords []string `json:"matched_keywords"`
	Reply           string   `json:"reply"`
	ReplyHTML       string   `json:"reply_html"`
	ReplySource     string   `json:"reply_source"`
}

// Router builds the chi router. Exposed for tests.
func (g *HTTPGateway) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", g.handleHealth)
	r.Method(http.MethodGet, "/metrics", g.recorder.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/triage", g.handleTriage)
		r.Post("/triage/file", g.handleTriageFile)
	})

	return r
}

// Start starts the HTTP server
func (g *HTTPGateway) Start() error {
	g.server = &http.Server{
		Addr:         g.listenAddr,
		Handler:      g.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	g.logger.Info("HTTP gateway starting", zap.String("address", g.listenAddr))

	go func() {
		if err := g.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			g.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the HTTP server
func (g *HTTPGateway) Stop() error {
	if g.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return g.server.Shutdown(ctx)
}

// ProcessEmail runs one email through the pipeline and records metrics.
func (g *HTTPGateway) ProcessEmail(ctx context.Context, input *core.EmailInput) (*core.TriageResult, error) {
	start := time.Now()
	result := g.service.Process(ctx, input)
	g.recorder.ObserveTriage(
		string(result.Classification.Category),
		string(result.Classification.Bucket),
		string(result.Reply.Source),
		time.Since(start))
	return result, nil
}

func (g *HTTPGateway) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"status":"ok"}`)
}

// handleTriage accepts pasted text as JSON or an HTML form post.
// Empty text is a valid request: it classifies as a very short email
// with no keyword context rather than failing.
func (g *HTTPGateway) handleTriage(w http.ResponseWriter, r *http.Request) {
	var req triageRequest

	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			g.writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			g.writeError(w, http.StatusBadRequest, "invalid form body")
			return
		}
		req.Text = r.PostFormValue("text")
		req.SenderName = r.PostFormValue("sender_name")
		req.SenderEmail = r.PostFormValue("sender_email")
		req.Subject = r.PostFormValue("subject")
	}

	g.triage(w, r, &core.EmailInput{
		Text:        req.Text,
		SenderName:  req.SenderName,
		SenderEmail: req.SenderEmail,
		Subject:     req.Subject,
	})
}

// handleTriageFile accepts a multipart upload and routes the file
// through the text extractor before classification.
func (g *HTTPGateway) handleTriageFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, g.maxUploadBytes)
	if err := r.ParseMultipartForm(g.maxUploadBytes); err != nil {
		g.writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		g.writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	text, err := g.extractor.Extract(file, header.Filename)
	if err != nil {
		g.logger.Warn("Text extraction failed",
			zap.String("filename", header.Filename),
			zap.Error(err))
		g.writeError(w, http.StatusUnprocessableEntity, "could not extract text from file")
		return
	}

	g.triage(w, r, &core.EmailInput{
		Text:        text,
		SenderName:  r.PostFormValue("sender_name"),
		SenderEmail: r.PostFormValue("sender_email"),
		Subject:     r.PostFormValue("subject"),
	})
}

func (g *HTTPGateway) triage(w http.ResponseWriter, r *http.Request, input *core.EmailInput) {
	result, err := g.ProcessEmail(r.Context(), input)
	if err != nil {
		// The pipeline never fails; this branch guards interface changes.
		g.logger.Error("Triage failed", zap.Error(err))
		g.writeError(w, http.StatusInternalServerError, "triage failed")
		return
	}

	cls := result.Classification
	resp := triageResponse{
		Category:        string(cls.Category),
		Score:           cls.Score,
		Confidence:      fmt.Sprintf("%d%%", cls.ConfidencePercent()),
		LengthBucket:    string(cls.Bucket),
		MatchedKeywords: cls.MatchedKeywords,
		Reply:           result.Reply.Text,
		ReplyHTML:       RenderReplyHTML(result.Reply.Text),
		ReplySource:     string(result.Reply.Source),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		g.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (g *HTTPGateway) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
