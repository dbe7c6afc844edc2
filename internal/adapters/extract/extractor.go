package extract

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Extractor turns uploaded resources into plain text. It understands
// plain text files and PDFs; anything else is rejected before the
// pipeline ever sees it.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates a new file text extractor
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract reads the resource and returns its text content. The
// filename's extension selects the decoder.
func (e *Extractor) Extract(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".text", ".md", "":
		return string(data), nil
	case ".pdf":
		return e.extractPDF(data)
	default:
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
}

func (e *Extractor) extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var text bytes.Buffer
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("Failed to extract text from PDF page",
				zap.Int("page", i),
				zap.Error(err))
			continue
		}
		text.WriteString(content)
		text.WriteString("\n")
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("no extractable text in PDF")
	}
	return text.String(), nil
}
