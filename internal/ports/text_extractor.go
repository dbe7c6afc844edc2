package ports

import (
	"io"
)

// TextExtractor turns an uploaded resource into plain text. The core
// does not care where the text came from; gateways use an extractor
// before handing the text to the pipeline.
type TextExtractor interface {
	// Extract reads the named resource and returns its text content.
	Extract(r io.Reader, filename string) (string, error)
}
