package gateway

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
)

// extractTextFromMessage pulls the plain-text content out of a parsed
// message. Multipart bodies are walked for text/plain parts; anything
// else falls back to the raw body. The classifier tolerates whatever
// comes out, so failures here are soft.
func extractTextFromMessage(msg *mail.Message) (string, error) {
	contentType := msg.Header.Get("Content-Type")

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		body, err := io.ReadAll(msg.Body)
		if err != nil {
			return "", err
		}
		return string(body), nil
	}

	boundary, ok := params["boundary"]
	if !ok {
		body, err := io.ReadAll(msg.Body)
		if err != nil {
			return "", err
		}
		return string(body), nil
	}

	var text bytes.Buffer
	mr := multipart.NewReader(msg.Body, boundary)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		partType := strings.ToLower(part.Header.Get("Content-Type"))
		if !strings.Contains(partType, "text/plain") {
			// Nested multiparts and attachments are skipped.
			continue
		}

		partBody, err := io.ReadAll(part)
		if err != nil {
			continue
		}
		text.Write(partBody)
		text.WriteString("\n")
	}

	return text.String(), nil
}

// decodeEncodedHeader decodes RFC 2047 encoded header values such as
// non-ASCII subjects.
func decodeEncodedHeader(value string) string {
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}
