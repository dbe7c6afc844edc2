package gateway

import (
	"html"
	"strings"
)

// RenderReplyHTML makes a reply safe to drop into an HTML page: the
// text is escaped first, then paragraph breaks become <p> and single
// line breaks become <br>, so no raw control characters or markup from
// the generated text survive.
func RenderReplyHTML(reply string) string {
	escaped := html.EscapeString(reply)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\n\n", "<p>")
	return strings.ReplaceAll(escaped, "\n", "<br>")
}
