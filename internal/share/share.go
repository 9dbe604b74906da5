// Package share covers everything that happens when a portfolio leaves the
// editor: the public link, social share intents, the export intent, and the
// contact form on the shared page.
package share

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// NewToken returns the random path segment of a session's public link.
func NewToken() string {
	return uuid.NewString()
}

// Link builds the public URL for a token.
func Link(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/p/" + token
}

// Intents are the prefilled share URLs offered on the export page.
type Intents struct {
	Twitter  string `json:"twitter"`
	LinkedIn string `json:"linkedin"`
	Email    string `json:"email"`
}

func IntentsFor(link string) Intents {
	text := "Check out my portfolio: " + link
	return Intents{
		Twitter:  "https://twitter.com/intent/tweet?text=" + url.QueryEscape(text),
		LinkedIn: "https://linkedin.com/sharing/share-offsite/?url=" + url.QueryEscape(link),
		Email:    "mailto:?subject=" + url.PathEscape("My Portfolio") + "&body=" + url.PathEscape(text),
	}
}

// PDFIntent records that an export was requested. No document is produced.
func PDFIntent(logger *slog.Logger, template string) {
	logger.Info("pdf export requested", "template", template)
}
