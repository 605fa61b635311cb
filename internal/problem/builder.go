package problem

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/widget-api/internal/platform/logger"
)

// ContentType is the media type of problem responses.
const ContentType = "application/problem+json"

// Response is a problem rendered for the wire.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Builder turns problems into HTTP responses. Non-blank types are rewritten
// to a link into the error documentation: {docsBaseURL}/errors#{type}.
type Builder struct {
	docsBaseURL string
}

// NewBuilder creates a Builder that links problem types below docsBaseURL.
func NewBuilder(docsBaseURL string) *Builder {
	return &Builder{docsBaseURL: strings.TrimRight(docsBaseURL, "/")}
}

// TypeURL returns the documentation URL for a problem type. about:blank is
// returned unchanged.
func (b *Builder) TypeURL(typ string) string {
	if typ == TypeBlank {
		return typ
	}
	return fmt.Sprintf("%s/errors#%s", b.docsBaseURL, typ)
}

// Build renders p. It fails only when an extra field cannot be encoded.
func (b *Builder) Build(p *Problem) (*Response, error) {
	payload := p.Payload().with("type", b.TypeURL(p.Type()))

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode problem: %w", err)
	}

	return &Response{
		StatusCode:  p.StatusCode(),
		ContentType: ContentType,
		Body:        body,
	}, nil
}

// Write builds p and writes it to w. Server errors are logged at error
// level, everything else at debug.
func (b *Builder) Write(w http.ResponseWriter, r *http.Request, p *Problem) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	resp, err := b.Build(p)
	if err != nil {
		log.Error("failed to build problem response",
			slog.String("error", err.Error()),
			slog.String("problem_type", p.Type()))
		// Fall back to the bare problem, which always encodes.
		resp, _ = b.Build(MustNew(p.StatusCode(), ""))
	}

	level := slog.LevelDebug
	if p.StatusCode() >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	log.LogAttrs(r.Context(), level, "sending problem response",
		slog.Int("status_code", p.StatusCode()),
		slog.String("problem_type", p.Type()),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write(resp.Body); err != nil {
		log.Error("failed to write problem response", slog.String("error", err.Error()))
	}
}
