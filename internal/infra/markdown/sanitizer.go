// File: internal/infra/markdown/sanitizer.go
package markdown

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Sanitizer converts model-generated markdown to HTML restricted to an
// explicit allow-list. It is the security boundary for every piece of
// model-authored or model-echoed text before it reaches a client;
// disallowed markup is removed outright, never just escaped.
type Sanitizer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	policy := bluemonday.NewPolicy()
	policy.AllowElements(
		"p", "br", "strong", "em", "b", "i",
		"ul", "ol", "li",
		"h1", "h2", "h3", "h4",
		"table", "tr", "td", "th", "thead", "tbody",
		"code", "pre", "blockquote",
	)
	policy.AllowAttrs("href", "title").OnElements("a")

	return &Sanitizer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table),
			// Raw HTML must flow through the renderer so the policy can
			// strip it; goldmark would otherwise omit it silently and
			// adversarial markup would never reach the allow-list.
			goldmark.WithRendererOptions(html.WithHardWraps(), html.WithUnsafe()),
		),
		policy: policy,
	}
}

// Render converts markdown to safe HTML. Empty input yields empty output.
func (s *Sanitizer) Render(text string) string {
	if text == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(text), &buf); err != nil {
		// Conversion only fails on writer errors, which a Buffer never
		// produces; still, sanitize the raw text rather than drop it.
		return s.policy.Sanitize(text)
	}
	return s.policy.Sanitize(buf.String())
}
