package server

import (
	"bytes"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/generator"
)

//go:embed landing.md
var landingMarkdown []byte

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>AdCraft AI</title>
</head>
<body>
%s</body>
</html>
`

// PageHandler serves the landing page and health check
type PageHandler struct {
	gen  generator.Generator
	page []byte
}

// NewPageHandler renders the landing page once.
func NewPageHandler(gen generator.Generator) (*PageHandler, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert(landingMarkdown, &buf); err != nil {
		return nil, fmt.Errorf("render landing page: %w", err)
	}
	return &PageHandler{gen: gen, page: []byte(fmt.Sprintf(pageTemplate, buf.String()))}, nil
}

// Index handles GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.page)
}

type healthResponse struct {
	Status    string `json:"status"`
	Generator string `json:"generator"`
}

// Health handles GET /health
func (h *PageHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Generator: h.gen.Name()})
}
