package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting"
	"github.com/yuin/goldmark/extension"

	"github.com/withgalaxy/trackly/pkg/app"
	"github.com/withgalaxy/trackly/pkg/config"
	"github.com/withgalaxy/trackly/pkg/router"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
		),
	),
)

// RoutesMarkdown describes the route table, its lint findings and the active
// configuration.
func RoutesMarkdown(pages []app.Page, cfg *config.Config) (string, error) {
	var sb strings.Builder

	sb.WriteString("# Routes\n\n")
	sb.WriteString("Patterns are tried top to bottom; the first match wins.\n\n")
	sb.WriteString("| # | Pattern | Page | Title |\n")
	sb.WriteString("|---|---------|------|-------|\n")
	patterns := make([]string, len(pages))
	for i, p := range pages {
		patterns[i] = p.Pattern
		fmt.Fprintf(&sb, "| %d | `%s` | %s | %s |\n", i+1, p.Pattern, p.Name, p.Title)
	}

	sb.WriteString("\n## Lint\n\n")
	findings := router.Lint(patterns)
	if len(findings) == 0 {
		sb.WriteString("No findings.\n")
	}
	for _, f := range findings {
		fmt.Fprintf(&sb, "- **%s** `%s`: %s\n", f.Severity, f.Pattern, f.Message)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	sb.WriteString("\n## Configuration\n\n```toml\n")
	sb.Write(buf.Bytes())
	sb.WriteString("```\n")

	return sb.String(), nil
}

func renderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

func (s *DevServer) serveRoutes(w http.ResponseWriter, r *http.Request) {
	md, err := RoutesMarkdown(s.Pages, s.Config)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	body, err := renderMarkdown(md)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!doctype html>\n<html>\n<head><meta charset=\"utf-8\"><title>%s routes</title></head>\n<body>\n%s</body>\n</html>\n",
		s.Config.App.Title, body)
}
