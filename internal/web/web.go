// Package web holds the embedded pages served by the HTTP server.
package web

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// IndexHTML is the translator chat page.
//
//go:embed static/index.html
var IndexHTML string

// AboutMarkdown is the source of the About page.
//
//go:embed static/about.md
var AboutMarkdown []byte

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { font-family: system-ui, sans-serif; background: #1b1b1b; color: #f2f2f2; margin: 0; }
    main { max-width: 760px; margin: 0 auto; padding: 1rem; }
    a, h1, h2 { color: #65ccb8; }
    table { border-collapse: collapse; }
    td, th { border: 1px solid #444; padding: .3rem .6rem; }
  </style>
</head>
<body>
  <main>
    <p><a href="/">&larr; Translator</a></p>
    {{.Body}}
  </main>
</body>
</html>
`))

// RenderMarkdownPage renders markdown content as a complete HTML page.
// The page title is the first level-1 heading, or fallbackTitle if there is none.
func RenderMarkdownPage(content []byte, fallbackTitle string) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Table),
	)

	doc := md.Parser().Parse(text.NewReader(content))
	title := firstHeading(doc, content)
	if title == "" {
		title = fallbackTitle
	}

	var body bytes.Buffer
	if err := md.Renderer().Render(&body, content, doc); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	var page bytes.Buffer
	err := pageTemplate.Execute(&page, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return page.String(), nil
}

// firstHeading returns the text of the first level-1 heading in doc.
func firstHeading(doc ast.Node, source []byte) string {
	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 1 {
			return ast.WalkContinue, nil
		}

		var sb strings.Builder
		for c := heading.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				sb.Write(t.Segment.Value(source))
			}
		}
		title = strings.TrimSpace(sb.String())
		return ast.WalkStop, nil
	})
	return title
}
