package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Previewer renders stored Markdown to HTML for display.
// Raw HTML in documents is not passed through.
type Previewer struct {
	md goldmark.Markdown
}

func NewPreviewer() *Previewer {
	return &Previewer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Fragment renders src as an HTML fragment.
func (p *Previewer) Fragment(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

// Page renders src as a standalone HTML document titled title.
func (p *Previewer) Page(title string, src []byte) ([]byte, error) {
	body, err := p.Fragment(src)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(title))
	buf.WriteString("</head>\n<body>\n<article class=\"markdown-body\">\n")
	buf.Write(body)
	buf.WriteString("</article>\n</body>\n</html>\n")
	return buf.Bytes(), nil
}
