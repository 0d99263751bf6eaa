package convert

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
)

var excessiveLinesRe = regexp.MustCompile(`\n{3,}`)

// HTMLConverter converts HTML to Markdown, keeping tables as GitHub pipe tables.
type HTMLConverter struct {
	converter *md.Converter
}

func NewHTMLConverter() *HTMLConverter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &HTMLConverter{converter: converter}
}

func (c *HTMLConverter) Convert(r io.Reader, filename string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	// Convert only <body> so <head> text never leaks into the output.
	var content bytes.Buffer
	if b := findBody(doc); b != nil {
		for n := b.FirstChild; n != nil; n = n.NextSibling {
			if err := html.Render(&content, n); err != nil {
				return "", fmt.Errorf("render html: %w", err)
			}
		}
	} else {
		content.Write(src)
	}

	body, err := c.converter.ConvertString(content.String())
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}
	body = strings.TrimSpace(excessiveLinesRe.ReplaceAllString(body, "\n\n"))

	// Lead with the <title> unless the body already opens with a heading.
	if strings.HasPrefix(body, "#") {
		return body, nil
	}
	t := findTitle(doc)
	if t == "" {
		t = title(filename)
	}
	if body == "" {
		return "# " + t, nil
	}
	return "# " + t + "\n\n" + body, nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
