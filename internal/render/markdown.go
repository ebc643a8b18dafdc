package render

import (
	"bytes"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
)

var excessiveLinesRe = regexp.MustCompile(`\n{3,}`)

// Export is a rendered document converted to Markdown.
type Export struct {
	Title    string
	Markdown string
}

// MarkdownConverter turns rendered pages into Markdown for export and the
// terminal preview.
type MarkdownConverter struct {
	converter *md.Converter
}

// NewMarkdownConverter creates a converter with GitHub flavored tables.
func NewMarkdownConverter() *MarkdownConverter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &MarkdownConverter{converter: converter}
}

// Convert extracts the document title and converts the main content area.
// Toolbars, scripts, styles and the approval form are dropped.
func (c *MarkdownConverter) Convert(page []byte) (*Export, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}

	title := extractTitle(doc)
	removeNodes(doc, func(n *html.Node) bool {
		switch n.Data {
		case "script", "style", "canvas", "input", "button", "head":
			return true
		}
		return hasClass(n, "no-print")
	})

	content := doc
	if node := findElement(doc, "main"); node != nil {
		content = node
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, content); err != nil {
		return nil, err
	}

	markdown, err := c.converter.ConvertString(buf.String())
	if err != nil {
		return nil, err
	}

	return &Export{Title: title, Markdown: cleanMarkdown(markdown)}, nil
}

// Markdown is a convenience wrapper around a default converter.
func Markdown(page []byte) (string, error) {
	export, err := NewMarkdownConverter().Convert(page)
	if err != nil {
		return "", err
	}
	return export.Markdown, nil
}

func cleanMarkdown(s string) string {
	s = excessiveLinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s) + "\n"
}

func extractTitle(doc *html.Node) string {
	if n := findElement(doc, "title"); n != nil && n.FirstChild != nil {
		return strings.TrimSpace(n.FirstChild.Data)
	}
	return ""
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func removeNodes(n *html.Node, match func(*html.Node) bool) {
	var toRemove []*html.Node
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.ElementNode && match(node) {
			toRemove = append(toRemove, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)

	for _, node := range toRemove {
		if node.Parent != nil {
			node.Parent.RemoveChild(node)
		}
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}
