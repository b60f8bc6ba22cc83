package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/hcprofile"
	"golang.org/x/net/html"
)

// Bullet prefixes list items in converted text.
const Bullet = "• "

// blockElements start and end on their own line.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "details": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "header": true, "hr": true, "main": true,
	"nav": true, "ol": true, "p": true, "pre": true, "section": true,
	"summary": true, "table": true, "tr": true, "ul": true,
}

// Ensure TextConverter implements hcprofile.Converter at compile time.
var _ hcprofile.Converter = (*TextConverter)(nil)

// TextConverter flattens HTML into plain text, one block element per line.
// List items are prefixed with Bullet.
type TextConverter struct{}

// NewTextConverter creates a new TextConverter.
func NewTextConverter() *TextConverter {
	return &TextConverter{}
}

// Convert returns the visible text of the HTML.
func (c *TextConverter) Convert(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", hcprofile.Errorf(hcprofile.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", hcprofile.Errorf(hcprofile.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find(invisibleSelector).Remove()
	doc.Find("head").Remove()

	var b strings.Builder
	for _, n := range doc.Nodes {
		writeText(&b, n)
	}
	return normalizeText(b.String()), nil
}

// writeText appends the text below n, breaking lines around block elements.
func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		switch {
		case n.Data == "br":
			b.WriteString("\n")
			return
		case n.Data == "td" || n.Data == "th":
			b.WriteString(" ")
		case n.Data == "li":
			b.WriteString("\n" + Bullet)
		case blockElements[n.Data]:
			b.WriteString("\n")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}

	if n.Type == html.ElementNode && blockElements[n.Data] {
		b.WriteString("\n")
	}
}

// normalizeText collapses whitespace inside lines and squeezes runs of
// blank lines into one.
func normalizeText(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" || line == strings.TrimSpace(Bullet) {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
