package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Cheap markup sniff; good enough for notes pasted from email or CRM
var tagRe = regexp.MustCompile(`(?s)</?[a-zA-Z][^>]*>`)

// Flatten reduces pasted HTML to its visible text so the extractors see
// plain prose. Text without markup passes through unchanged.
func Flatten(text string) string {
	if !tagRe.MatchString(text) {
		return text
	}

	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return text
	}

	return strings.TrimSpace(visibleText(doc))
}

// visibleText extracts text nodes, skipping scripts/styles
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}
