package board

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// textFromHTML flattens post markup to plain text. Line breaks and paragraph
// ends become newlines; terminal control characters are dropped.
func textFromHTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return sanitizeForTerminal(s)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "br":
				b.WriteByte('\n')
			case "script", "style":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && n.Data == "p" {
			b.WriteByte('\n')
		}
	}
	walk(doc)
	return sanitizeForTerminal(strings.TrimSpace(b.String()))
}

func sanitizeForTerminal(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
