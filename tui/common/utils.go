package common

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/chantv/domain"
)

const previewRunes = 50

// CardTitle is the subject, else the humanised semantic URL, else "Thread #N".
func CardTitle(t domain.Thread) string {
	if s := strings.TrimSpace(t.Subject); s != "" {
		return s
	}
	if slug := strings.TrimSpace(t.SemanticURL); slug != "" {
		words := strings.ReplaceAll(slug, "-", " ")
		r, size := utf8.DecodeRuneInString(words)
		return string(unicode.ToUpper(r)) + words[size:]
	}
	return fmt.Sprintf("Thread #%d", t.No)
}

// CardContent is the reply count followed by a short comment preview.
func CardContent(t domain.Thread) string {
	content := fmt.Sprintf("Replies: %d", t.Replies)
	comment := strings.Join(strings.Fields(t.Comment), " ")
	if comment == "" {
		return content
	}
	runes := []rune(comment)
	if len(runes) > previewRunes {
		comment = string(runes[:previewRunes]) + "..."
	}
	return content + " • " + comment
}

// Truncate shortens s to width terminal cells, marking the cut with "…".
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

func joinDot(parts []string) string {
	return strings.Join(parts, " • ")
}
