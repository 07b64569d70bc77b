package adapter

import (
	"html"
	"io"
	"strings"

	xhtml "golang.org/x/net/html"
)

// extractText converts an HTML or HTML-encoded string to plain text.
// Entities are unescaped first so double-encoded markup is still stripped,
// then text nodes are collected and whitespace is collapsed.
func extractText(content string) string {
	unescaped := html.UnescapeString(content)

	var b strings.Builder
	z := xhtml.NewTokenizer(strings.NewReader(unescaped))
	for {
		tt := z.Next()
		if tt == xhtml.ErrorToken {
			if z.Err() != io.EOF {
				return strings.Join(strings.Fields(unescaped), " ")
			}
			break
		}
		switch tt {
		case xhtml.TextToken:
			b.Write(z.Text())
		case xhtml.StartTagToken, xhtml.EndTagToken, xhtml.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
