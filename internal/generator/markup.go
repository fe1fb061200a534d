package generator

import (
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
)

// Markup converts EA notes, which may hold HTML fragments, to markdown.
type Markup struct {
	converter *md.Converter
}

// NewMarkup creates a new Markup converter.
func NewMarkup() *Markup {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &Markup{converter: converter}
}

var blankLines = regexp.MustCompile(`\n{3,}`)

// Convert returns s as markdown. Plain text is returned unchanged apart from
// surrounding whitespace.
func (m *Markup) Convert(s string) string {
	s = strings.TrimSpace(s)
	if !looksLikeHTML(s) {
		return s
	}

	out, err := m.converter.ConvertString(s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(blankLines.ReplaceAllString(out, "\n\n"))
}

// looksLikeHTML reports whether s contains at least one known HTML element.
func looksLikeHTML(s string) bool {
	if !strings.Contains(s, "<") {
		return false
	}

	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			if z.Token().DataAtom != 0 {
				return true
			}
		}
	}
}
