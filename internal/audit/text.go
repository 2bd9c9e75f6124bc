package audit

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const minContentRunes = 100

// PlainText renders an HTML document or fragment as whitespace-collapsed text.
// Scripts, styles and page chrome are dropped. A main or article element is
// preferred over the whole body when it carries enough text.
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return collapse(html)
	}

	doc.Find("script, style, noscript, template, nav, header, footer, aside, form").Remove()

	for _, sel := range []string{"article", "main", "[role=main]"} {
		if text := collapse(doc.Find(sel).First().Text()); utf8.RuneCountInString(text) >= minContentRunes {
			return text
		}
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		return collapse(doc.Text())
	}
	return collapse(body.Text())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
