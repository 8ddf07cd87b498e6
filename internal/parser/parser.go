
package parser

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// textSelector is the whitelist of elements whose text feeds classification.
const textSelector = "p,h1,h2,h3,h4,h5,h6,li,span,div"

// Document is the extracted, normalized content of a rendered page.
type Document struct {
	Title     string
	Text      string
	WordCount int
}

type Parser struct{}

func New() *Parser { return &Parser{} }

// Extract parses rendered markup and returns its normalized text. It never
// fails: markup that cannot be read yields an empty Document.
func (p *Parser) Extract(markup string) Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return Document{}
	}
	return extract(doc)
}

// ExtractReader decodes r to UTF-8 using contentType and any <meta charset>
// hint before extracting.
func (p *Parser) ExtractReader(r io.Reader, contentType string) Document {
	data, err := io.ReadAll(r)
	if err != nil && len(data) == 0 {
		return Document{}
	}

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if !utf8.Valid(data) {
			return Document{}
		}
		utf8data = data
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8data))
	if err != nil {
		return Document{}
	}
	return extract(doc)
}

func extract(doc *goquery.Document) Document {
	// script state, css and inert templates are not page text
	doc.Find("script,style,template").Remove()

	// selections come back in document order; nested matches repeat their
	// ancestors' text, which is intended
	var parts []string
	doc.Find(textSelector).Each(func(i int, s *goquery.Selection) {
		parts = append(parts, s.Text())
	})
	text := strings.ToLower(strings.Join(parts, " "))

	return Document{
		Title:     strings.TrimSpace(doc.Find("title").First().Text()),
		Text:      text,
		WordCount: len(strings.Fields(text)),
	}
}
