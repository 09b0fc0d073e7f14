package ecoles

import (
	"bytes"
	"iter"
	"mime"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/handiism/exercices-downloader/internal/model"
)

const (
	// cellSelector matches the table cells holding one attachment each.
	cellSelector = "td.attachment-title"

	// linkSelector matches the download link inside a cell.
	linkSelector = "a.attachment-link"
)

var pdfMagic = []byte("%PDF-")

// Parser extracts attachment entries from listing pages.
//
// Listing pages present their documents as table rows; each downloadable
// document sits in a cell like:
//
//	<td class="attachment-title">
//	    <a class="attachment-link" href="/sites/default/files/devoirs/math.pdf">Devoir 1</a>
//	</td>
//
// Example usage:
//
//	parser := NewParser()
//	for entry := range parser.Attachments(pageURL, html) {
//	    fmt.Println(entry.Title, entry.Link)
//	}
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Attachments returns a lazy sequence of the attachment entries found in html.
//
// Links are trimmed and resolved against pageURL. Cells without a link, or
// whose link has no href, are skipped. A page without any matching cell, or
// one that cannot be parsed at all, yields an empty sequence.
func (p *Parser) Attachments(pageURL string, html []byte) iter.Seq[model.Attachment] {
	return func(yield func(model.Attachment) bool) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
		if err != nil {
			return
		}

		doc.Find(cellSelector).EachWithBreak(func(_ int, cell *goquery.Selection) bool {
			link := cell.Find(linkSelector).First()
			if link.Length() == 0 {
				return true
			}

			href, ok := link.Attr("href")
			href = strings.TrimSpace(href)
			if !ok || href == "" {
				return true
			}

			return yield(model.Attachment{
				Title: strings.TrimSpace(link.Text()),
				Link:  ResolveLink(pageURL, href),
			})
		})
	}
}

// ResolveLink resolves href against the page it was found on.
// Hrefs that cannot be parsed are returned unchanged.
func ResolveLink(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// IsDocument reports whether a fetched source is itself a PDF rather than a
// listing page.
//
// The Content-Type header is checked first, then the %PDF- signature, then
// the extension of the URL path.
func IsDocument(sourceURL, contentType string, body []byte) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if mediaType == "application/pdf" {
			return true
		}
		if mediaType == "text/html" || mediaType == "application/xhtml+xml" {
			return false
		}
	}

	if bytes.HasPrefix(bytes.TrimLeft(body, " \t\r\n"), pdfMagic) {
		return true
	}

	u, err := url.Parse(sourceURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(path.Ext(u.Path), ".pdf")
}

// TitleFromURL derives a human title from the file name of a document URL.
//
// Example:
//
//	TitleFromURL("https://example.com/files/concours_9eme_2023_math.pdf") // "concours 9eme 2023 math"
func TitleFromURL(sourceURL string) string {
	name := sourceURL
	if u, err := url.Parse(sourceURL); err == nil {
		name = u.Path
	}

	name = path.Base(name)
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")

	if name == "" || name == "." || name == "/" {
		return "document"
	}
	return name
}
