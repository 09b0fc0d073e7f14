// Package ecoles parses the attachment listings published on the exercise
// site.
//
// # Listing Pages
//
// A listing page is an HTML table where every cell with class
// "attachment-title" wraps an "attachment-link" anchor:
//
//	parser := ecoles.NewParser()
//	for entry := range parser.Attachments(pageURL, html) {
//	    fmt.Printf("%s -> %s\n", entry.Title, entry.Link)
//	}
//
// The sequence is lazy: cells are visited as the caller ranges over it, and
// ranging stops as soon as the caller breaks.
//
// # Direct Documents
//
// Some catalog URLs point straight at a PDF. IsDocument tells the two cases
// apart and TitleFromURL names such a document after its file name:
//
//	if ecoles.IsDocument(u, resp.ContentType, resp.Body) {
//	    title := ecoles.TitleFromURL(u)
//	}
package ecoles
