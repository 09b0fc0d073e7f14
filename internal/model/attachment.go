package model

// Attachment is a titled downloadable link extracted from a listing page.
type Attachment struct {
	// Title is the human readable link text.
	Title string

	// Link is the absolute download URL.
	Link string

	// Content holds the document bytes when they were already fetched,
	// e.g. when the source URL itself served the PDF.
	Content []byte
}

// Prefetched reports whether the attachment body is already in memory.
func (a Attachment) Prefetched() bool {
	return a.Content != nil
}
