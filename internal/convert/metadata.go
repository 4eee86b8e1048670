package convert

import "codeberg.org/go-pdf/fpdf"

// DefaultProducer is written into every output PDF unless the caller supplies
// a producer. It deliberately names no underlying tooling.
const DefaultProducer = "Docpress PDF Generator"

// applyMetadata sets document metadata on the composited PDF. Title and
// Author are only written when present; absent values are left untouched.
// Producer is always set so the identity of the PDF tooling never leaks.
func applyMetadata(doc *fpdf.Fpdf, title, author, producer string) {
	if producer == "" {
		producer = DefaultProducer
	}
	doc.SetProducer(producer, true)

	if title != "" {
		doc.SetTitle(title, true)
	}
	if author != "" {
		doc.SetAuthor(author, true)
	}
}
