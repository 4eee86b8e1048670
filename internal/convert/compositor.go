package convert

import (
	"bytes"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
)

// Overlays holds the decoded overlay images for one request. Nil slots mean
// the request did not carry that image.
type Overlays struct {
	Header    *DecodedImage
	Footer    *DecodedImage
	Watermark *DecodedImage
}

// fpdfImageType maps a DecodedImage format to the type tag fpdf expects.
func fpdfImageType(f ImageFormat) string {
	if f == FormatJPEG {
		return "JPG"
	}
	return "PNG"
}

// composite imports every page of the source PDF into a fresh document and
// draws the overlays on each one:
//
//   - header band: x=left, top edge flush against the top margin, spanning the
//     page width minus the horizontal margins;
//   - footer band: same width, bottom edge flush against the bottom margin;
//   - watermark: scaled to half its intrinsic size, centered, drawn with the
//     configured opacity.
//
// Geometry is recomputed per page from that page's MediaBox, so documents with
// mixed page sizes get identical per-page placement. The returned document is
// in memory only; serialization is the orchestrator's job.
func composite(pdfBytes []byte, pageCount int, o Overlays, req *Request) (doc *fpdf.Fpdf, err error) {
	// gofpdi panics on malformed input instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: %v", ErrPDFLoad, r)
		}
	}()

	doc = fpdf.New("P", "pt", "", "")
	doc.SetAutoPageBreak(false, 0)

	var headerOpts, footerOpts, watermarkOpts fpdf.ImageOptions
	if o.Header != nil {
		headerOpts = fpdf.ImageOptions{ImageType: fpdfImageType(o.Header.Format)}
		doc.RegisterImageOptionsReader("header", headerOpts, bytes.NewReader(o.Header.Data))
	}
	if o.Footer != nil {
		footerOpts = fpdf.ImageOptions{ImageType: fpdfImageType(o.Footer.Format)}
		doc.RegisterImageOptionsReader("footer", footerOpts, bytes.NewReader(o.Footer.Data))
	}
	if o.Watermark != nil {
		watermarkOpts = fpdf.ImageOptions{ImageType: fpdfImageType(o.Watermark.Format)}
		doc.RegisterImageOptionsReader("watermark", watermarkOpts, bytes.NewReader(o.Watermark.Data))
	}

	m := req.Margins
	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(pdfBytes))

	for pageNo := 1; pageNo <= pageCount; pageNo++ {
		tpl := importer.ImportPageFromStream(doc, &rs, pageNo, "/MediaBox")

		box := importer.GetPageSizes()[pageNo]["/MediaBox"]
		pageW, pageH := box["w"], box["h"]

		doc.AddPageFormat("P", fpdf.SizeType{Wd: pageW, Ht: pageH})
		importer.UseImportedTemplate(doc, tpl, 0, 0, pageW, pageH)

		bandW := pageW - m.Left - m.Right

		if o.Header != nil {
			doc.ImageOptions("header", m.Left, m.Top, bandW, req.HeaderHeight, false, headerOpts, 0, "")
		}
		if o.Footer != nil {
			doc.ImageOptions("footer", m.Left, pageH-m.Bottom-req.FooterHeight, bandW, req.FooterHeight, false, footerOpts, 0, "")
		}
		if o.Watermark != nil {
			w := float64(o.Watermark.Width) * watermarkScale
			h := float64(o.Watermark.Height) * watermarkScale
			doc.SetAlpha(req.Opacity, "Normal")
			doc.ImageOptions("watermark", pageW/2-w/2, pageH/2-h/2, w, h, false, watermarkOpts, 0, "")
			doc.SetAlpha(1, "Normal")
		}
	}

	if docErr := doc.Error(); docErr != nil {
		return nil, fmt.Errorf("compositing pages: %w", docErr)
	}
	return doc, nil
}
