package convert

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// decodeOverlays decodes each overlay slot present on the request. An
// unrecognized image format produces the slot-specific message the API
// contract promises ("Cannot recognise header image type").
func decodeOverlays(req *Request) (Overlays, error) {
	var o Overlays

	slots := []struct {
		name    string
		payload string
		dst     **DecodedImage
	}{
		{"header", req.Header, &o.Header},
		{"footer", req.Footer, &o.Footer},
		{"watermark", req.Watermark, &o.Watermark},
	}

	for _, s := range slots {
		if s.payload == "" {
			continue
		}
		img, err := DecodeOverlay(s.payload)
		if err != nil {
			if errors.Is(err, ErrUnknownImageFormat) {
				return Overlays{}, failf(FailValidation, "Cannot recognise %s image type", s.name)
			}
			return Overlays{}, fail(FailValidation, fmt.Errorf("decoding %s image: %w", s.name, err))
		}
		*s.dst = img
	}

	return o, nil
}

// postProcess composites the request's overlays and metadata onto the
// rendered PDF and writes the result next to it as <base>_output.pdf. The
// rendered file is never modified in place. Returns the output path.
func postProcess(renderedPath string, req *Request) (string, error) {
	// Validates the file is a readable PDF before any page import, so
	// corrupt renders fail with a clear error instead of a parser panic.
	pageCount, err := api.PageCountFile(renderedPath)
	if err != nil {
		return "", fail(FailPostProcessing, fmt.Errorf("%w: %v", ErrPDFLoad, err))
	}

	overlays, err := decodeOverlays(req)
	if err != nil {
		return "", err
	}

	pdfBytes, err := os.ReadFile(renderedPath)
	if err != nil {
		return "", fail(FailIO, fmt.Errorf("reading rendered PDF: %w", err))
	}

	doc, err := composite(pdfBytes, pageCount, overlays, req)
	if err != nil {
		return "", fail(FailPostProcessing, err)
	}

	applyMetadata(doc, req.Title, req.Author, req.Producer)

	outputPath := strings.TrimSuffix(renderedPath, ".pdf") + "_output.pdf"
	if err := doc.OutputFileAndClose(outputPath); err != nil {
		return "", fail(FailPostProcessing, fmt.Errorf("writing composited PDF: %w", err))
	}

	return outputPath, nil
}
