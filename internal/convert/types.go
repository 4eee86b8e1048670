package convert

import "fmt"

// Defaults applied during request normalization. Zero values in the incoming
// request are treated as absent, matching the behavior of earlier versions of
// this service.
const (
	DefaultMargin           = 20.0  // px, each side
	DefaultOverlayHeight    = 100.0 // px, header and footer bands
	DefaultWatermarkOpacity = 0.2

	// overlayGap is the fraction of the overlay height kept clear between an
	// overlay band and the page content.
	overlayGap = 0.75

	// watermarkScale shrinks the watermark to half its intrinsic size.
	watermarkScale = 0.5
)

// Margins holds page margins in pixels.
type Margins struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// DefaultMargins returns fully populated default margins.
func DefaultMargins() Margins {
	return Margins{Top: DefaultMargin, Bottom: DefaultMargin, Left: DefaultMargin, Right: DefaultMargin}
}

// Request contains all parameters for one HTML to PDF conversion.
// A Request produced by Normalize is fully defaulted: margins, overlay heights
// and opacity are never zero.
type Request struct {
	HTML string

	// Overlay images as data-URI base64 payloads, empty when absent.
	Header    string
	Footer    string
	Watermark string

	HeaderHeight float64
	FooterHeight float64
	Margins      Margins
	Opacity      float64

	Title    string
	Author   string
	Producer string

	Password string
}

// Normalize returns a fully defaulted copy of raw. The caller's value is
// never mutated. Zero margins, heights and opacity become their defaults.
func Normalize(raw Request) Request {
	req := raw

	if req.Margins.Top == 0 {
		req.Margins.Top = DefaultMargin
	}
	if req.Margins.Bottom == 0 {
		req.Margins.Bottom = DefaultMargin
	}
	if req.Margins.Left == 0 {
		req.Margins.Left = DefaultMargin
	}
	if req.Margins.Right == 0 {
		req.Margins.Right = DefaultMargin
	}
	if req.HeaderHeight == 0 {
		req.HeaderHeight = DefaultOverlayHeight
	}
	if req.FooterHeight == 0 {
		req.FooterHeight = DefaultOverlayHeight
	}
	if req.Opacity == 0 {
		req.Opacity = DefaultWatermarkOpacity
	}

	return req
}

// Validate checks that required fields are present and sane.
func (r *Request) Validate() error {
	if r.HTML == "" {
		return ErrEmptyHTML
	}
	if r.Opacity < 0 || r.Opacity > 1 {
		return fmt.Errorf("%w: %v (must be within 0..1)", ErrInvalidOpacity, r.Opacity)
	}
	return nil
}

// EffectiveMargins returns the margins handed to the rendering engine.
// When a header or footer overlay is present the corresponding margin is
// inflated by the overlay height plus a gap of overlayGap times that height,
// so the rendered content clears the band that will be composited on top:
//
//	effectiveTop = top + headerHeight*(1+overlayGap)
func (r *Request) EffectiveMargins() Margins {
	m := r.Margins
	if r.Header != "" {
		m.Top += r.HeaderHeight + overlayGap*r.HeaderHeight
	}
	if r.Footer != "" {
		m.Bottom += r.FooterHeight + overlayGap*r.FooterHeight
	}
	return m
}
