package convert

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
)

// ImageFormat identifies the pixel format of a decoded overlay image.
type ImageFormat string

// Supported overlay image formats.
const (
	FormatPNG  ImageFormat = "png"
	FormatJPEG ImageFormat = "jpeg"
)

// DecodedImage is a normalized overlay image ready for embedding.
type DecodedImage struct {
	Format ImageFormat
	Data   []byte
	Width  int
	Height int
}

var dataURIPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// detectImageFormat inspects the declared data-URI prefix of a base64 image
// payload. Only PNG and JPEG are recognized; anything else is rejected.
func detectImageFormat(payload string) (ImageFormat, bool) {
	switch {
	case strings.HasPrefix(payload, "data:image/png"):
		return FormatPNG, true
	case strings.HasPrefix(payload, "data:image/jpeg"), strings.HasPrefix(payload, "data:image/jpg"):
		return FormatJPEG, true
	}
	return "", false
}

// DecodeOverlay decodes a data-URI base64 image payload into a normalized
// DecodedImage. The raster is decoded and re-encoded once so that exotic
// encoder variants (interlaced PNG, CMYK JPEG) become plain embeddable data.
// No filesystem access.
func DecodeOverlay(payload string) (*DecodedImage, error) {
	format, ok := detectImageFormat(payload)
	if !ok {
		return nil, ErrUnknownImageFormat
	}

	raw, err := base64.StdEncoding.DecodeString(dataURIPrefix.ReplaceAllString(payload, ""))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	var buf bytes.Buffer
	encodeFormat := imaging.PNG
	if format == FormatJPEG {
		encodeFormat = imaging.JPEG
	}
	if err := imaging.Encode(&buf, img, encodeFormat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	bounds := img.Bounds()
	return &DecodedImage{
		Format: format,
		Data:   buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
