package convert

import (
	"errors"
	"fmt"
)

// Sentinel errors for conversion operations.
var (
	ErrEmptyHTML          = errors.New("html is missing")
	ErrEmptyMarkdown      = errors.New("markdown is missing")
	ErrPDFNotGenerated    = errors.New("PDF not generated")
	ErrUnknownImageFormat = errors.New("unrecognized image type")
	ErrImageDecode        = errors.New("image decode failed")
	ErrPDFLoad            = errors.New("failed to load PDF")
	ErrEncryptionOutput   = errors.New("encrypted PDF was not produced")
	ErrBrowserConnect     = errors.New("failed to connect to browser")
	ErrPageCreate         = errors.New("failed to create browser page")
	ErrPageLoad           = errors.New("failed to load page")
	ErrPDFGeneration      = errors.New("PDF generation failed")
	ErrUnsupportedUpload  = errors.New("unsupported upload type")
	ErrInvalidOpacity     = errors.New("invalid watermark opacity")

	// Office conversion errors. Messages are part of the external API and
	// are returned verbatim to callers.
	ErrPlatformUnsupported = errors.New("Platform not yet supported")
	ErrOfficeNotFound      = errors.New("LibreOffice not found.")
	ErrOfficeOutputMissing = errors.New("Output File could not be generated.")
)

// FailureKind classifies pipeline failures so the HTTP layer can shape the
// response without matching on message strings.
type FailureKind int

const (
	FailValidation FailureKind = iota
	FailRendering
	FailPostProcessing
	FailEncryption
	FailPlatform
	FailIO
)

// String returns a short tag for logs.
func (k FailureKind) String() string {
	switch k {
	case FailValidation:
		return "validation"
	case FailRendering:
		return "rendering"
	case FailPostProcessing:
		return "post-processing"
	case FailEncryption:
		return "encryption"
	case FailPlatform:
		return "platform"
	case FailIO:
		return "io"
	default:
		return "unknown"
	}
}

// PipelineError is the single error shape crossing the pipeline boundary.
// Every stage failure is wrapped into one; nothing else escapes the service.
type PipelineError struct {
	Kind FailureKind
	err  error
}

func (e *PipelineError) Error() string { return e.err.Error() }

func (e *PipelineError) Unwrap() error { return e.err }

// failf wraps an error with a failure kind.
func failf(kind FailureKind, format string, args ...any) *PipelineError {
	return &PipelineError{Kind: kind, err: fmt.Errorf(format, args...)}
}

// fail wraps an existing error with a failure kind, preserving an existing
// PipelineError's kind so inner stages keep their classification.
func fail(kind FailureKind, err error) *PipelineError {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe
	}
	return &PipelineError{Kind: kind, err: err}
}

// KindOf reports the failure kind of err, or FailPostProcessing for plain errors.
func KindOf(err error) FailureKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return FailPostProcessing
}
