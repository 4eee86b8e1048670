package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Renderer abstracts HTML to PDF rendering to allow different backends.
type Renderer interface {
	// RenderFile opens a local HTML file and writes the rendered PDF to
	// outputPath. Margins are in CSS pixels.
	RenderFile(ctx context.Context, htmlPath, outputPath string, margins Margins) error
	Close() error
}

// Compile-time interface check.
var _ Renderer = (*rodRenderer)(nil)

// Page dimensions in inches (A4) and the CSS pixel density Chrome assumes.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	pixelsPerInch     = 96.0
)

// rodRenderer renders HTML to PDF with headless Chrome via go-rod.
// Rod automatically downloads Chromium on first run if not found.
// One browser is shared across requests; each render gets its own page.
type rodRenderer struct {
	mu      sync.Mutex
	browser *rod.Browser
	timeout time.Duration
	bin     string
}

// NewRodRenderer creates a rod-backed renderer. bin optionally points at a
// pre-installed browser binary (Docker/containerized environments).
func NewRodRenderer(timeout time.Duration, bin string) Renderer {
	return &rodRenderer{timeout: timeout, bin: bin}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()

	bin := r.bin
	if bin == "" {
		bin = os.Getenv("ROD_BROWSER_BIN")
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || bin != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	return browser, nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderFile opens a local HTML file in headless Chrome and writes the
// rendered A4 PDF to outputPath.
func (r *rodRenderer) RenderFile(ctx context.Context, htmlPath, outputPath string, margins Margins) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + htmlPath})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	reader, err := page.PDF(buildPrintOptions(margins))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	if err := os.WriteFile(outputPath, pdfBuf, 0600); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrPDFGeneration, outputPath, err)
	}
	return nil
}

// buildPrintOptions constructs the PrintToPDF parameters for an A4 page with
// the given pixel margins. Chrome expects inches.
func buildPrintOptions(margins Margins) *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(pxToInches(margins.Top)),
		MarginBottom:    floatPtr(pxToInches(margins.Bottom)),
		MarginLeft:      floatPtr(pxToInches(margins.Left)),
		MarginRight:     floatPtr(pxToInches(margins.Right)),
		PrintBackground: true,
	}
}

// pxToInches converts CSS pixels to inches.
func pxToInches(px float64) float64 {
	return px / pixelsPerInch
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
