package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/docpress/go-html2pdf/internal/fileutil"
)

// Defaults for service configuration.
const (
	defaultWorkDir       = "./files"
	defaultRenderTimeout = 60 * time.Second
	defaultOfficeTimeout = 60 * time.Second
)

// serviceConfig holds tunable service settings.
type serviceConfig struct {
	workDir       string
	renderTimeout time.Duration
	officeTimeout time.Duration
	browserBin    string
}

// Option configures a Service.
type Option func(*Service)

// WithWorkDir sets the base directory for per-request scratch workspaces.
func WithWorkDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.cfg.workDir = dir
		}
	}
}

// WithRenderTimeout sets the maximum duration for a browser render.
func WithRenderTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.cfg.renderTimeout = d
		}
	}
}

// WithOfficeTimeout sets the maximum duration for an office document conversion.
func WithOfficeTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.cfg.officeTimeout = d
		}
	}
}

// WithBrowserBin overrides the headless browser binary path.
func WithBrowserBin(bin string) Option {
	return func(s *Service) { s.cfg.browserBin = bin }
}

// WithRenderer injects a custom renderer (e.g., for tests).
func WithRenderer(r Renderer) Option {
	return func(s *Service) { s.renderer = r }
}

// WithEncryptor injects a custom encryptor.
func WithEncryptor(e Encryptor) Option {
	return func(s *Service) { s.encryptor = e }
}

// WithOfficeConverter injects a custom office document converter.
func WithOfficeConverter(o OfficeConverter) Option {
	return func(s *Service) { s.office = o }
}

// WithMarkdownConverter injects a custom markdown converter.
func WithMarkdownConverter(m MarkdownConverter) Option {
	return func(s *Service) { s.markdown = m }
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// Service orchestrates the document conversion pipelines.
type Service struct {
	cfg       serviceConfig
	renderer  Renderer
	encryptor Encryptor
	office    OfficeConverter
	markdown  MarkdownConverter
	log       *zap.Logger
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithWorkDir, WithRenderTimeout).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			workDir:       defaultWorkDir,
			renderTimeout: defaultRenderTimeout,
			officeTimeout: defaultOfficeTimeout,
		},
		encryptor: NewEncryptor(),
		markdown:  NewMarkdownConverter(),
		log:       zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create the browser renderer if not injected (e.g., by tests).
	if s.renderer == nil {
		s.renderer = NewRodRenderer(s.cfg.renderTimeout, s.cfg.browserBin)
	}
	if s.office == nil {
		s.office = NewSofficeConverter(s.cfg.officeTimeout)
	}

	return s
}

// Close releases resources (headless browser).
func (s *Service) Close() error {
	if s.renderer != nil {
		return s.renderer.Close()
	}
	return nil
}

// ConvertHTML runs the full HTML-to-PDF pipeline and returns the final PDF
// bytes. Every failure comes back as a *PipelineError; nothing panics and no
// intermediate file survives the call, success or not.
func (s *Service) ConvertHTML(ctx context.Context, raw Request) ([]byte, error) {
	req := Normalize(raw)
	if err := req.Validate(); err != nil {
		return nil, fail(FailValidation, err)
	}

	ws, err := NewWorkspace(s.cfg.workDir)
	if err != nil {
		return nil, fail(FailIO, err)
	}
	defer s.cleanup(ws)

	htmlPath := ws.Path("input.html")
	if err := os.WriteFile(htmlPath, []byte(req.HTML), 0600); err != nil {
		return nil, fail(FailIO, fmt.Errorf("writing input HTML: %w", err))
	}

	renderedPath := ws.Path("rendered.pdf")
	s.log.Debug("rendering page",
		zap.String("workspace", ws.Dir()),
		zap.Bool("header", req.Header != ""),
		zap.Bool("footer", req.Footer != ""),
		zap.Bool("watermark", req.Watermark != ""),
	)
	if err := s.renderer.RenderFile(ctx, htmlPath, renderedPath, req.EffectiveMargins()); err != nil {
		return nil, fail(FailRendering, err)
	}
	if !fileutil.FileExists(renderedPath) {
		return nil, fail(FailRendering, ErrPDFNotGenerated)
	}

	outputPath, err := postProcess(renderedPath, &req)
	if err != nil {
		return nil, fail(FailPostProcessing, err)
	}
	if !fileutil.FileExists(outputPath) {
		return nil, fail(FailPostProcessing, ErrPDFNotGenerated)
	}

	finalPath := outputPath
	if req.Password != "" {
		encryptedPath := ws.Path("encrypted.pdf")
		if err := s.encryptor.Encrypt(req.Password, outputPath, encryptedPath); err != nil {
			return nil, fail(FailEncryption, err)
		}
		// Never trust the encryptor's return alone.
		if !fileutil.FileExists(encryptedPath) {
			return nil, fail(FailEncryption, ErrEncryptionOutput)
		}
		finalPath = encryptedPath
	}

	pdfBytes, err := os.ReadFile(finalPath)
	if err != nil {
		return nil, fail(FailIO, fmt.Errorf("reading final PDF: %w", err))
	}
	return pdfBytes, nil
}

// ConvertMarkdown converts a markdown payload, with optional YAML front
// matter, to PDF by rendering it to HTML first and then delegating to
// ConvertHTML. Front matter title, author and CSS apply when the request
// does not set them.
func (s *Service) ConvertMarkdown(ctx context.Context, markdown string, raw Request) ([]byte, error) {
	if markdown == "" {
		return nil, fail(FailValidation, ErrEmptyMarkdown)
	}

	fm, body, err := SplitFrontMatter(markdown)
	if err != nil {
		return nil, fail(FailValidation, err)
	}

	htmlContent, err := s.markdown.ToHTML(ctx, body)
	if err != nil {
		return nil, fail(FailRendering, err)
	}
	if fm.CSS != "" {
		htmlContent = InjectCSS(htmlContent, fm.CSS)
	}

	raw.HTML = htmlContent
	if raw.Title == "" {
		raw.Title = fm.Title
	}
	if raw.Author == "" {
		raw.Author = fm.Author
	}

	return s.ConvertHTML(ctx, raw)
}

// ConvertDocx converts an uploaded DOCX document to HTML with embedded
// images. The returned string is the complete HTML document.
func (s *Service) ConvertDocx(ctx context.Context, filename string, data []byte) (string, error) {
	name, err := fileutil.SanitizeFilename(filename)
	if err != nil {
		return "", fail(FailValidation, err)
	}

	ws, err := NewWorkspace(s.cfg.workDir)
	if err != nil {
		return "", fail(FailIO, err)
	}
	defer s.cleanup(ws)

	inputPath := ws.Path(name)
	if err := os.WriteFile(inputPath, data, 0600); err != nil {
		return "", fail(FailIO, fmt.Errorf("writing uploaded document: %w", err))
	}

	s.log.Debug("converting document", zap.String("filename", name))
	htmlContent, err := s.office.ToHTML(ctx, inputPath, ws.Dir())
	if err != nil {
		if errors.Is(err, ErrPlatformUnsupported) || errors.Is(err, ErrOfficeNotFound) {
			return "", fail(FailPlatform, err)
		}
		return "", fail(FailRendering, err)
	}
	return htmlContent, nil
}

// cleanup removes a workspace and logs (but does not propagate) failures.
func (s *Service) cleanup(ws *Workspace) {
	if err := ws.Cleanup(); err != nil {
		s.log.Warn("workspace cleanup failed",
			zap.String("dir", ws.Dir()),
			zap.Error(err),
		)
	}
}
