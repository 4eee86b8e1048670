package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/docpress/go-html2pdf/internal/fileutil"
)

// CommandRunner abstracts command execution to enable testing without real
// subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

// Run executes the command and captures stdout and stderr.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", "", fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", "", fmt.Errorf("starting command: %w", err)
	}

	stderrContent, err := io.ReadAll(stderrPipe)
	if err != nil {
		return "", "", fmt.Errorf("reading stderr: %w", err)
	}

	err = cmd.Wait()
	return stdout.String(), string(stderrContent), err
}

// OfficeConverter converts an office document on disk to HTML.
type OfficeConverter interface {
	// ToHTML converts inputPath and returns the generated HTML. Intermediate
	// files are written to outputDir, which the caller owns and cleans up.
	ToHTML(ctx context.Context, inputPath, outputDir string) (string, error)
}

// Compile-time interface check.
var _ OfficeConverter = (*SofficeConverter)(nil)

// SofficeConverter shells out to the LibreOffice binary. Availability is
// gated on the host platform and on the binary being installed; conversion
// is bounded by a timeout rather than blocking indefinitely.
type SofficeConverter struct {
	Runner  CommandRunner
	Timeout time.Duration

	// Binary overrides the platform-derived soffice path when non-empty.
	Binary string

	goos string
}

// NewSofficeConverter creates a converter with a real command runner.
func NewSofficeConverter(timeout time.Duration) *SofficeConverter {
	return &SofficeConverter{Runner: &ExecRunner{}, Timeout: timeout, goos: runtime.GOOS}
}

// binaryPath returns the soffice path for the host platform.
func (c *SofficeConverter) binaryPath() (string, error) {
	if c.Binary != "" {
		return c.Binary, nil
	}
	goos := c.goos
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "darwin":
		return "/Applications/LibreOffice.app/Contents/MacOS/soffice", nil
	case "linux":
		return "/usr/bin/soffice", nil
	default:
		return "", ErrPlatformUnsupported
	}
}

// ToHTML converts the document at inputPath to HTML with embedded images.
func (c *SofficeConverter) ToHTML(ctx context.Context, inputPath, outputDir string) (string, error) {
	bin, err := c.binaryPath()
	if err != nil {
		return "", err
	}
	if !fileutil.FileExists(bin) {
		return "", ErrOfficeNotFound
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	_, stderr, err := c.Runner.Run(ctx, bin,
		"--headless",
		"--convert-to", "html:HTML (StarWriter):EmbedImages",
		"--outdir", outputDir,
		inputPath,
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("office conversion timed out after %v", c.Timeout)
		}
		return "", fmt.Errorf("converting document: %s: %w", stderr, err)
	}

	htmlPath := filepath.Join(outputDir, fileutil.BaseNameWithoutExt(filepath.Base(inputPath))+".html")
	if !fileutil.FileExists(htmlPath) {
		return "", ErrOfficeOutputMissing
	}

	content, err := os.ReadFile(htmlPath)
	if err != nil {
		return "", fmt.Errorf("reading converted HTML: %w", err)
	}
	return string(content), nil
}
