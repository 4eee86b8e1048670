package convert

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/docpress/go-html2pdf/internal/fileutil"
)

// Encryptor password-protects a PDF, producing a new file distinct from the
// input. Implementations must never overwrite the input in place.
type Encryptor interface {
	Encrypt(password, inputPath, outputPath string) error
}

// Compile-time interface check.
var _ Encryptor = (*pdfcpuEncryptor)(nil)

// pdfcpuEncryptor wraps pdfcpu's AES-256 encryption. Restrictions are fixed
// to "no modification, no content extraction".
type pdfcpuEncryptor struct{}

// NewEncryptor returns the production encryptor.
func NewEncryptor() Encryptor {
	return &pdfcpuEncryptor{}
}

// Encrypt writes an AES-256 encrypted copy of inputPath to outputPath.
// The output file's existence is verified explicitly: the underlying tool
// reporting success is not trusted on its own.
func (e *pdfcpuEncryptor) Encrypt(password, inputPath, outputPath string) error {
	conf := model.NewAESConfiguration(password, password, 256)
	conf.Permissions = model.PermissionsNone

	if err := api.EncryptFile(inputPath, outputPath, conf); err != nil {
		return fmt.Errorf("encrypting PDF: %w", err)
	}

	if !fileutil.FileExists(outputPath) {
		return ErrEncryptionOutput
	}
	return nil
}
