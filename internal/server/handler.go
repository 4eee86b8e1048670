package server

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/docpress/go-html2pdf/internal/convert"
)

// docxMIME is the only upload content type docxToHtml accepts.
const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Converter is the conversion surface the handlers need. Implemented by
// *convert.Service.
type Converter interface {
	ConvertHTML(ctx context.Context, req convert.Request) ([]byte, error)
	ConvertMarkdown(ctx context.Context, markdown string, req convert.Request) ([]byte, error)
	ConvertDocx(ctx context.Context, filename string, data []byte) (string, error)
}

// Handler serves the conversion endpoints.
type Handler struct {
	svc Converter
	log *zap.Logger
}

// NewHandler creates a Handler.
func NewHandler(svc Converter, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log}
}

// marginsDTO mirrors the request's margins object.
type marginsDTO struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// convertRequest is the JSON body of htmlToPdf and markdownToPdf. Zero
// values are treated as absent and defaulted downstream.
type convertRequest struct {
	HTML     string `json:"html"`
	Markdown string `json:"markdown"`

	Header    string `json:"header"`
	Footer    string `json:"footer"`
	Watermark string `json:"watermark"`

	HeaderHeight float64    `json:"headerHeight"`
	FooterHeight float64    `json:"footerHeight"`
	Margins      marginsDTO `json:"margins"`
	Opacity      float64    `json:"opacity"`

	Title    string `json:"title"`
	Author   string `json:"author"`
	Producer string `json:"producer"`

	Password   string `json:"password"`
	ReturnType int    `json:"returnType"`
}

// toConvertRequest maps the DTO onto the pipeline's request type.
func (r *convertRequest) toConvertRequest() convert.Request {
	return convert.Request{
		HTML:         r.HTML,
		Header:       r.Header,
		Footer:       r.Footer,
		Watermark:    r.Watermark,
		HeaderHeight: r.HeaderHeight,
		FooterHeight: r.FooterHeight,
		Margins: convert.Margins{
			Top:    r.Margins.Top,
			Bottom: r.Margins.Bottom,
			Left:   r.Margins.Left,
			Right:  r.Margins.Right,
		},
		Opacity:  r.Opacity,
		Title:    r.Title,
		Author:   r.Author,
		Producer: r.Producer,
		Password: r.Password,
	}
}

// HTMLToPDF handles POST /convert/htmlToPdf.
func (h *Handler) HTMLToPDF(c *gin.Context) {
	var body convertRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusOK, failure("invalid request body: "+err.Error()))
		return
	}

	pdf, err := h.svc.ConvertHTML(c.Request.Context(), body.toConvertRequest())
	if err != nil {
		h.logFailure("htmlToPdf", err)
		c.JSON(http.StatusOK, failure(err.Error()))
		return
	}

	h.respondPDF(c, pdf, body.ReturnType)
}

// MarkdownToPDF handles POST /convert/markdownToPdf.
func (h *Handler) MarkdownToPDF(c *gin.Context) {
	var body convertRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusOK, failure("invalid request body: "+err.Error()))
		return
	}

	pdf, err := h.svc.ConvertMarkdown(c.Request.Context(), body.Markdown, body.toConvertRequest())
	if err != nil {
		h.logFailure("markdownToPdf", err)
		c.JSON(http.StatusOK, failure(err.Error()))
		return
	}

	h.respondPDF(c, pdf, body.ReturnType)
}

// DocxToHTML handles POST /convert/docxToHtml. The document arrives as a
// multipart upload under the "file" field.
func (h *Handler) DocxToHTML(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusOK, failure("file is missing"))
		return
	}

	// The upload must declare the DOCX MIME type; the filename alone is not
	// trusted.
	if fileHeader.Header.Get("Content-Type") != docxMIME {
		c.JSON(http.StatusOK, failure(convert.ErrUnsupportedUpload.Error()))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusOK, failure("could not read upload: "+err.Error()))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusOK, failure("could not read upload: "+err.Error()))
		return
	}

	html, err := h.svc.ConvertDocx(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		h.logFailure("docxToHtml", err)
		c.JSON(http.StatusOK, failure(err.Error()))
		return
	}

	c.JSON(http.StatusOK, htmlResult(html))
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondPDF answers with base64 JSON by default, or streams the raw PDF as
// an attachment when returnType is non-zero.
func (h *Handler) respondPDF(c *gin.Context, pdf []byte, returnType int) {
	if returnType == 0 {
		c.JSON(http.StatusOK, pdfResult(base64.StdEncoding.EncodeToString(pdf)))
		return
	}

	c.Header("Content-Length", strconv.Itoa(len(pdf)))
	c.Header("Content-Disposition", "attachment; filename=output.pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// logFailure records a pipeline failure with its classification. Validation
// failures are expected traffic and log at info; the rest at error.
func (h *Handler) logFailure(endpoint string, err error) {
	kind := convert.KindOf(err)
	fields := []zap.Field{
		zap.String("endpoint", endpoint),
		zap.String("kind", kind.String()),
		zap.Error(err),
	}
	if kind == convert.FailValidation {
		h.log.Info("conversion rejected", fields...)
		return
	}
	h.log.Error("conversion failed", fields...)
}
