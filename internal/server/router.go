package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/docpress/go-html2pdf/internal/config"
)

// NewRouter wires the conversion endpoints onto a gin engine.
func NewRouter(cfg *config.Config, h *Handler, log *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(CORS())
	r.Use(BodyLimit(cfg.HTTP.MaxBodyBytes))

	r.GET("/health", h.Health)

	convertGroup := r.Group("/convert")
	{
		convertGroup.POST("/htmlToPdf", h.HTMLToPDF)
		convertGroup.POST("/markdownToPdf", h.MarkdownToPDF)
		convertGroup.POST("/docxToHtml", h.DocxToHTML)
	}

	return r
}
