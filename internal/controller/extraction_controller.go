package controller

import (
	"io"

	"quizdeck_backend/internal/service"
	"quizdeck_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// maxAttachedImageSize bounds the optional source image upload.
const maxAttachedImageSize = 8 << 20

type ExtractionController struct {
	extractionService *service.ExtractionService
}

func NewExtractionController(extractionService *service.ExtractionService) *ExtractionController {
	return &ExtractionController{extractionService: extractionService}
}

// ExtractQuestion godoc
// @Summary Extract one question draft from source material
// @Description Runs the two-pass extraction over the supplied text and
// @Description optional image. The result is a draft for human review; it is
// @Description never committed to a test automatically.
// @Tags extraction
// @Accept mpfd
// @Produce json
// @Param source formData string true "Source material text"
// @Param image formData file false "Optional source image"
// @Success 200 {object} util.Response
// @Router /api/extract [post]
func (c *ExtractionController) ExtractQuestion(ctx *gin.Context) {
	source := ctx.PostForm("source")
	if source == "" {
		util.BadRequest(ctx, "source material is required")
		return
	}

	var image []byte
	if fileHeader, err := ctx.FormFile("image"); err == nil {
		if fileHeader.Size > maxAttachedImageSize {
			util.BadRequest(ctx, "image too large")
			return
		}
		f, err := fileHeader.Open()
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		image, err = io.ReadAll(f)
		f.Close()
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	}

	result, err := c.extractionService.ExtractQuestion(ctx.Request.Context(), source, image)
	if err != nil {
		util.FailFromError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
