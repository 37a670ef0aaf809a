package controller

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"quizdeck_backend/internal/service"
	"quizdeck_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// maxImportSize bounds an uploaded backup payload.
const maxImportSize = 64 << 20

type BackupController struct {
	backupService *service.BackupService
}

func NewBackupController(backupService *service.BackupService) *BackupController {
	return &BackupController{backupService: backupService}
}

// Import godoc
// @Summary Import a test collection backup
// @Description Accepts a bare data.json or a zip archive bundling the
// @Description collection with media files. Merges by title identity.
// @Tags backup
// @Accept mpfd
// @Produce json
// @Param file formData file true "Backup file (.json or .zip)"
// @Success 200 {object} util.Response
// @Router /api/backup/import [post]
func (c *BackupController) Import(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "no file uploaded")
		return
	}
	if fileHeader.Size > maxImportSize {
		util.BadRequest(ctx, "backup file too large")
		return
	}

	name := strings.ToLower(fileHeader.Filename)
	if !strings.HasSuffix(name, ".json") && !strings.HasSuffix(name, ".zip") {
		util.BadRequest(ctx, "expected a .json or .zip file")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	payload, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	report, err := c.backupService.Import(ctx.Request.Context(), payload)
	if err != nil {
		util.FailFromError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// Export godoc
// @Summary Export the collection and all media as a zip archive
// @Tags backup
// @Produce application/zip
// @Success 200 {file} binary
// @Router /api/backup/export [get]
func (c *BackupController) Export(ctx *gin.Context) {
	archive, err := c.backupService.Export(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := fmt.Sprintf("quizdeck-backup-%s.zip", time.Now().Format("20060102-150405"))
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "application/zip", archive)
}
