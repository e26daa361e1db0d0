package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slotbook/slotbook-api/internal/service"
	"github.com/slotbook/slotbook-api/pkg/response"
)

type exportService interface {
	Render(ctx context.Context, scheduleID, format string) (*service.ExportFile, error)
}

// ExportHandler streams a schedule's agenda as a downloadable file.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Export godoc
// @Summary Export a schedule's agenda
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Schedule slug"
// @Param format query string false "Export format (csv or pdf, default csv)"
// @Success 200 {file} file
// @Router /schedules/{id}/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	file, err := h.exports.Render(c.Request.Context(), c.Param("id"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
