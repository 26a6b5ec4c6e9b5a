package exports

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bakerbass/guitarchops/api/types"
	"github.com/bakerbass/guitarchops/internal/services/exports"
)

// GetDownload streams a previously exported segment file
// @Summary Download an export
// @Description Streams an exported segment WAV by filename
// @Tags exports
// @Produce audio/wav
// @Param filename path string true "Export filename"
// @Success 200 {file} binary
// @Failure 404 {object} types.ErrorResponse "Export not found"
// @Router /api/v1/exports/{filename} [get]
func GetDownload(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		export, err := deps.ExportService.GetByFilename(ctx, c.Param("filename"))
		if err != nil {
			if errors.Is(err, exports.ErrExportNotFound) {
				c.JSON(http.StatusNotFound, types.Error("export not found"))
			} else {
				c.JSON(http.StatusInternalServerError, types.Error("failed to look up export"))
			}
			return
		}

		reader, err := deps.ExportService.Open(ctx, export)
		if err != nil {
			if errors.Is(err, exports.ErrExportNotFound) {
				c.JSON(http.StatusNotFound, types.Error("export file missing"))
			} else {
				c.JSON(http.StatusInternalServerError, types.Error("failed to open export"))
			}
			return
		}
		defer reader.Close()

		c.Header("Content-Type", "audio/wav")
		c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
		c.Status(http.StatusOK)
		// Once the body has started there is no way to report a copy
		// failure to the client.
		_, _ = io.Copy(c.Writer, reader)
	}
}
