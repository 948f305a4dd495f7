package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ghostcheck/backend/internal/analysis"
	"ghostcheck/backend/internal/archive"
	apperrors "ghostcheck/backend/pkg/errors"
)

// uploadField is the multipart form field carrying the export zip
const uploadField = "archive"

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Analyze accepts an export archive, analyses it and makes it the current report
func (h *Handler) Analyze(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	header, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Archive exceeds the upload limit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing archive file in field \"" + uploadField + "\""})
		return
	}

	file, err := header.Open()
	if err != nil {
		h.log.Error("Failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer file.Close()

	arc, err := archive.NewReader(header.Filename, file, header.Size)
	if err != nil {
		h.log.Warn("Rejected upload", zap.String("filename", header.Filename), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Upload is not a readable zip archive"})
		return
	}

	report, err := h.analyzer.Analyze(c.Request.Context(), arc)
	if err != nil {
		var batchErr *analysis.BatchError
		if errors.As(err, &batchErr) && apperrors.IsBatchFailure(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":       batchErr.Error(),
				"diagnostics": batchErr.Diagnostics,
			})
			return
		}
		h.log.Error("Failed to analyze archive", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze archive"})
		return
	}

	h.store.Replace(report)
	c.JSON(http.StatusOK, report)
}

// GetReport returns the current report
func (h *Handler) GetReport(c *gin.Context) {
	report, ok := h.store.Current()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No archive has been analyzed yet"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetCollection returns one named collection of the current report
func (h *Handler) GetCollection(c *gin.Context) {
	report, ok := h.store.Current()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No archive has been analyzed yet"})
		return
	}

	name := c.Param("name")
	collection, ok := report.Collection(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Collection not found",
			"available": report.Names(),
		})
		return
	}
	c.JSON(http.StatusOK, collection)
}

// ClearReport drops the current report
func (h *Handler) ClearReport(c *gin.Context) {
	h.store.Clear()
	c.Status(http.StatusNoContent)
}
