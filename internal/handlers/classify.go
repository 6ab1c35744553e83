package handlers

import (
	"context"
	"net/http"
	"time"

	apierrors "github.com/ecosort/waste-management-api/internal/errors"
	"github.com/ecosort/waste-management-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ClassifyHandler proxies waste images to the classification model.
type ClassifyHandler struct {
	classifierService *services.ClassifierService
}

// NewClassifyHandler creates a new ClassifyHandler. classifierService
// may be nil when no endpoint is configured.
func NewClassifyHandler(classifierService *services.ClassifierService) *ClassifyHandler {
	return &ClassifyHandler{
		classifierService: classifierService,
	}
}

// Classify accepts a multipart image upload and returns the detected
// waste category
func (h *ClassifyHandler) Classify(c *gin.Context) {
	if h.classifierService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Classifier is not configured. Please set CLASSIFIER_URL environment variable."})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		apierrors.BadRequest(c, "Missing image file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.BadRequest(c, "Unable to read image file")
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result, err := h.classifierService.Classify(ctx, fileHeader.Filename, file)
	if err != nil {
		apierrors.InternalError(c, "Classification failed")
		return
	}

	c.JSON(http.StatusOK, result)
}
