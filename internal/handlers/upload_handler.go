package handlers

import (
	"context"
	"path/filepath"
	"strings"

	"movie-i18n/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Presigner issues upload URLs for artwork.
type Presigner interface {
	GeneratePresignedURL(ctx context.Context, filename string) (string, string, error)
}

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

type UploadHandler struct {
	storage Presigner
	logger  *logrus.Logger
}

func NewUploadHandler(storage Presigner, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		storage: storage,
		logger:  logger,
	}
}

// GetPresignedURL godoc
// @Summary Get presigned URL for file upload
// @Description Generate a presigned URL for uploading poster or backdrop images to MinIO/S3
// @Tags Upload
// @Accept json
// @Produce json
// @Param filename query string true "Filename (.jpg, .jpeg, .png, .webp)"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /upload/presign [get]
func (h *UploadHandler) GetPresignedURL(c *fiber.Ctx) error {
	filename := c.Query("filename")
	if filename == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "filename is required")
	}
	if !imageExtensions[strings.ToLower(filepath.Ext(filename))] {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "filename must be a jpg, png or webp image")
	}

	presignedURL, publicURL, err := h.storage.GeneratePresignedURL(c.UserContext(), filename)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate presigned URL")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate presigned URL")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Presigned URL generated successfully", fiber.Map{
		"presigned_url": presignedURL,
		"public_url":    publicURL,
	})
}
