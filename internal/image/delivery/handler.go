package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"photoblog-backend/internal/image/usecase"
)

// ImageHandler handles HTTP requests for image management
type ImageHandler struct {
	imageUsecase usecase.ImageUsecase
}

// NewImageHandler creates a new instance of ImageHandler
func NewImageHandler(imageUsecase usecase.ImageUsecase) *ImageHandler {
	return &ImageHandler{imageUsecase: imageUsecase}
}

// UploadImage handles POST requests with a multipart "file" field
func (h *ImageHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	img, err := h.imageUsecase.Upload(fileHeader.Filename, mimeType, fileHeader.Size, file)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	c.JSON(http.StatusCreated, img)
}

// ListImages handles GET requests with optional limit/offset pagination
func (h *ImageHandler) ListImages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	images, err := h.imageUsecase.ListImages(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list images"})
		return
	}

	c.JSON(http.StatusOK, images)
}

// UpdateImage handles PUT requests updating alt text and caption
func (h *ImageHandler) UpdateImage(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		AltText *string `json:"altText"`
		Caption *string `json:"caption"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	img, err := h.imageUsecase.UpdateMetadata(id, usecase.MetadataUpdate{
		AltText: req.AltText,
		Caption: req.Caption,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrImageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update image"})
		return
	}

	c.JSON(http.StatusOK, img)
}

// DeleteImage handles DELETE requests removing the file and its metadata
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	id := c.Param("id")

	if err := h.imageUsecase.DeleteImage(id); err != nil {
		if errors.Is(err, usecase.ErrImageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "image deleted"})
}
