package http

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devfolio-labs/portfolio-backend/internal/media"
)

// maxUploadBytes bounds a single multipart image payload.
const maxUploadBytes = 10 << 20

type Handler struct {
	media  media.Service // nil when credentials are absent
	folder string
}

func NewHandler(md media.Service, folder string) *Handler {
	return &Handler{media: md, folder: folder}
}

func (h *Handler) upload(c *gin.Context) {
	if h.media == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Media uploads are not configured"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image exceeds the 10MB upload limit"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}
	defer f.Close()

	payload, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}
	if !strings.HasPrefix(http.DetectContentType(payload), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
		return
	}

	res, err := h.media.Upload(c.Request.Context(), bytes.NewReader(payload), h.folder)
	if err != nil {
		log.Printf("[media] upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"imageUrl": res.URL,
		"publicId": res.PublicID,
		"format":   res.Format,
		"bytes":    res.Bytes,
	})
}

func (h *Handler) deleteImage(c *gin.Context) {
	if h.media == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Media uploads are not configured"})
		return
	}

	imageURL := c.Query("url")
	if imageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image URL is required"})
		return
	}

	publicID := media.PublicIDFromURL(imageURL)
	if publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Cloudinary URL"})
		return
	}

	result, err := h.media.Destroy(c.Request.Context(), publicID)
	if err != nil {
		log.Printf("[media] delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Image deleted successfully",
		"publicId": publicID,
		"result":   result,
	})
}
