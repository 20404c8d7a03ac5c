package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travvip/backend/internal/application/catalog"
)

// maxImageBytes caps a single image upload at 5 MB
const maxImageBytes = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var allowedImageKinds = map[string]bool{
	"hotel":     true,
	"package":   true,
	"activity":  true,
	"transport": true,
	"branding":  true,
}

// UploadHandler handles catalog and branding image uploads
type UploadHandler struct {
	BaseHandler
	uploadService *catalog.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *catalog.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// RegisterRoutes registers the upload routes
func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads/images", h.UploadImage)
}

// UploadImage accepts a multipart image and returns its public URL.
// The "kind" form field selects the storage prefix.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}

	kind := c.PostForm("kind")
	if !allowedImageKinds[kind] {
		h.BadRequest(c, "Invalid image kind")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file")
		return
	}
	if fileHeader.Size > maxImageBytes {
		h.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Image exceeds the 5 MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unreadable file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		h.InternalError(c, "Failed to read upload")
		return
	}
	if len(data) > maxImageBytes {
		h.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Image exceeds the 5 MB limit")
		return
	}

	contentType := http.DetectContentType(data)
	if !allowedImageTypes[contentType] {
		h.BadRequest(c, "Only JPEG, PNG and WebP images are accepted")
		return
	}

	result, err := h.uploadService.UploadImage(c.Request.Context(), orgID, kind, data, contentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
