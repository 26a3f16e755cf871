package upload

import (
	"strings"

	"github.com/careerhq/careerhq-api/services/media"
	"github.com/careerhq/careerhq-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// Files larger than this are rejected before reaching the media host.
const maxUploadBytes = 10 << 20 // 10 MB

var allowedContentTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/webp":    true,
	"image/gif":     true,
	"image/svg+xml": true,
}

// UploadHandler handles media upload requests
type UploadHandler struct {
	media *media.Client
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(client *media.Client) *UploadHandler {
	return &UploadHandler{media: client}
}

// UploadFile handles POST /api/uploads (admin only). Expects a multipart form
// with a "file" field and an optional "folder" field.
func (h *UploadHandler) UploadFile(c *fiber.Ctx) error {
	if h.media == nil {
		return response.InternalServerError(c, "Media storage is not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "A file is required")
	}

	if fileHeader.Size > maxUploadBytes {
		return response.BadRequest(c, "File exceeds the 10MB limit")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedContentTypes[contentType] {
		return response.BadRequest(c, "Unsupported file type")
	}

	folder := c.FormValue("folder", "uploads")
	if strings.ContainsAny(folder, "./\\") {
		return response.BadRequest(c, "Invalid folder name")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	upload, err := h.media.UploadFile(c.Context(), folder, fileHeader.Filename, file, contentType)
	if err != nil {
		return response.InternalServerError(c, "Failed to store uploaded file")
	}

	return response.Created(c, upload)
}

// DeleteFile handles DELETE /api/uploads/* (admin only). The wildcard is the
// object key. Deletion is best effort and always reports success.
func (h *UploadHandler) DeleteFile(c *fiber.Ctx) error {
	if h.media == nil {
		return response.InternalServerError(c, "Media storage is not configured")
	}

	key := c.Params("*")
	if key == "" {
		return response.BadRequest(c, "An object key is required")
	}

	h.media.DeleteQuietly(c.Context(), key)

	return response.SuccessWithMessage(c, "File deleted", nil)
}
