package importer

import (
	"errors"
	"io"
	"net/http"

	"thali/internal/assets"
	"thali/internal/items"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /import
// Accepts either a multipart "json" file or a raw JSON body.
// --------------------------------------------------
func (h *Handler) Import(c *gin.Context) {
	payload, err := importPayload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a JSON payload is required"})
		return
	}

	result, err := h.service.Import(payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "batch staged",
		"staged":  len(result.Items),
		"skipped": result.Skipped,
		"preview": previewList(result.Items),
	})
}

func importPayload(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("json"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	return io.ReadAll(c.Request.Body)
}

// --------------------------------------------------
// GET /import/placeholders
// --------------------------------------------------
func (h *Handler) DownloadPlaceholders(c *gin.Context) {
	archive, err := h.service.PlaceholderArchive()
	if err != nil {
		if errors.Is(err, ErrNothingStaged) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="placeholders.zip"`)
	c.Data(http.StatusOK, "application/zip", archive)
}

// --------------------------------------------------
// POST /import/images
// --------------------------------------------------
func (h *Handler) UploadImages(c *gin.Context) {
	file, err := c.FormFile("images")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a zip file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read zip file"})
		return
	}
	defer f.Close()

	archive, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read zip file"})
		return
	}

	consumed, err := h.service.AttachImages(c.Request.Context(), archive)
	if err != nil {
		switch {
		case errors.Is(err, ErrNothingStaged):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, assets.ErrBadArchive):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "images attached",
		"consumed": consumed,
	})
}

// --------------------------------------------------
// POST /import/commit
// --------------------------------------------------
func (h *Handler) Commit(c *gin.Context) {
	committed, err := h.service.Commit(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNothingStaged) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "batch committed",
		"committed": committed,
	})
}

// previewList renders a staged batch for the import preview response.
func previewList(batch []items.Item) []gin.H {
	preview := make([]gin.H, 0, len(batch))
	for _, item := range batch {
		switch v := item.(type) {
		case *items.Restaurant:
			preview = append(preview, gin.H{
				"kind":        v.CardKind(),
				"name":        v.Name,
				"owner_email": v.OwnerEmail,
				"status":      v.Status,
			})
		case *items.MenuItem:
			preview = append(preview, gin.H{
				"kind":       v.CardKind(),
				"id":         v.ID,
				"title":      v.Title,
				"price":      v.Price.StringFixed(2),
				"status":     v.Status,
				"restaurant": restaurantName(v),
			})
		}
	}
	return preview
}

func restaurantName(m *items.MenuItem) string {
	if m.Restaurant == nil {
		return ""
	}
	return m.Restaurant.Name
}
