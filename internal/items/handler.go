package items

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /catalog?view=restaurants
// GET /catalog?view=menuitems&restaurant_id=1
// --------------------------------------------------
func (h *Handler) Catalog(c *gin.Context) {
	view := c.DefaultQuery("view", "restaurants")

	switch view {
	case "restaurants":
		restaurants, err := h.service.CatalogRestaurants(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch restaurants"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"view":        view,
			"restaurants": restaurants,
		})

	case "menuitems":
		var restaurantID int
		if raw := c.Query("restaurant_id"); raw != "" {
			if _, err := fmt.Sscanf(raw, "%d", &restaurantID); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
				return
			}
		}

		menuItems, err := h.service.CatalogMenuItems(c.Request.Context(), restaurantID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch menu items"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"view":       view,
			"menu_items": menuItems,
		})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown catalog view"})
	}
}
