package approval

import (
	"errors"
	"fmt"
	"net/http"

	"thali/internal/items"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	gate *Gate
}

func NewHandler(gate *Gate) *Handler {
	return &Handler{gate: gate}
}

func requesterEmail(c *gin.Context) (string, bool) {
	email := c.GetString("userEmail")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return email, true
}

// --------------------------------------------------
// GET /verification/pending
// --------------------------------------------------
func (h *Handler) Pending(c *gin.Context) {
	email, ok := requesterEmail(c)
	if !ok {
		return
	}

	pending, err := h.gate.PendingFor(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch pending items"})
		return
	}

	c.JSON(http.StatusOK, pending)
}

// --------------------------------------------------
// POST /verification/approve
// --------------------------------------------------
func (h *Handler) Approve(c *gin.Context) {
	email, ok := requesterEmail(c)
	if !ok {
		return
	}

	var req struct {
		RestaurantIDs []int    `json:"restaurant_ids"`
		MenuItemIDs   []string `json:"menu_item_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	menuItemIDs := make([]uuid.UUID, 0, len(req.MenuItemIDs))
	for _, raw := range req.MenuItemIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id: " + raw})
			return
		}
		menuItemIDs = append(menuItemIDs, id)
	}

	if err := h.gate.Approve(c.Request.Context(), email, req.RestaurantIDs, menuItemIDs); err != nil {
		if errors.Is(err, ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "items approved",
		"restaurant_ids": req.RestaurantIDs,
		"menu_item_ids":  req.MenuItemIDs,
	})
}

// --------------------------------------------------
// POST /verification/restaurants/:id/approve
// --------------------------------------------------
func (h *Handler) ApproveRestaurant(c *gin.Context) {
	email, ok := requesterEmail(c)
	if !ok {
		return
	}

	var restaurantID int
	if _, err := fmt.Sscanf(c.Param("id"), "%d", &restaurantID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	if err := h.gate.ApproveRestaurant(c.Request.Context(), email, restaurantID); err != nil {
		h.approveError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "restaurant approved",
		"restaurant_id": restaurantID,
	})
}

// --------------------------------------------------
// POST /verification/menuitems/:id/approve
// --------------------------------------------------
func (h *Handler) ApproveMenuItem(c *gin.Context) {
	email, ok := requesterEmail(c)
	if !ok {
		return
	}

	menuItemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	if err := h.gate.ApproveMenuItem(c.Request.Context(), email, menuItemID); err != nil {
		h.approveError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "menu item approved",
		"menu_item_id": menuItemID,
	})
}

func (h *Handler) approveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, items.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
