package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cuisine-de-lin/order-board-api/models"
	"github.com/cuisine-de-lin/order-board-api/storage"
)

// UpdateMenuRequest is the POST /menu body. Pointers distinguish a missing
// array from an empty one.
type UpdateMenuRequest struct {
	MenuItems      *[]string `json:"menuItems"`
	ExtraItems     *[]string `json:"extraItems"`
	RestaurantName string    `json:"restaurantName"`
	Version        string    `json:"version"`
}

// GetMenu handles GET /menu - returns the current menu document, empty
// lists when no menu has been saved yet
func GetMenu(store *storage.MenuStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Load())
	}
}

// UpdateMenu handles POST /menu - replaces the menu document
func UpdateMenu(store *storage.MenuStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateMenuRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.MenuItems == nil || req.ExtraItems == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schema: need menuItems[], extraItems[]"})
			return
		}

		if req.RestaurantName == "" {
			req.RestaurantName = "Cuisine de Lin"
		}
		if req.Version == "" {
			req.Version = "1.0"
		}

		doc := models.MenuDocument{
			RestaurantName: req.RestaurantName,
			Version:        req.Version,
			LastUpdated:    time.Now().Format(time.RFC3339),
			MenuItems:      *req.MenuItems,
			ExtraItems:     *req.ExtraItems,
		}
		if err := store.Save(doc); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
