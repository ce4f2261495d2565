package controllers

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/cuisine-de-lin/order-board-api/models"
	"github.com/cuisine-de-lin/order-board-api/storage"
)

var dailyDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// SaveDailyRequest is the POST /daily/save body. Pointers distinguish
// missing fields from empty ones.
type SaveDailyRequest struct {
	Date        string          `json:"date"`
	ItemsStats  *map[string]int `json:"itemsStats"`
	ExtrasStats *map[string]int `json:"extrasStats"`
	Orders      *[]models.Order `json:"orders"`
}

// SaveDaily handles POST /daily/save - writes the end-of-day archive pair.
// The till calls this before POST /orders/reset, since reset is
// unrecoverable from the order store.
func SaveDaily(store *storage.DailyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SaveDailyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if !dailyDatePattern.MatchString(req.Date) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date (YYYY-MM-DD)"})
			return
		}
		if req.ItemsStats == nil || req.ExtrasStats == nil || req.Orders == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		itemsFile, ordersFile, err := store.SaveReport(models.DailyReport{
			Date:        req.Date,
			ItemsStats:  *req.ItemsStats,
			ExtrasStats: *req.ExtrasStats,
			Orders:      *req.Orders,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "itemsFile": itemsFile, "ordersFile": ordersFile})
	}
}
