package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cuisine-de-lin/order-board-api/models"
	"github.com/cuisine-de-lin/order-board-api/services"
)

// ListOrders handles GET /orders - returns the active list, most recent first
func ListOrders(service *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"orders": service.ListAll()})
	}
}

// CreateOrder handles POST /orders - commits a candidate order and returns
// the committed order with its server-assigned id
func CreateOrder(service *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var candidate models.Order
		if err := c.ShouldBindJSON(&candidate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order"})
			return
		}

		order, err := service.CreateOrder(candidate)
		if err != nil {
			if errors.Is(err, models.ErrEmptyOrder) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "order": order})
	}
}

// CompleteOrder handles POST /orders/:id/complete
func CompleteOrder(service *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		if err := service.CompleteOrder(id); err != nil {
			if errors.Is(err, models.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// ResetOrders handles POST /orders/reset - clears the active list at end of
// day. Callers archive via POST /daily/save first; reset is destructive.
func ResetOrders(service *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.ResetAll(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
