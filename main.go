package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appconfig "github.com/cuisine-de-lin/order-board-api/config"
	"github.com/cuisine-de-lin/order-board-api/controllers"
	"github.com/cuisine-de-lin/order-board-api/services"
	"github.com/cuisine-de-lin/order-board-api/storage"
	"github.com/cuisine-de-lin/order-board-api/utils"
)

func main() {
	log.Println("Starting Order Board API server...")

	cfg, err := appconfig.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg)

	if cfg.OpenBrowser {
		url := "http://localhost:" + cfg.Port
		go func() {
			// The port may be proxied, so still try to open after the
			// probes run out.
			utils.WaitForPort(cfg.Port, utils.DefaultPortRetries, utils.DefaultPortInterval)
			if err := utils.OpenBrowser(url); err != nil {
				log.Printf("Could not open browser: %v", err)
			}
		}()
	}

	log.Printf("Order app at http://localhost:%s/", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires stores, services, and routes into a ready-to-run engine.
// Kept separate from main so tests can exercise the full application.
func setupRouter(cfg *appconfig.Config) *gin.Engine {
	orderStore := storage.NewOrderStore(cfg.DataDir)
	menuStore := storage.NewMenuStore(cfg.DataDir)
	dailyStore := storage.NewDailyStore(cfg.DailysDir)

	// The hub snapshots straight from the store: reads are safe alongside
	// the service's serialized writes, and orders:init must reflect
	// committed state only.
	hub := services.NewHub(orderStore.LoadAll)
	orderService := services.NewOrderService(orderStore, hub)

	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/health", healthCheck)

	router.GET("/orders", controllers.ListOrders(orderService))
	router.POST("/orders", controllers.CreateOrder(orderService))
	router.POST("/orders/reset", controllers.ResetOrders(orderService))
	router.POST("/orders/:id/complete", controllers.CompleteOrder(orderService))

	router.GET("/events", controllers.StreamEvents(hub))

	router.GET("/menu", controllers.GetMenu(menuStore))
	router.POST("/menu", controllers.UpdateMenu(menuStore))

	router.POST("/daily/save", controllers.SaveDaily(dailyStore))

	// Front-end assets; anything that is not an API route falls through to
	// the static till app.
	if _, err := os.Stat(cfg.StaticDir); err == nil {
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.StaticDir))))
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"service": "Order Board API",
	})
}
