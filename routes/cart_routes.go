package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/wandergo/tripmarket/cart"
	"github.com/wandergo/tripmarket/config/db"
	"github.com/wandergo/tripmarket/controllers/booking_controller"
	"github.com/wandergo/tripmarket/controllers/cart_controller"
	"github.com/wandergo/tripmarket/middlewares/auth"
)

func RegisterCartRoutes(router *gin.Engine, carts *cart.Service) {
	controller, err := cart_controller.NewCartController(booking_controller.NewDBStore(db.DB), carts)
	if err != nil {
		panic(fmt.Errorf("failed to initialize cart controller: %w", err))
	}

	protected := router.Group("/cart")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("", controller.GetCart)
		protected.POST("/items", controller.AddItem)
		protected.DELETE("/items/:tripId", controller.RemoveItem)
		protected.DELETE("", controller.ClearCart)
		protected.POST("/checkout", controller.Checkout)
	}
}
