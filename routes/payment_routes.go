package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/wandergo/tripmarket/clients"
	"github.com/wandergo/tripmarket/config/db"
	"github.com/wandergo/tripmarket/controllers/payment_controller"
	"github.com/wandergo/tripmarket/middlewares"
	"github.com/wandergo/tripmarket/middlewares/auth"
)

func RegisterPaymentRoutes(router *gin.Engine, gateway clients.PaymentGateway) {
	controller, err := payment_controller.NewPaymentController(db.DB, gateway)
	if err != nil {
		panic(fmt.Errorf("failed to initialize payment controller: %w", err))
	}

	protected := router.Group("/payments")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/process", middleware.NewRateLimiter("10-1m", "processPayment"), controller.ProcessPayment)
		protected.GET("/:id", controller.GetPayment)
	}
}
