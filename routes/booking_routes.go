package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/wandergo/tripmarket/config/db"
	"github.com/wandergo/tripmarket/controllers/booking_controller"
	"github.com/wandergo/tripmarket/controllers/cancel_booking_controller"
	"github.com/wandergo/tripmarket/middlewares"
	"github.com/wandergo/tripmarket/middlewares/auth"
)

func RegisterBookingRoutes(router *gin.Engine) {
	store := booking_controller.NewDBStore(db.DB)

	bookingController, err := booking_controller.NewBookingController(store)
	if err != nil {
		panic(fmt.Errorf("failed to initialize booking controller: %w", err))
	}
	cancelController, err := cancel_booking_controller.NewCancelBookingController(store)
	if err != nil {
		panic(fmt.Errorf("failed to initialize cancel booking controller: %w", err))
	}

	protected := router.Group("/bookings")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("", middleware.NewRateLimiter("30-1m", "createBooking"), bookingController.Book)
		protected.GET("/my", bookingController.GetMyBookings)
		protected.PUT("/:id/cancel", cancelController.CancelBooking)
	}
}
