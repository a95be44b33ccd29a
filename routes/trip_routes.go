package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/wandergo/tripmarket/config/db"
	"github.com/wandergo/tripmarket/controllers/trip_controller"
	"github.com/wandergo/tripmarket/middlewares/auth"
)

func RegisterTripRoutes(router *gin.Engine) {
	controller, err := trip_controller.NewTripController(db.DB)
	if err != nil {
		panic(fmt.Errorf("failed to initialize trip controller: %w", err))
	}

	router.GET("/trips", controller.GetAllTrips)
	router.GET("/trips/:id", controller.GetTripByID)

	// Organizer-only listing management. Ownership of the specific trip is
	// enforced in the controller.
	organizer := router.Group("/trips")
	organizer.Use(auth.AuthMiddleware(), auth.RequireRole(auth.RoleOrganizer))
	{
		organizer.POST("", controller.CreateTrip)
		organizer.PUT("/:id", controller.UpdateTrip)
		organizer.DELETE("/:id", controller.DeleteTrip)
	}
}
