package trip_controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wandergo/tripmarket/badwords"
	"github.com/wandergo/tripmarket/logger"
	"github.com/wandergo/tripmarket/models/trip_models"
	"github.com/wandergo/tripmarket/utils"
)

// TripController handles the trip catalog: public browsing plus
// organizer-owned CRUD.
type TripController struct {
	db *pgxpool.Pool
}

func NewTripController(db *pgxpool.Pool) (*TripController, error) {
	if db == nil {
		return nil, errors.New("database pool cannot be nil")
	}
	return &TripController{db: db}, nil
}

type CreateTripRequest struct {
	Name               string                          `json:"name" binding:"required"`
	Description        string                          `json:"description" binding:"required"`
	Location           string                          `json:"location" binding:"required"`
	Dates              string                          `json:"dates" binding:"required"`
	StartDate          time.Time                       `json:"startDate" binding:"required"`
	Duration           string                          `json:"duration" binding:"required"`
	Price              float64                         `json:"price" binding:"required,gt=0"`
	AvailableSlots     int                             `json:"availableSlots" binding:"required,gt=0"`
	Difficulty         string                          `json:"difficulty" binding:"required"`
	Included           []string                        `json:"included"`
	Itinerary          []trip_models.ItineraryDay      `json:"itinerary"`
	CancellationPolicy trip_models.CancellationPolicy  `json:"cancellationPolicy"`
	Status             string                          `json:"status" binding:"omitempty,oneof=draft active completed cancelled"`
}

type UpdateTripRequest struct {
	Name               *string                         `json:"name"`
	Description        *string                         `json:"description"`
	Location           *string                         `json:"location"`
	Dates              *string                         `json:"dates"`
	StartDate          *time.Time                      `json:"startDate"`
	Duration           *string                         `json:"duration"`
	Price              *float64                        `json:"price" binding:"omitempty,gt=0"`
	AvailableSlots     *int                            `json:"availableSlots" binding:"omitempty,gte=0"`
	Difficulty         *string                         `json:"difficulty"`
	Included           *[]string                       `json:"included"`
	Itinerary          *[]trip_models.ItineraryDay     `json:"itinerary"`
	CancellationPolicy *trip_models.CancellationPolicy `json:"cancellationPolicy"`
	Status             *string                         `json:"status" binding:"omitempty,oneof=draft active completed cancelled"`
}

// GetAllTrips lists every trip, newest first. Public.
func (tc *TripController) GetAllTrips(c *gin.Context) {
	trips, err := trip_models.GetAllTrips(c.Request.Context(), tc.db)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch trips: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, trips)
}

// GetTripByID returns one trip. Public.
func (tc *TripController) GetTripByID(c *gin.Context) {
	tripID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Trip not found"})
		return
	}

	trip, err := trip_models.GetTripByID(c.Request.Context(), tc.db, tripID)
	if err != nil {
		if errors.Is(err, trip_models.ErrTripNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Trip not found"})
			return
		}
		logger.ErrorLogger.Errorf("Failed to fetch trip %s: %v", tripID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, trip)
}

// CreateTrip creates a listing owned by the calling organizer.
func (tc *TripController) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid trip data: " + err.Error()})
		return
	}

	organizerID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	if badwords.ContainsBadWords(req.Name) || badwords.ContainsBadWords(req.Description) {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Listing text contains prohibited words"})
		return
	}

	trip, err := trip_models.NewTrip(organizerID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to build trip: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	trip.Name = req.Name
	trip.Description = req.Description
	trip.Location = req.Location
	trip.Dates = req.Dates
	trip.StartDate = req.StartDate
	trip.Duration = req.Duration
	trip.Price = req.Price
	trip.AvailableSlots = req.AvailableSlots
	trip.Difficulty = req.Difficulty
	trip.Included = req.Included
	trip.Itinerary = req.Itinerary
	trip.CancellationPolicy = req.CancellationPolicy
	if req.Status != "" {
		trip.Status = req.Status
	}

	created, err := trip_models.CreateTrip(c.Request.Context(), tc.db, trip)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to create trip: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, created)
}

// UpdateTrip applies a partial update. Only the owning organizer may call
// it; the role gate is on the route, ownership is checked here.
func (tc *TripController) UpdateTrip(c *gin.Context) {
	tripID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Trip not found"})
		return
	}

	var req UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid trip data: " + err.Error()})
		return
	}

	organizerID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	trip, err := trip_models.GetTripByID(c.Request.Context(), tc.db, tripID)
	if err != nil {
		if errors.Is(err, trip_models.ErrTripNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Trip not found"})
			return
		}
		logger.ErrorLogger.Errorf("Failed to fetch trip %s: %v", tripID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if trip.OrganizerID != organizerID {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	if req.Name != nil {
		if badwords.ContainsBadWords(*req.Name) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Listing text contains prohibited words"})
			return
		}
		trip.Name = *req.Name
	}
	if req.Description != nil {
		if badwords.ContainsBadWords(*req.Description) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Listing text contains prohibited words"})
			return
		}
		trip.Description = *req.Description
	}
	if req.Location != nil {
		trip.Location = *req.Location
	}
	if req.Dates != nil {
		trip.Dates = *req.Dates
	}
	if req.StartDate != nil {
		trip.StartDate = *req.StartDate
	}
	if req.Duration != nil {
		trip.Duration = *req.Duration
	}
	if req.Price != nil {
		trip.Price = *req.Price
	}
	if req.AvailableSlots != nil {
		trip.AvailableSlots = *req.AvailableSlots
	}
	if req.Difficulty != nil {
		trip.Difficulty = *req.Difficulty
	}
	if req.Included != nil {
		trip.Included = *req.Included
	}
	if req.Itinerary != nil {
		trip.Itinerary = *req.Itinerary
	}
	if req.CancellationPolicy != nil {
		trip.CancellationPolicy = *req.CancellationPolicy
	}
	if req.Status != nil {
		trip.Status = *req.Status
	}

	updated, err := trip_models.UpdateTrip(c.Request.Context(), tc.db, trip)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update trip %s: %v", tripID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteTrip removes a listing after the same ownership check.
func (tc *TripController) DeleteTrip(c *gin.Context) {
	tripID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Trip not found"})
		return
	}

	organizerID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	trip, err := trip_models.GetTripByID(c.Request.Context(), tc.db, tripID)
	if err != nil {
		if errors.Is(err, trip_models.ErrTripNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Trip not found"})
			return
		}
		logger.ErrorLogger.Errorf("Failed to fetch trip %s: %v", tripID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if trip.OrganizerID != organizerID {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	if err := trip_models.DeleteTrip(c.Request.Context(), tc.db, tripID); err != nil {
		logger.ErrorLogger.Errorf("Failed to delete trip %s: %v", tripID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Trip removed"})
}
