package main

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wandergo/tripmarket/badwords"
	"github.com/wandergo/tripmarket/cart"
	"github.com/wandergo/tripmarket/clients"
	"github.com/wandergo/tripmarket/config"
	"github.com/wandergo/tripmarket/config/db"
	redisclient "github.com/wandergo/tripmarket/config/redis"
	"github.com/wandergo/tripmarket/logger"
	"github.com/wandergo/tripmarket/middlewares/cors"
	logger_middleware "github.com/wandergo/tripmarket/middlewares/logger"
	"github.com/wandergo/tripmarket/routes"
	"github.com/wandergo/tripmarket/utils/mail"
)

//go:embed templates/email/*
var embeddedEmailTemplates embed.FS

func init() {
	logger.InitLoggers()
	config.LoadEnv()
}

func main() {
	db.Connect()
	defer db.Close()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	mail.InitTemplates(embeddedEmailTemplates)
	logger.InfoLogger.Info("Email templates initialized.")

	if err := badwords.LoadBadWords("badwords/en.txt"); err != nil {
		logger.WarnLogger.Warnf("Moderation word list not loaded: %v", err)
	} else {
		logger.InfoLogger.Info("Moderation word list loaded.")
	}

	// The cart lives in redis so it survives sessions; without redis it
	// falls back to process memory.
	var cartStore cart.Store
	if rdb, err := redisclient.GetRedisClient(context.Background()); err == nil {
		cartStore = cart.NewRedisStore(rdb)
	} else {
		logger.WarnLogger.Warnf("Redis unavailable, carts held in memory: %v", err)
		cartStore = cart.NewMemoryStore()
	}
	defer redisclient.CloseRedis()

	gateway := clients.NewGatewayFromEnv()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.CorsMiddleware())
	r.Use(logger_middleware.GinLogger())

	routes.RegisterTripRoutes(r)
	routes.RegisterBookingRoutes(r)
	routes.RegisterPaymentRoutes(r, gateway)
	routes.RegisterCartRoutes(r, cart.NewService(cartStore))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "ok from trip marketplace"})
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.InfoLogger.Infof("Server listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server failed to listen: %v\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.InfoLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorLogger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.InfoLogger.Info("Server exited gracefully.")
}
