package config

import (
	"sync"

	"github.com/joho/godotenv"

	"github.com/wandergo/tripmarket/logger"
)

var loadOnce sync.Once

// LoadEnv loads variables from a .env file if one exists. Real deployments
// set the environment directly, so a missing file is not an error.
func LoadEnv() {
	loadOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			if logger.InfoLogger != nil {
				logger.InfoLogger.Info("No .env file found, using process environment")
			}
		}
	})
}
