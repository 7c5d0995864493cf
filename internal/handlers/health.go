package handlers

import (
	"paylink/internal/repositories/cache"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HealthCheck reports liveness of the database and the cache.
func HealthCheck(db *gorm.DB, cacheSvc *cache.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbStatus := "connected"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Context()) != nil {
			dbStatus = "unavailable"
		}

		redisStatus := "connected"
		if err := cacheSvc.HealthCheck(c.Context()); err != nil {
			redisStatus = "unavailable"
		}

		status := fiber.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"status": "ok",
			"services": fiber.Map{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	}
}
