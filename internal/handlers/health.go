package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campuspay/internal/repositories/cache"
)

type HealthHandler struct {
	db    *gorm.DB
	cache *cache.Service
}

func NewHealthHandler(db *gorm.DB, cacheSvc *cache.Service) *HealthHandler {
	return &HealthHandler{db: db, cache: cacheSvc}
}

// Health reports liveness of the service and its dependencies.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status := fiber.StatusOK
	checks := fiber.Map{}

	if h.db != nil {
		checks["database"] = "ok"
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Context()) != nil {
			checks["database"] = "down"
			status = fiber.StatusServiceUnavailable
		}
	}

	if h.cache != nil {
		checks["redis"] = "ok"
		if err := h.cache.HealthCheck(c.Context()); err != nil {
			checks["redis"] = "down"
			status = fiber.StatusServiceUnavailable
		}
	}

	state := "healthy"
	if status != fiber.StatusOK {
		state = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status": state,
		"checks": checks,
	})
}
