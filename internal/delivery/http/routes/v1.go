package routes

import (
	"recovery-connect/internal/config"
	"recovery-connect/internal/database"
	v1 "recovery-connect/internal/delivery/http/routes/v1"
	"recovery-connect/internal/infrastructure/cache"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, redisCache *cache.Redis) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, db, redisCache)
}
