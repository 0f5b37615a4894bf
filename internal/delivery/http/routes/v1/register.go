package v1

import (
	"recovery-connect/internal/config"
	"recovery-connect/internal/database"
	"recovery-connect/internal/delivery/http/handler"
	"recovery-connect/internal/delivery/http/middleware"
	"recovery-connect/internal/domain/user"
	"recovery-connect/internal/infrastructure/cache"
	"recovery-connect/internal/pkg/jwt"
	"recovery-connect/internal/repository"
	"recovery-connect/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, redisCache *cache.Redis) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)
	guideRepo := repository.NewPostgresGuideRepository(db)
	availabilityRepo := repository.NewPostgresAvailabilityRepository(db)
	callRepo := repository.NewPostgresCallRepository(db)

	var listingCache usecase.ListingCache
	if redisCache != nil {
		listingCache = redisCache
	}

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	profileUC := usecase.NewProfileUsecase(profileRepo, listingCache)
	discoveryUC := usecase.NewDiscoveryUsecase(profileRepo, guideRepo, listingCache)
	availabilityUC := usecase.NewAvailabilityUsecase(availabilityRepo, listingCache)
	bookingUC := usecase.NewBookingUsecase(guideRepo, availabilityRepo, callRepo, cfg.Booking.FeePercent)

	authHandler := handler.NewAuthHandler(authUC)
	profileHandler := handler.NewProfileHandler(profileUC)
	guideHandler := handler.NewGuideHandler(discoveryUC)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUC)
	bookingHandler := handler.NewBookingHandler(bookingUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	profilesGroup := protected.Group("/profiles")
	profileHandler.RegisterRoutes(profilesGroup)

	guidesGroup := protected.Group("/guides", middleware.RequireRole(string(user.RoleSeeker)))
	guideHandler.RegisterRoutes(guidesGroup)

	windowsGroup := protected.Group("/availability", middleware.RequireRole(string(user.RoleGuide)))
	availabilityHandler.RegisterWindowRoutes(windowsGroup)

	blockedGroup := protected.Group("/blocked-dates", middleware.RequireRole(string(user.RoleGuide)))
	availabilityHandler.RegisterBlockedDateRoutes(blockedGroup)

	bookingsGroup := protected.Group("/bookings")
	bookingHandler.RegisterRoutes(bookingsGroup)
}
