package app

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stayloft/lodge-booking-backend/internal/api"
	"github.com/stayloft/lodge-booking-backend/internal/auth"
	"github.com/stayloft/lodge-booking-backend/internal/availability"
	"github.com/stayloft/lodge-booking-backend/internal/booking"
	"github.com/stayloft/lodge-booking-backend/internal/cache"
	"github.com/stayloft/lodge-booking-backend/internal/lodge"
	"github.com/stayloft/lodge-booking-backend/internal/payment"
	"github.com/stayloft/lodge-booking-backend/internal/photo"
	"github.com/stayloft/lodge-booking-backend/internal/pkg/storage"
	"github.com/stayloft/lodge-booking-backend/internal/review"
	"github.com/stayloft/lodge-booking-backend/internal/room"
	"github.com/stayloft/lodge-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction  bool
	ProdOrigins   string
	DBPool        *pgxpool.Pool
	JWTSecret     string
	JWTTTL        time.Duration
	BcryptCost    int
	ListCache     cache.Cache
	LodgeCacheTTL time.Duration
	Publisher     booking.Publisher
	StoragePath   string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	photoStore, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, err
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Lodge Module
	lodgeRepo := lodge.NewPgxRepository(cfg.DBPool)
	lodgeService := lodge.NewService(lodgeRepo, cfg.ListCache, cfg.LodgeCacheTTL)

	// Room Module
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo, lodgeService)

	// Availability Module
	availabilityRepo := availability.NewPgxRepository(cfg.DBPool)
	availabilityService := availability.NewService(availabilityRepo, roomService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, roomService, availabilityService, cfg.Publisher)

	// Review Module
	reviewRepo := review.NewPgxRepository(cfg.DBPool)
	reviewService := review.NewService(reviewRepo, lodgeService)

	// Photo Module
	photoRepo := photo.NewPgxRepository(cfg.DBPool)
	photoService := photo.NewService(photoRepo, photoStore)

	// Payment provider (stub until a real processor is wired in)
	paymentProvider := payment.NewStubProvider()

	// Router
	router := api.NewRouter(api.Services{
		User:         userService,
		Lodge:        lodgeService,
		Room:         roomService,
		Availability: availabilityService,
		Booking:      bookingService,
		Review:       reviewService,
		Photo:        photoService,
		Payment:      paymentProvider,
	}, jwtManager, allowedOrigins(cfg))

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}

// allowedOrigins resolves the CORS origin list. Production reads the
// comma-separated PROD_ORIGINS value; development allows local frontends.
func allowedOrigins(cfg Config) []string {
	if cfg.IsProduction {
		var origins []string
		for _, o := range strings.Split(cfg.ProdOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		return origins
	}

	return []string{
		"http://localhost:3000",
		"http://localhost:8081",
	}
}
