package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/stayloft/lodge-booking-backend/internal/auth"
	"github.com/stayloft/lodge-booking-backend/internal/availability"
	availabilityHttp "github.com/stayloft/lodge-booking-backend/internal/availability/http"
	"github.com/stayloft/lodge-booking-backend/internal/booking"
	bookingHttp "github.com/stayloft/lodge-booking-backend/internal/booking/http"
	"github.com/stayloft/lodge-booking-backend/internal/lodge"
	lodgeHttp "github.com/stayloft/lodge-booking-backend/internal/lodge/http"
	"github.com/stayloft/lodge-booking-backend/internal/payment"
	paymentHttp "github.com/stayloft/lodge-booking-backend/internal/payment/http"
	"github.com/stayloft/lodge-booking-backend/internal/photo"
	photoHttp "github.com/stayloft/lodge-booking-backend/internal/photo/http"
	"github.com/stayloft/lodge-booking-backend/internal/review"
	reviewHttp "github.com/stayloft/lodge-booking-backend/internal/review/http"
	"github.com/stayloft/lodge-booking-backend/internal/room"
	roomHttp "github.com/stayloft/lodge-booking-backend/internal/room/http"
	"github.com/stayloft/lodge-booking-backend/internal/user"
	userHttp "github.com/stayloft/lodge-booking-backend/internal/user/http"
)

// Services bundles every domain service the router depends on.
type Services struct {
	User         user.Service
	Lodge        lodge.Service
	Room         room.Service
	Availability availability.Service
	Booking      booking.Service
	Review       review.Service
	Photo        photo.Service
	Payment      payment.Provider
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers routes for
// every module.
func NewRouter(services Services, jwtManager *auth.JWTManager, allowOrigins []string) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowOrigins = allowOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	authMiddleware := auth.AuthRequired(jwtManager)
	adminMiddleware := RequireAdmin()

	userHandler := userHttp.NewHandler(services.User, jwtManager)
	lodgeHandler := lodgeHttp.NewHandler(services.Lodge)
	roomHandler := roomHttp.NewHandler(services.Room)
	availabilityHandler := availabilityHttp.NewHandler(services.Availability, services.Room)
	bookingHandler := bookingHttp.NewHandler(services.Booking)
	paymentHandler := paymentHttp.NewHandler(services.Payment, services.Booking)
	reviewHandler := reviewHttp.NewHandler(services.Review)
	photoHandler := photoHttp.NewHandler(services.Photo)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		lodgeHttp.RegisterRoutes(v1, lodgeHandler, authMiddleware, adminMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
		paymentHttp.RegisterRoutes(v1, paymentHandler, authMiddleware)
		reviewHttp.RegisterRoutes(v1, reviewHandler, authMiddleware)
		photoHttp.RegisterRoutes(v1, photoHandler, authMiddleware)
	}

	return r
}
