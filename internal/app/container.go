package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condokit/amenity-booking-backend/internal/amenity"
	"github.com/condokit/amenity-booking-backend/internal/api"
	"github.com/condokit/amenity-booking-backend/internal/auth"
	"github.com/condokit/amenity-booking-backend/internal/booking"
	"github.com/condokit/amenity-booking-backend/internal/notice"
	"github.com/condokit/amenity-booking-backend/internal/resident"
	"github.com/condokit/amenity-booking-backend/internal/schedule"
	scheduleWs "github.com/condokit/amenity-booking-backend/internal/schedule/ws"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction          bool
	ProdOrigins           string
	DBPool                *pgxpool.Pool
	JWTSecret             string
	JWTTTL                time.Duration
	BcryptCost            int
	ValidatorFetchTimeout time.Duration
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Resident Module
	residentRepo := resident.NewPgxRepository(cfg.DBPool)
	residentService := resident.NewService(residentRepo, passwordHasher)

	// Amenity Module
	amenityRepo := amenity.NewPgxRepository(cfg.DBPool)
	amenityService := amenity.NewService(amenityRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, amenityService)

	// Notice Module
	noticeRepo := notice.NewPgxRepository(cfg.DBPool)
	noticeService := notice.NewService(noticeRepo, amenityService)

	// Live validation sessions read availability and active bookings through
	// the same adapters the booking service uses for its verdicts.
	wsHandler := scheduleWs.NewHandler(
		jwtManager,
		amenity.NewSource(amenityService),
		booking.NewSource(bookingRepo),
		schedule.WithFetchTimeout(cfg.ValidatorFetchTimeout),
	)

	// API Router Config
	routerParams := api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		ResidentService: residentService,
		AmenityService:  amenityService,
		BookingService:  bookingService,
		NoticeService:   noticeService,
		WsHandler:       wsHandler,
		JWTManager:      jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
