package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/condokit/amenity-booking-backend/internal/amenity"
	amenityHttp "github.com/condokit/amenity-booking-backend/internal/amenity/http"
	"github.com/condokit/amenity-booking-backend/internal/auth"
	"github.com/condokit/amenity-booking-backend/internal/booking"
	bookingHttp "github.com/condokit/amenity-booking-backend/internal/booking/http"
	"github.com/condokit/amenity-booking-backend/internal/notice"
	noticeHttp "github.com/condokit/amenity-booking-backend/internal/notice/http"
	"github.com/condokit/amenity-booking-backend/internal/resident"
	residentHttp "github.com/condokit/amenity-booking-backend/internal/resident/http"
	scheduleWs "github.com/condokit/amenity-booking-backend/internal/schedule/ws"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction    bool
	ProdOrigins     string
	ResidentService resident.Service
	AmenityService  amenity.Service
	BookingService  booking.Service
	NoticeService   notice.Service
	WsHandler       *scheduleWs.Handler
	JWTManager      *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:5173", // Vite dev server
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks if the authenticated resident is an admin.
	adminMiddleware := RequireAdmin(cfg.ResidentService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	residentHandler := residentHttp.NewHandler(cfg.ResidentService, cfg.JWTManager)
	amenityHandler := amenityHttp.NewHandler(cfg.AmenityService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.ResidentService)
	noticeHandler := noticeHttp.NewHandler(cfg.NoticeService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		residentHttp.RegisterRoutes(v1, residentHandler, authMiddleware, adminMiddleware)
		amenityHttp.RegisterRoutes(v1, amenityHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		noticeHttp.RegisterRoutes(v1, noticeHandler, authMiddleware, adminMiddleware)

		// Live booking validation. Auth happens inside the handler because
		// browsers cannot attach an Authorization header to a websocket.
		v1.GET("/ws/validate", cfg.WsHandler.Live)
	}

	return r
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
