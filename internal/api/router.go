package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/swiftroute/bus-ticketing-backend/internal/auth"
	"github.com/swiftroute/bus-ticketing-backend/internal/booking"
	bookingHttp "github.com/swiftroute/bus-ticketing-backend/internal/booking/http"
	"github.com/swiftroute/bus-ticketing-backend/internal/bus"
	busHttp "github.com/swiftroute/bus-ticketing-backend/internal/bus/http"
	"github.com/swiftroute/bus-ticketing-backend/internal/operator"
	operatorHttp "github.com/swiftroute/bus-ticketing-backend/internal/operator/http"
	"github.com/swiftroute/bus-ticketing-backend/internal/payment"
	paymentHttp "github.com/swiftroute/bus-ticketing-backend/internal/payment/http"
	"github.com/swiftroute/bus-ticketing-backend/internal/route"
	routeHttp "github.com/swiftroute/bus-ticketing-backend/internal/route/http"
	"github.com/swiftroute/bus-ticketing-backend/internal/schedule"
	scheduleHttp "github.com/swiftroute/bus-ticketing-backend/internal/schedule/http"
	"github.com/swiftroute/bus-ticketing-backend/internal/search"
	searchHttp "github.com/swiftroute/bus-ticketing-backend/internal/search/http"
	"github.com/swiftroute/bus-ticketing-backend/internal/tracking"
	trackingHttp "github.com/swiftroute/bus-ticketing-backend/internal/tracking/http"
	"github.com/swiftroute/bus-ticketing-backend/internal/user"
	userHttp "github.com/swiftroute/bus-ticketing-backend/internal/user/http"
)

// Config holds everything the router needs to assemble the HTTP surface.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService     user.Service
	OperatorService operator.Service
	BusService      bus.Service
	RouteService    route.Service
	ScheduleService schedule.Service
	BookingService  booking.Service
	PaymentService  payment.Service
	SearchService   search.Service
	Synchronizer    *search.Synchronizer
	TrackingService tracking.Service
	TrackingWorker  *tracking.Worker

	JWTManager *auth.JWTManager
}

// NewRouter assembles middleware (CORS, Logger, Auth) and registers the
// routes of every module under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := RequireAdmin(cfg.UserService)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	operatorHandler := operatorHttp.NewHandler(cfg.OperatorService)
	busHandler := busHttp.NewHandler(cfg.BusService)
	routeHandler := routeHttp.NewHandler(cfg.RouteService)
	scheduleHandler := scheduleHttp.NewHandler(cfg.ScheduleService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.UserService)
	paymentHandler := paymentHttp.NewHandler(cfg.PaymentService)
	searchHandler := searchHttp.NewHandler(cfg.SearchService, cfg.Synchronizer)
	trackingHandler := trackingHttp.NewHandler(cfg.TrackingService, cfg.TrackingWorker)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		operatorHttp.RegisterRoutes(v1, operatorHandler, authMiddleware, adminMiddleware)
		busHttp.RegisterRoutes(v1, busHandler, authMiddleware, adminMiddleware)
		routeHttp.RegisterRoutes(v1, routeHandler, authMiddleware, adminMiddleware)
		scheduleHttp.RegisterRoutes(v1, scheduleHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
		paymentHttp.RegisterRoutes(v1, paymentHandler, authMiddleware, adminMiddleware)
		searchHttp.RegisterRoutes(v1, searchHandler, authMiddleware, adminMiddleware)
		trackingHttp.RegisterRoutes(v1, trackingHandler, authMiddleware)
	}

	return r
}
