package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swiftroute/bus-ticketing-backend/internal/api"
	"github.com/swiftroute/bus-ticketing-backend/internal/auth"
	"github.com/swiftroute/bus-ticketing-backend/internal/booking"
	"github.com/swiftroute/bus-ticketing-backend/internal/bus"
	"github.com/swiftroute/bus-ticketing-backend/internal/clock"
	"github.com/swiftroute/bus-ticketing-backend/internal/operator"
	"github.com/swiftroute/bus-ticketing-backend/internal/payment"
	"github.com/swiftroute/bus-ticketing-backend/internal/route"
	"github.com/swiftroute/bus-ticketing-backend/internal/schedule"
	"github.com/swiftroute/bus-ticketing-backend/internal/search"
	"github.com/swiftroute/bus-ticketing-backend/internal/tracking"
	"github.com/swiftroute/bus-ticketing-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	TrackingBaseURL    string
	SearchSyncInterval time.Duration
	GatewayTimeout     time.Duration
	TrackingQueueSize  int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router       *gin.Engine
	JWTManager   *auth.JWTManager
	Synchronizer *search.Synchronizer
	Worker       *tracking.Worker
}

// catalogResolver resolves catalog records straight from the
// repositories, for the modules that only need lookups.
type catalogResolver struct {
	schedules schedule.Repository
	buses     bus.Repository
	routes    route.Repository
	operators operator.Repository
}

func (c *catalogResolver) GetSchedule(ctx context.Context, id string) (*schedule.Schedule, error) {
	return c.schedules.GetByID(ctx, id)
}

func (c *catalogResolver) GetBus(ctx context.Context, id string) (*bus.Bus, error) {
	return c.buses.GetByID(ctx, id)
}

func (c *catalogResolver) GetRoute(ctx context.Context, id string) (*route.Route, error) {
	return c.routes.GetByID(ctx, id)
}

func (c *catalogResolver) GetOperator(ctx context.Context, id string) (*operator.Operator, error) {
	return c.operators.GetByID(ctx, id)
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	clk := clock.NewSystem()

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher, clk)

	// Operator module
	operatorRepo := operator.NewPgxRepository(cfg.DBPool)
	operatorService := operator.NewService(operatorRepo)

	// Bus module
	busRepo := bus.NewPgxRepository(cfg.DBPool)
	busService := bus.NewService(busRepo, operatorService)

	// Route module
	routeRepo := route.NewPgxRepository(cfg.DBPool)
	routeService := route.NewService(routeRepo)

	scheduleRepo := schedule.NewPgxRepository(cfg.DBPool)

	// Search module; needs only repository-level catalog lookups.
	catalog := &catalogResolver{
		schedules: scheduleRepo,
		buses:     busRepo,
		routes:    routeRepo,
		operators: operatorRepo,
	}
	searchStore := search.NewPgxStore(cfg.DBPool)
	searchService := search.NewService(searchStore, catalog)

	// Schedule module
	scheduleService := schedule.NewService(scheduleRepo, busService, routeService, searchService)

	// Booking module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	ledger := booking.NewSeatLedger(bookingRepo)
	bookingService := booking.NewService(bookingRepo, ledger, catalog, userService,
		searchService, clk, cfg.TrackingBaseURL)

	// Payment module
	paymentRepo := payment.NewPgxRepository(cfg.DBPool)
	gateway := payment.NewSimulatedGateway(2 * time.Second)
	paymentService := payment.NewService(paymentRepo, bookingService, gateway, cfg.GatewayTimeout)

	// Tracking module
	trackingRepo := tracking.NewPgxRepository(cfg.DBPool)
	trackingService := tracking.NewService(trackingRepo, busService, bookingService, clk)
	trackingWorker := tracking.NewWorker(trackingService, cfg.TrackingQueueSize)

	// Search index reconciliation
	synchronizer := search.NewSynchronizer(scheduleService, searchService, cfg.SearchSyncInterval)

	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		UserService:     userService,
		OperatorService: operatorService,
		BusService:      busService,
		RouteService:    routeService,
		ScheduleService: scheduleService,
		BookingService:  bookingService,
		PaymentService:  paymentService,
		SearchService:   searchService,
		Synchronizer:    synchronizer,
		TrackingService: trackingService,
		TrackingWorker:  trackingWorker,
		JWTManager:      jwtManager,
	})

	return &Container{
		Router:       router,
		JWTManager:   jwtManager,
		Synchronizer: synchronizer,
		Worker:       trackingWorker,
	}
}
