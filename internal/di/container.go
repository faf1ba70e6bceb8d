package di

import (
	"github.com/aoacon/conference-backend/internal/config"
	"github.com/aoacon/conference-backend/internal/database"
	"github.com/aoacon/conference-backend/internal/gateway"
	"github.com/aoacon/conference-backend/internal/handler"
	"github.com/aoacon/conference-backend/internal/pricing"
	"github.com/aoacon/conference-backend/internal/redis"
	"github.com/aoacon/conference-backend/internal/repository"
	"github.com/aoacon/conference-backend/internal/service"
)

// Container holds all dependencies for the application
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Gateways
	PaymentGateway gateway.PaymentGateway

	// Repositories
	UserRepo          repository.UserRepository
	RegistrationRepo  repository.RegistrationRepository
	AccommodationRepo repository.AccommodationRepository
	PaymentRepo       repository.PaymentRepository
	AttendanceRepo    repository.AttendanceRepository

	// Services
	AuthService          service.AuthService
	RegistrationService  service.RegistrationService
	AccommodationService service.AccommodationService
	PaymentService       service.PaymentService
	AttendanceService    service.AttendanceService

	// Handlers
	HealthHandler        *handler.HealthHandler
	AuthHandler          *handler.AuthHandler
	RegistrationHandler  *handler.RegistrationHandler
	AccommodationHandler *handler.AccommodationHandler
	PaymentHandler       *handler.PaymentHandler
	AttendanceHandler    *handler.AttendanceHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Config         *config.Config
	DB             *database.PostgresDB
	Redis          *redis.Client
	PaymentGateway gateway.PaymentGateway
}

// NewContainer creates a new dependency injection container. When no
// database is connected it falls back to in-memory repositories so the
// service stays usable in development.
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:             cfg.DB,
		Redis:          cfg.Redis,
		PaymentGateway: cfg.PaymentGateway,
	}
	event := cfg.Config.Event

	if c.DB != nil {
		c.UserRepo = repository.NewPostgresUserRepository(c.DB)
		c.RegistrationRepo = repository.NewPostgresRegistrationRepository(c.DB, event.Year)
		c.AccommodationRepo = repository.NewPostgresAccommodationRepository(c.DB)
		c.PaymentRepo = repository.NewPostgresPaymentRepository(c.DB)
		c.AttendanceRepo = repository.NewPostgresAttendanceRepository(c.DB)
	} else {
		c.UserRepo = repository.NewMemoryUserRepository()
		c.RegistrationRepo = repository.NewMemoryRegistrationRepository(event.Year)
		c.AccommodationRepo = repository.NewMemoryAccommodationRepository()
		c.PaymentRepo = repository.NewMemoryPaymentRepository()
		c.AttendanceRepo = repository.NewMemoryAttendanceRepository()
	}

	table := pricing.DefaultTable()
	table.AccompanyingRate = event.AccompanyingRate
	engine := pricing.NewEngine(table)
	phases := pricing.NewPhaseResolver(event.EarlyBirdEnd, event.RegularEnd)

	c.AuthService = service.NewAuthService(c.UserRepo, &service.AuthServiceConfig{
		JWTSecret:      cfg.Config.JWT.Secret,
		AccessTokenTTL: cfg.Config.JWT.AccessTokenTTL,
		Issuer:         cfg.Config.JWT.Issuer,
	})
	c.RegistrationService = service.NewRegistrationService(c.RegistrationRepo, c.UserRepo, engine, phases, &service.RegistrationServiceConfig{
		CourseCapacity: event.CourseCapacity,
	})
	c.AccommodationService = service.NewAccommodationService(c.AccommodationRepo)
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.RegistrationRepo, c.AccommodationRepo, c.PaymentGateway, &service.PaymentServiceConfig{
		KeyID:     cfg.Config.Razorpay.KeyID,
		KeySecret: cfg.Config.Razorpay.KeySecret,
		Currency:  event.Currency,
	})
	c.AttendanceService = service.NewAttendanceService(c.AttendanceRepo, c.RegistrationRepo, c.UserRepo)

	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService)
	c.RegistrationHandler = handler.NewRegistrationHandler(c.RegistrationService)
	c.AccommodationHandler = handler.NewAccommodationHandler(c.AccommodationService)
	c.PaymentHandler = handler.NewPaymentHandler(c.PaymentService)
	c.AttendanceHandler = handler.NewAttendanceHandler(c.AttendanceService)

	return c
}
