package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/aoacon/conference-backend/internal/domain"
	"github.com/aoacon/conference-backend/internal/dto"
	"github.com/aoacon/conference-backend/internal/pricing"
	"github.com/aoacon/conference-backend/internal/repository"
	"github.com/aoacon/conference-backend/internal/telemetry"
)

// RegistrationServiceConfig holds configuration for RegistrationService
type RegistrationServiceConfig struct {
	CourseCapacity int
}

// RegistrationService defines the interface for registration operations
type RegistrationService interface {
	// Register submits a conference registration for a user. The price
	// and booking phase are computed server-side at submission time and
	// frozen on the record.
	Register(ctx context.Context, userID string, req *dto.CreateRegistrationRequest) (*domain.Registration, error)

	// GetMyRegistration retrieves the caller's registration
	GetMyRegistration(ctx context.Context, userID string) (*domain.Registration, error)

	// GetByID retrieves a registration by id
	GetByID(ctx context.Context, id string) (*domain.Registration, error)

	// Quote computes a price preview for the caller without creating
	// anything
	Quote(ctx context.Context, userID string, req *dto.PricingRequest) (*domain.PriceBreakdown, domain.BookingPhase, error)

	// QuoteMatrix computes quotes for every package the caller's role can
	// buy at the current phase. Unavailable packages are omitted.
	QuoteMatrix(ctx context.Context, userID string, accompanying int) (map[domain.PackageType]*domain.PriceBreakdown, domain.BookingPhase, error)

	// List retrieves registrations for the admin dashboard
	List(ctx context.Context, limit, offset int) ([]*domain.Registration, error)
}

// registrationService implements RegistrationService
type registrationService struct {
	regRepo  repository.RegistrationRepository
	userRepo repository.UserRepository
	engine   *pricing.Engine
	phases   *pricing.PhaseResolver
	config   *RegistrationServiceConfig
	now      func() time.Time
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	regRepo repository.RegistrationRepository,
	userRepo repository.UserRepository,
	engine *pricing.Engine,
	phases *pricing.PhaseResolver,
	config *RegistrationServiceConfig,
) RegistrationService {
	if config == nil {
		config = &RegistrationServiceConfig{}
	}
	if config.CourseCapacity == 0 {
		config.CourseCapacity = 40
	}
	return &registrationService{
		regRepo:  regRepo,
		userRepo: userRepo,
		engine:   engine,
		phases:   phases,
		config:   config,
		now:      time.Now,
	}
}

// Register submits a conference registration for a user
func (s *registrationService) Register(ctx context.Context, userID string, req *dto.CreateRegistrationRequest) (*domain.Registration, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.registration.register")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("registration_type", req.PackageType),
	)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.regRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrRegistrationNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyRegistered
	}

	pkg := domain.PackageType(req.PackageType)
	if err := domain.ValidateWorkshopSelection(pkg, req.SelectedWorkshop); err != nil {
		return nil, err
	}

	phase := s.phases.Resolve(s.now())

	price, err := s.engine.Quote(user.Role, pkg, phase, req.AccompanyingPersons)
	if err != nil {
		return nil, err
	}

	reg, err := domain.NewRegistration(userID, pkg, req.SelectedWorkshop, req.AccompanyingPersons, phase, *price)
	if err != nil {
		return nil, err
	}
	if pkg == domain.PackageCombo {
		reg.LifetimeMembershipID = domain.NewLifetimeMembershipID(s.now().Year())
	}
	reg.CollegeLetter = req.CollegeLetter
	reg.CollegeLetterType = req.CollegeLetterType

	if pkg == domain.PackageCertifiedCourse {
		err = s.regRepo.CreateWithCapacity(ctx, reg, s.config.CourseCapacity)
	} else {
		err = s.regRepo.Create(ctx, reg)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("registration_number", reg.RegistrationNumber))
	return reg, nil
}

// GetMyRegistration retrieves the caller's registration
func (s *registrationService) GetMyRegistration(ctx context.Context, userID string) (*domain.Registration, error) {
	return s.regRepo.GetByUserID(ctx, userID)
}

// GetByID retrieves a registration by id
func (s *registrationService) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	return s.regRepo.GetByID(ctx, id)
}

// Quote computes a price preview for the caller
func (s *registrationService) Quote(ctx context.Context, userID string, req *dto.PricingRequest) (*domain.PriceBreakdown, domain.BookingPhase, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	phase := s.phases.Resolve(s.now())
	price, err := s.engine.Quote(user.Role, domain.PackageType(req.PackageType), phase, req.AccompanyingPersons)
	if err != nil {
		return nil, "", err
	}
	return price, phase, nil
}

// QuoteMatrix computes quotes for every package available to the caller
func (s *registrationService) QuoteMatrix(ctx context.Context, userID string, accompanying int) (map[domain.PackageType]*domain.PriceBreakdown, domain.BookingPhase, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	phase := s.phases.Resolve(s.now())
	packages := []domain.PackageType{
		domain.PackageConferenceOnly,
		domain.PackageWorkshopConference,
		domain.PackageCombo,
		domain.PackageCertifiedCourse,
	}

	quotes := make(map[domain.PackageType]*domain.PriceBreakdown, len(packages))
	for _, pkg := range packages {
		price, err := s.engine.Quote(user.Role, pkg, phase, accompanying)
		if err != nil {
			continue
		}
		quotes[pkg] = price
	}
	return quotes, phase, nil
}

// List retrieves registrations for the admin dashboard
func (s *registrationService) List(ctx context.Context, limit, offset int) ([]*domain.Registration, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.regRepo.List(ctx, limit, offset)
}
