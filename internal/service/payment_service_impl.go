package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/aoacon/conference-backend/internal/domain"
	"github.com/aoacon/conference-backend/internal/dto"
	"github.com/aoacon/conference-backend/internal/gateway"
	"github.com/aoacon/conference-backend/internal/repository"
	"github.com/aoacon/conference-backend/internal/telemetry"
)

// paymentServiceImpl implements PaymentService
type paymentServiceImpl struct {
	paymentRepo repository.PaymentRepository
	regRepo     repository.RegistrationRepository
	accRepo     repository.AccommodationRepository
	gateway     gateway.PaymentGateway
	config      *PaymentServiceConfig
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	regRepo repository.RegistrationRepository,
	accRepo repository.AccommodationRepository,
	gw gateway.PaymentGateway,
	config *PaymentServiceConfig,
) PaymentService {
	if config == nil {
		config = &PaymentServiceConfig{}
	}
	if config.Currency == "" {
		config.Currency = "INR"
	}
	return &paymentServiceImpl{
		paymentRepo: paymentRepo,
		regRepo:     regRepo,
		accRepo:     accRepo,
		gateway:     gw,
		config:      config,
	}
}

// CreateRegistrationOrder creates (or returns the open) gateway order
// for the caller's registration
func (s *paymentServiceImpl) CreateRegistrationOrder(ctx context.Context, userID string) (*dto.OrderResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.payment.create_registration_order")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", userID))

	reg, err := s.regRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if reg.IsPaid() {
		return nil, domain.ErrAlreadyPaid
	}

	if existing, err := s.paymentRepo.GetPendingByTarget(ctx, domain.PaymentTargetRegistration, reg.ID); err == nil {
		return s.orderResponse(existing, reg.RegistrationNumber), nil
	} else if !errors.Is(err, domain.ErrPaymentNotFound) {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(ctx, &gateway.OrderRequest{
		Amount:   reg.TotalAmount,
		Currency: s.config.Currency,
		Receipt:  reg.RegistrationNumber,
		Notes: map[string]string{
			"payment_for":     string(domain.PaymentTargetRegistration),
			"registration_id": reg.ID,
			"user_id":         userID,
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "gateway order create failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	span.SetAttributes(attribute.String("gateway_order_id", order.OrderID))

	payment, err := domain.NewPayment(userID, domain.PaymentTargetRegistration, reg.ID, reg.TotalAmount, s.config.Currency, order.OrderID)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	if err := s.regRepo.SetGatewayOrder(ctx, reg.ID, order.OrderID); err != nil {
		return nil, err
	}

	return s.orderResponse(payment, reg.RegistrationNumber), nil
}

// CreateAccommodationOrder creates (or returns the open) gateway order
// for one of the caller's bookings
func (s *paymentServiceImpl) CreateAccommodationOrder(ctx context.Context, userID, bookingID string) (*dto.OrderResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.payment.create_accommodation_order")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("booking_id", bookingID),
	)

	booking, err := s.accRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, domain.ErrBookingNotFound
	}
	if booking.PaymentStatus == domain.PaymentStatePaid {
		return nil, domain.ErrAlreadyPaid
	}

	if existing, err := s.paymentRepo.GetPendingByTarget(ctx, domain.PaymentTargetAccommodation, booking.ID); err == nil {
		return s.orderResponse(existing, booking.BookingNumber), nil
	} else if !errors.Is(err, domain.ErrPaymentNotFound) {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(ctx, &gateway.OrderRequest{
		Amount:   booking.TotalAmount,
		Currency: s.config.Currency,
		Receipt:  booking.BookingNumber,
		Notes: map[string]string{
			"payment_for": string(domain.PaymentTargetAccommodation),
			"booking_id":  booking.ID,
			"user_id":     userID,
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "gateway order create failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	span.SetAttributes(attribute.String("gateway_order_id", order.OrderID))

	payment, err := domain.NewPayment(userID, domain.PaymentTargetAccommodation, booking.ID, booking.TotalAmount, s.config.Currency, order.OrderID)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	if err := s.accRepo.SetBookingGatewayOrder(ctx, booking.ID, order.OrderID); err != nil {
		return nil, err
	}

	return s.orderResponse(payment, booking.BookingNumber), nil
}

// VerifyPayment checks the gateway signature and settles the ledger
func (s *paymentServiceImpl) VerifyPayment(ctx context.Context, userID string, req *dto.VerifyPaymentRequest) (*domain.Payment, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.payment.verify")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("gateway_order_id", req.OrderID),
	)

	payment, err := s.paymentRepo.GetByGatewayOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, domain.ErrPaymentNotFound
	}

	// Retried callbacks for an already settled payment are a no-op.
	if payment.Status == domain.PaymentStatusSuccess {
		return payment, nil
	}
	if payment.Status == domain.PaymentStatusFailed {
		return nil, fmt.Errorf("%w: FAILED -> SUCCESS", domain.ErrInvalidPaymentStatus)
	}

	if !s.verifySignature(req.OrderID, req.PaymentID, req.Signature) {
		span.SetStatus(codes.Error, "signature mismatch")
		return nil, domain.ErrSignatureMismatch
	}

	if err := payment.Succeed(req.PaymentID, req.Signature); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	if err := s.applyToTarget(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// MarkFailed records a client-reported checkout failure
func (s *paymentServiceImpl) MarkFailed(ctx context.Context, userID string, req *dto.PaymentFailedRequest) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByGatewayOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, domain.ErrPaymentNotFound
	}

	if payment.Status == domain.PaymentStatusFailed {
		return payment, nil
	}
	if err := payment.Fail(req.Reason); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	if err := s.applyToTarget(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Reconcile re-applies a final ledger state to its target record
func (s *paymentServiceImpl) Reconcile(ctx context.Context, gatewayOrderID string) (*domain.Payment, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.payment.reconcile")
	defer span.End()

	span.SetAttributes(attribute.String("gateway_order_id", gatewayOrderID))

	payment, err := s.paymentRepo.GetByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return nil, err
	}
	if !payment.IsFinal() {
		return payment, nil
	}
	if err := s.applyToTarget(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// GetUserPayments retrieves the caller's payment history
func (s *paymentServiceImpl) GetUserPayments(ctx context.Context, userID string, limit, offset int) ([]*domain.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.paymentRepo.GetByUserID(ctx, userID, limit, offset)
}

// applyToTarget routes a settled ledger entry to its registration or
// booking. The target transitions are no-ops when already applied.
func (s *paymentServiceImpl) applyToTarget(ctx context.Context, payment *domain.Payment) error {
	switch {
	case payment.Status == domain.PaymentStatusSuccess && payment.Target == domain.PaymentTargetRegistration:
		return s.regRepo.MarkPaid(ctx, payment.RegistrationID, payment.GatewayPaymentID)
	case payment.Status == domain.PaymentStatusSuccess && payment.Target == domain.PaymentTargetAccommodation:
		return s.accRepo.MarkBookingPaid(ctx, payment.BookingID, payment.GatewayPaymentID)
	case payment.Status == domain.PaymentStatusFailed && payment.Target == domain.PaymentTargetRegistration:
		return s.regRepo.MarkFailed(ctx, payment.RegistrationID)
	case payment.Status == domain.PaymentStatusFailed && payment.Target == domain.PaymentTargetAccommodation:
		return s.accRepo.MarkBookingFailed(ctx, payment.BookingID)
	}
	return nil
}

// verifySignature checks the gateway checkout signature,
// HMAC-SHA256(orderID + "|" + paymentID) with the key secret.
func (s *paymentServiceImpl) verifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.config.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// orderResponse shapes a ledger entry into the checkout payload. The
// widget expects the amount in minor units.
func (s *paymentServiceImpl) orderResponse(payment *domain.Payment, receipt string) *dto.OrderResponse {
	return &dto.OrderResponse{
		OrderID:     payment.GatewayOrderID,
		Amount:      payment.Amount * 100,
		Currency:    payment.Currency,
		KeyID:       s.config.KeyID,
		PaymentID:   payment.ID,
		Description: receipt,
	}
}
