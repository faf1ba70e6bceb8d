package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoacon/conference-backend/internal/domain"
	"github.com/aoacon/conference-backend/internal/dto"
	"github.com/aoacon/conference-backend/internal/gateway"
	"github.com/aoacon/conference-backend/internal/repository"
)

const testKeySecret = "test_key_secret"

type paymentFixture struct {
	svc     PaymentService
	regRepo *repository.MemoryRegistrationRepository
	accRepo *repository.MemoryAccommodationRepository
	payRepo *repository.MemoryPaymentRepository
	gw      *gateway.MockGateway
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	regRepo := repository.NewMemoryRegistrationRepository(2026)
	accRepo := repository.NewMemoryAccommodationRepository()
	payRepo := repository.NewMemoryPaymentRepository()
	gw := gateway.NewMockGateway(nil)

	svc := NewPaymentService(payRepo, regRepo, accRepo, gw, &PaymentServiceConfig{
		KeyID:     "rzp_test_key",
		KeySecret: testKeySecret,
		Currency:  "INR",
	})
	return &paymentFixture{svc: svc, regRepo: regRepo, accRepo: accRepo, payRepo: payRepo, gw: gw}
}

func (f *paymentFixture) seedRegistration(t *testing.T, userID string) *domain.Registration {
	t.Helper()
	reg, err := domain.NewRegistration(userID, domain.PackageConferenceOnly, "", 0, domain.PhaseEarlyBird, domain.PriceBreakdown{
		BasePrice:       8000,
		TotalWithoutGST: 8000,
		GST:             1440,
		TotalAmount:     9440,
	})
	require.NoError(t, err)
	require.NoError(t, f.regRepo.Create(context.Background(), reg))
	return reg
}

func signOrder(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestPaymentService_CreateRegistrationOrder(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	reg := f.seedRegistration(t, "user-1")

	order, err := f.svc.CreateRegistrationOrder(ctx, "user-1")
	require.NoError(t, err)

	assert.NotEmpty(t, order.OrderID)
	assert.Equal(t, int64(944000), order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "rzp_test_key", order.KeyID)

	stored, err := f.regRepo.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderID, stored.GatewayOrderID)
}

func TestPaymentService_CreateRegistrationOrder_IdempotentWhilePending(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	f.seedRegistration(t, "user-1")

	first, err := f.svc.CreateRegistrationOrder(ctx, "user-1")
	require.NoError(t, err)

	second, err := f.svc.CreateRegistrationOrder(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Equal(t, first.PaymentID, second.PaymentID)
}

func TestPaymentService_CreateRegistrationOrder_AlreadyPaid(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	reg := f.seedRegistration(t, "user-1")
	require.NoError(t, f.regRepo.MarkPaid(ctx, reg.ID, "pay_done"))

	_, err := f.svc.CreateRegistrationOrder(ctx, "user-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
}

func TestPaymentService_CreateRegistrationOrder_NoRegistration(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.CreateRegistrationOrder(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrRegistrationNotFound)
}

func TestPaymentService_CreateRegistrationOrder_GatewayDown(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	f.seedRegistration(t, "user-1")
	f.gw.SetFailing(true)

	_, err := f.svc.CreateRegistrationOrder(ctx, "user-1")
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)

	// Nothing persisted; retry works once the gateway recovers.
	f.gw.SetFailing(false)
	_, err = f.svc.CreateRegistrationOrder(ctx, "user-1")
	assert.NoError(t, err)
}

func TestPaymentService_VerifyPayment(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	reg := f.seedRegistration(t, "user-1")

	order, err := f.svc.CreateRegistrationOrder(ctx, "user-1")
	require.NoError(t, err)

	payment, err := f.svc.VerifyPayment(ctx, "user-1", &dto.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_abc",
		Signature: signOrder(order.OrderID, "pay_abc"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSuccess, payment.Status)
	assert.Equal(t, "pay_abc", payment.GatewayPaymentID)

	stored, err := f.regRepo.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatePaid, stored.PaymentStatus)
	assert.Equal(t, "pay_abc", stored.GatewayPaymentID)
}

func TestPaymentService_VerifyPayment_Idempotent(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	f.seedRegistration(t, "user-1")

	order, err := f.svc.CreateRegistrationOrder(ctx, "user-1")
	require.NoError(t, err)

	req := &dto.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_abc",
		Signature: signOrder(order.OrderID, "pay_abc"),
	}
	_, err = f.svc.VerifyPayment(ctx, "user-1", req)
	require.NoError(t, err)

	payment, err := f.svc.VerifyPayment(ctx, "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSuccess, payment.Status)
}

func TestPaymentService_VerifyPayment_BadSignature(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	f.seedRegistration(t, "user-1")

	order, err := f.svc.CreateRegistrationOrder(ctx, "user-1")
	require.NoError(t, err)

	_, err = f.svc.VerifyPayment(ctx, "user-1", &dto.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_abc",
		Signature: "deadbeef",
	})
	assert.ErrorIs(t, err, domain.ErrSignatureMismatch)

	// The ledger stays pending so a correct callback can still settle it.
	payment, err := f.payRepo.GetByGatewayOrderID(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, payment.Status)
}

func TestPaymentService_VerifyPayment_WrongUser(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	f.seedRegistration(t, "user-1")

	order, err := f.svc.CreateRegistrationOrder(ctx, "user-1")
	require.NoError(t, err)

	_, err = f.svc.VerifyPayment(ctx, "user-2", &dto.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_abc",
		Signature: signOrder(order.OrderID, "pay_abc"),
	})
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
}

func TestPaymentService_VerifyPayment_AfterFailure(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	f.seedRegistration(t, "user-1")

	order, err := f.svc.CreateRegistrationOrder(ctx, "user-1")
	require.NoError(t, err)

	_, err = f.svc.MarkFailed(ctx, "user-1", &dto.PaymentFailedRequest{OrderID: order.OrderID, Reason: "card declined"})
	require.NoError(t, err)

	_, err = f.svc.VerifyPayment(ctx, "user-1", &dto.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_abc",
		Signature: signOrder(order.OrderID, "pay_abc"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentStatus)
}

func TestPaymentService_MarkFailed(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	reg := f.seedRegistration(t, "user-1")

	order, err := f.svc.CreateRegistrationOrder(ctx, "user-1")
	require.NoError(t, err)

	payment, err := f.svc.MarkFailed(ctx, "user-1", &dto.PaymentFailedRequest{OrderID: order.OrderID, Reason: "card declined"})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, payment.Status)
	assert.Equal(t, "card declined", payment.FailureReason)

	stored, err := f.regRepo.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStateFailed, stored.PaymentStatus)

	// Reporting the same failure again is a no-op.
	_, err = f.svc.MarkFailed(ctx, "user-1", &dto.PaymentFailedRequest{OrderID: order.OrderID})
	assert.NoError(t, err)
}

func TestPaymentService_Reconcile_ReappliesSuccess(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	reg := f.seedRegistration(t, "user-1")

	order, err := f.svc.CreateRegistrationOrder(ctx, "user-1")
	require.NoError(t, err)

	// Settle the ledger directly, as if the target update was missed.
	payment, err := f.payRepo.GetByGatewayOrderID(ctx, order.OrderID)
	require.NoError(t, err)
	require.NoError(t, payment.Succeed("pay_abc", signOrder(order.OrderID, "pay_abc")))
	require.NoError(t, f.payRepo.Update(ctx, payment))

	stored, err := f.regRepo.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	require.Equal(t, domain.PaymentStatePending, stored.PaymentStatus)

	_, err = f.svc.Reconcile(ctx, order.OrderID)
	require.NoError(t, err)

	stored, err = f.regRepo.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatePaid, stored.PaymentStatus)
}

func TestPaymentService_AccommodationOrderAndVerify(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	acc := &domain.Accommodation{
		ID:             "acc-1",
		Name:           "Hotel Sunflower",
		Location:       "Near venue",
		PricePerNight:  4000,
		TotalRooms:     5,
		AvailableRooms: 5,
		IsActive:       true,
	}
	require.NoError(t, f.accRepo.Create(ctx, acc))

	booking, err := domain.NewAccommodationBooking("user-1", acc,
		mustDate(t, "2026-11-19"), mustDate(t, "2026-11-22"), 2, 1, "")
	require.NoError(t, err)
	require.NoError(t, f.accRepo.CreateBooking(ctx, booking))

	order, err := f.svc.CreateAccommodationOrder(ctx, "user-1", booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.TotalAmount*100, order.Amount)

	// Someone else's booking is invisible.
	_, err = f.svc.CreateAccommodationOrder(ctx, "user-2", booking.ID)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	_, err = f.svc.VerifyPayment(ctx, "user-1", &dto.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_acc",
		Signature: signOrder(order.OrderID, "pay_acc"),
	})
	require.NoError(t, err)

	stored, err := f.accRepo.GetBookingByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatePaid, stored.PaymentStatus)
	assert.Equal(t, domain.BookingStatusConfirmed, stored.BookingStatus)

	_, err = f.svc.CreateAccommodationOrder(ctx, "user-1", booking.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
}
