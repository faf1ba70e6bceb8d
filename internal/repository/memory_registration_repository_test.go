package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoacon/conference-backend/internal/domain"
)

func newTestRegistration(t *testing.T, userID string, pkg domain.PackageType) *domain.Registration {
	t.Helper()
	workshop := ""
	if pkg.RequiresWorkshop() {
		workshop = domain.WorkshopPOCUS
	}
	reg, err := domain.NewRegistration(userID, pkg, workshop, 0, domain.PhaseEarlyBird, domain.PriceBreakdown{
		BasePrice:       8000,
		TotalWithoutGST: 8000,
		GST:             1440,
		TotalAmount:     9440,
	})
	require.NoError(t, err)
	return reg
}

func TestMemoryRegistrationRepository_Create_AssignsSequentialNumbers(t *testing.T) {
	repo := NewMemoryRegistrationRepository(2026)
	ctx := context.Background()

	first := newTestRegistration(t, "user-1", domain.PackageConferenceOnly)
	second := newTestRegistration(t, "user-2", domain.PackageConferenceOnly)

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, "AOA2026-0001", first.RegistrationNumber)
	assert.Equal(t, "AOA2026-0002", second.RegistrationNumber)

	found, err := repo.GetByRegistrationNumber(ctx, "AOA2026-0002")
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.ID)
}

func TestMemoryRegistrationRepository_Create_RejectsDuplicateUser(t *testing.T) {
	repo := NewMemoryRegistrationRepository(2026)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestRegistration(t, "user-1", domain.PackageConferenceOnly)))

	err := repo.Create(ctx, newTestRegistration(t, "user-1", domain.PackageConferenceOnly))
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
}

func TestMemoryRegistrationRepository_CreateWithCapacity(t *testing.T) {
	repo := NewMemoryRegistrationRepository(2026)
	ctx := context.Background()

	require.NoError(t, repo.CreateWithCapacity(ctx, newTestRegistration(t, "user-1", domain.PackageCertifiedCourse), 2))
	require.NoError(t, repo.CreateWithCapacity(ctx, newTestRegistration(t, "user-2", domain.PackageCertifiedCourse), 2))

	err := repo.CreateWithCapacity(ctx, newTestRegistration(t, "user-3", domain.PackageCertifiedCourse), 2)
	assert.ErrorIs(t, err, domain.ErrCourseCapacityFull)

	count, err := repo.CountByPackageType(ctx, domain.PackageCertifiedCourse)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMemoryRegistrationRepository_CreateWithCapacity_Concurrent(t *testing.T) {
	repo := NewMemoryRegistrationRepository(2026)
	ctx := context.Background()
	capacity := 40

	var wg sync.WaitGroup
	errs := make(chan error, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			reg := newTestRegistration(t, uniqueUserID(n), domain.PackageCertifiedCourse)
			errs <- repo.CreateWithCapacity(ctx, reg, capacity)
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded, full := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case err == domain.ErrCourseCapacityFull:
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, capacity, succeeded)
	assert.Equal(t, 100-capacity, full)
}

func uniqueUserID(n int) string {
	return fmt.Sprintf("user-%03d", n)
}

func TestMemoryRegistrationRepository_MarkPaid(t *testing.T) {
	repo := NewMemoryRegistrationRepository(2026)
	ctx := context.Background()

	reg := newTestRegistration(t, "user-1", domain.PackageConferenceOnly)
	require.NoError(t, repo.Create(ctx, reg))

	require.NoError(t, repo.MarkPaid(ctx, reg.ID, "pay_123"))

	// re-applying is a no-op
	require.NoError(t, repo.MarkPaid(ctx, reg.ID, "pay_123"))

	stored, err := repo.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatePaid, stored.PaymentStatus)
	assert.Equal(t, "pay_123", stored.GatewayPaymentID)

	// paid never reverts to failed
	err = repo.MarkFailed(ctx, reg.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentStatus)
}

func TestMemoryRegistrationRepository_MarkPaid_NotFound(t *testing.T) {
	repo := NewMemoryRegistrationRepository(2026)

	err := repo.MarkPaid(context.Background(), "missing", "pay_123")
	assert.ErrorIs(t, err, domain.ErrRegistrationNotFound)
}
