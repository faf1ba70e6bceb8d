package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoacon/conference-backend/internal/domain"
	"github.com/aoacon/conference-backend/internal/dto"
	"github.com/aoacon/conference-backend/internal/repository"
)

type attendanceFixture struct {
	svc      AttendanceService
	regRepo  *repository.MemoryRegistrationRepository
	userRepo *repository.MemoryUserRepository
}

func newAttendanceFixture(t *testing.T) *attendanceFixture {
	t.Helper()
	attRepo := repository.NewMemoryAttendanceRepository()
	regRepo := repository.NewMemoryRegistrationRepository(2026)
	userRepo := repository.NewMemoryUserRepository()
	return &attendanceFixture{
		svc:      NewAttendanceService(attRepo, regRepo, userRepo),
		regRepo:  regRepo,
		userRepo: userRepo,
	}
}

func (f *attendanceFixture) seedPaidRegistration(t *testing.T, userID string) *domain.Registration {
	t.Helper()
	ctx := context.Background()

	user, err := domain.NewUser("Dr. Meera Nair", userID+"@example.com", "9000000001", "hash", domain.RoleAOA)
	require.NoError(t, err)
	user.ID = userID
	require.NoError(t, f.userRepo.Create(ctx, user))

	reg, err := domain.NewRegistration(userID, domain.PackageWorkshopConference, domain.WorkshopPOCUS, 0, domain.PhaseEarlyBird, domain.PriceBreakdown{
		BasePrice:       8000,
		WorkshopPrice:   10000,
		TotalWithoutGST: 18000,
		GST:             3240,
		TotalAmount:     21240,
	})
	require.NoError(t, err)
	require.NoError(t, f.regRepo.Create(ctx, reg))
	require.NoError(t, f.regRepo.MarkPaid(ctx, reg.ID, "pay_ok"))
	return reg
}

func TestAttendanceService_GetBadge(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()
	reg := f.seedPaidRegistration(t, "user-1")

	badge, err := f.svc.GetBadge(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, reg.RegistrationNumber, badge.ScanToken)
	assert.Equal(t, "Dr. Meera Nair", badge.Name)
	assert.Equal(t, string(domain.PackageWorkshopConference), badge.PackageType)
	assert.Equal(t, domain.WorkshopPOCUS, badge.SelectedWorkshop)
	assert.Equal(t, 0, badge.TotalScans)

	// Repeated access reuses the same attendance record.
	again, err := f.svc.GetBadge(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, badge.AttendanceID, again.AttendanceID)
}

func TestAttendanceService_GetBadge_UnpaidRegistration(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()

	user, err := domain.NewUser("Dr. Unpaid", "unpaid@example.com", "9000000002", "hash", domain.RoleAOA)
	require.NoError(t, err)
	user.ID = "user-2"
	require.NoError(t, f.userRepo.Create(ctx, user))

	reg, err := domain.NewRegistration("user-2", domain.PackageConferenceOnly, "", 0, domain.PhaseEarlyBird, domain.PriceBreakdown{
		BasePrice: 8000, TotalWithoutGST: 8000, GST: 1440, TotalAmount: 9440,
	})
	require.NoError(t, err)
	require.NoError(t, f.regRepo.Create(ctx, reg))

	_, err = f.svc.GetBadge(ctx, "user-2")
	assert.ErrorIs(t, err, domain.ErrRegistrationNotPaid)
}

func TestAttendanceService_CheckScan(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()
	reg := f.seedPaidRegistration(t, "user-1")

	_, err := f.svc.GetBadge(ctx, "user-1")
	require.NoError(t, err)

	badge, err := f.svc.CheckScan(ctx, reg.RegistrationNumber)
	require.NoError(t, err)
	assert.Equal(t, reg.RegistrationNumber, badge.RegistrationNumber)

	_, err = f.svc.CheckScan(ctx, "AOA2026-9999")
	assert.ErrorIs(t, err, domain.ErrAttendanceNotFound)
}

func TestAttendanceService_MarkScan(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()
	reg := f.seedPaidRegistration(t, "user-1")

	_, err := f.svc.GetBadge(ctx, "user-1")
	require.NoError(t, err)

	att, err := f.svc.MarkScan(ctx, "volunteer-7", &dto.MarkScanRequest{
		ScanToken: reg.RegistrationNumber,
		Location:  "Hall A",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, att.TotalScans)

	// Count defaults to one per scan; a group entry can carry more.
	att, err = f.svc.MarkScan(ctx, "volunteer-7", &dto.MarkScanRequest{
		ScanToken: reg.RegistrationNumber,
		Count:     2,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, att.TotalScans)

	scans, err := f.svc.ListScans(ctx, att.ID)
	require.NoError(t, err)
	require.Len(t, scans, 2)
	assert.Equal(t, "Hall A", scans[0].Location)
	assert.Equal(t, "Main Gate", scans[1].Location)
	assert.Equal(t, "volunteer-7", scans[0].ScannedBy)
}

func TestAttendanceService_MarkScan_InvalidCount(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()
	reg := f.seedPaidRegistration(t, "user-1")

	_, err := f.svc.GetBadge(ctx, "user-1")
	require.NoError(t, err)

	_, err = f.svc.MarkScan(ctx, "volunteer-7", &dto.MarkScanRequest{
		ScanToken: reg.RegistrationNumber,
		Count:     -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidScanCount)
}
