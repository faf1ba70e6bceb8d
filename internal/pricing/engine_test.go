package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoacon/conference-backend/internal/domain"
)

func TestEngine_Quote_ConferenceOnly(t *testing.T) {
	engine := NewEngine(DefaultTable())

	quote, err := engine.Quote(domain.RoleAOA, domain.PackageConferenceOnly, domain.PhaseEarlyBird, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(8000), quote.BasePrice)
	assert.Equal(t, int64(0), quote.WorkshopPrice)
	assert.Equal(t, int64(8000), quote.TotalWithoutGST)
	assert.Equal(t, int64(1440), quote.GST)
	assert.Equal(t, int64(9440), quote.TotalAmount)
}

func TestEngine_Quote_PhaseMatrix(t *testing.T) {
	engine := NewEngine(DefaultTable())

	tests := []struct {
		name      string
		role      domain.UserRole
		pkg       domain.PackageType
		phase     domain.BookingPhase
		wantBase  int64
		wantAddOn int64
	}{
		{"aoa conference regular", domain.RoleAOA, domain.PackageConferenceOnly, domain.PhaseRegular, 10000, 0},
		{"aoa conference spot", domain.RoleAOA, domain.PackageConferenceOnly, domain.PhaseSpot, 13000, 0},
		{"non-aoa conference early bird", domain.RoleNonAOA, domain.PackageConferenceOnly, domain.PhaseEarlyBird, 11000, 0},
		{"non-aoa conference spot", domain.RoleNonAOA, domain.PackageConferenceOnly, domain.PhaseSpot, 16000, 0},
		{"pgs conference early bird", domain.RolePGS, domain.PackageConferenceOnly, domain.PhaseEarlyBird, 7000, 0},
		{"pgs conference regular", domain.RolePGS, domain.PackageConferenceOnly, domain.PhaseRegular, 9000, 0},
		{"aoa workshop early bird", domain.RoleAOA, domain.PackageWorkshopConference, domain.PhaseEarlyBird, 8000, 10000},
		{"non-aoa workshop regular", domain.RoleNonAOA, domain.PackageWorkshopConference, domain.PhaseRegular, 13000, 15000},
		{"pgs workshop regular", domain.RolePGS, domain.PackageWorkshopConference, domain.PhaseRegular, 9000, 11000},
		{"non-aoa combo early bird", domain.RoleNonAOA, domain.PackageCombo, domain.PhaseEarlyBird, 16000, 0},
		{"pgs combo regular", domain.RolePGS, domain.PackageCombo, domain.PhaseRegular, 14000, 0},
		{"aoa course any phase", domain.RoleAOA, domain.PackageCertifiedCourse, domain.PhaseSpot, 5000, 0},
		{"non-aoa course any phase", domain.RoleNonAOA, domain.PackageCertifiedCourse, domain.PhaseEarlyBird, 5000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := engine.Quote(tt.role, tt.pkg, tt.phase, 0)
			require.NoError(t, err)

			subtotal := tt.wantBase + tt.wantAddOn
			assert.Equal(t, tt.wantBase, quote.BasePrice)
			assert.Equal(t, tt.wantAddOn, quote.WorkshopPrice)
			assert.Equal(t, subtotal, quote.TotalWithoutGST)
			assert.Equal(t, (subtotal*18+50)/100, quote.GST)
			assert.Equal(t, subtotal+quote.GST, quote.TotalAmount)
		})
	}
}

func TestEngine_Quote_UnavailablePackages(t *testing.T) {
	engine := NewEngine(DefaultTable())

	tests := []struct {
		name  string
		role  domain.UserRole
		pkg   domain.PackageType
		phase domain.BookingPhase
	}{
		{"workshop add-on closes at spot", domain.RoleAOA, domain.PackageWorkshopConference, domain.PhaseSpot},
		{"non-aoa workshop spot", domain.RoleNonAOA, domain.PackageWorkshopConference, domain.PhaseSpot},
		{"combo closes at spot", domain.RoleNonAOA, domain.PackageCombo, domain.PhaseSpot},
		{"aoa has no combo", domain.RoleAOA, domain.PackageCombo, domain.PhaseEarlyBird},
		{"pgs cannot take the course", domain.RolePGS, domain.PackageCertifiedCourse, domain.PhaseEarlyBird},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := engine.Quote(tt.role, tt.pkg, tt.phase, 0)
			assert.ErrorIs(t, err, domain.ErrPackageUnavailable)
			assert.Nil(t, quote)
		})
	}
}

func TestEngine_Quote_AccompanyingPersons(t *testing.T) {
	engine := NewEngine(DefaultTable())

	quote, err := engine.Quote(domain.RoleNonAOA, domain.PackageConferenceOnly, domain.PhaseRegular, 2)
	require.NoError(t, err)

	// companions are charged flat per head and excluded from the GST base
	assert.Equal(t, int64(13000), quote.TotalWithoutGST)
	assert.Equal(t, int64(2340), quote.GST)
	assert.Equal(t, int64(6000), quote.AccompanyingTotal)
	assert.Equal(t, int64(21340), quote.TotalAmount)
}

func TestEngine_Quote_CompanionsRejectedForCourse(t *testing.T) {
	engine := NewEngine(DefaultTable())

	quote, err := engine.Quote(domain.RoleAOA, domain.PackageCertifiedCourse, domain.PhaseRegular, 1)
	assert.ErrorIs(t, err, domain.ErrCompanionsNotAllowed)
	assert.Nil(t, quote)
}

func TestEngine_Quote_InvalidInputs(t *testing.T) {
	engine := NewEngine(nil)

	_, err := engine.Quote("VIP", domain.PackageConferenceOnly, domain.PhaseRegular, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	_, err = engine.Quote(domain.RoleAOA, "GALA_DINNER", domain.PhaseRegular, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidPackageType)

	_, err = engine.Quote(domain.RoleAOA, domain.PackageConferenceOnly, domain.PhaseRegular, -1)
	assert.ErrorIs(t, err, domain.ErrNegativeCompanions)
}

func TestEngine_Quote_Deterministic(t *testing.T) {
	engine := NewEngine(DefaultTable())

	first, err := engine.Quote(domain.RolePGS, domain.PackageWorkshopConference, domain.PhaseEarlyBird, 1)
	require.NoError(t, err)
	second, err := engine.Quote(domain.RolePGS, domain.PackageWorkshopConference, domain.PhaseEarlyBird, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRoundHalfUpPercent(t *testing.T) {
	assert.Equal(t, int64(1440), roundHalfUpPercent(8000, 18))
	assert.Equal(t, int64(900), roundHalfUpPercent(5000, 18))
	assert.Equal(t, int64(18), roundHalfUpPercent(100, 18))
	assert.Equal(t, int64(0), roundHalfUpPercent(0, 18))
	// 18% of 3 is 0.54, rounds up
	assert.Equal(t, int64(1), roundHalfUpPercent(3, 18))
	// 18% of 2 is 0.36, rounds down
	assert.Equal(t, int64(0), roundHalfUpPercent(2, 18))
}
