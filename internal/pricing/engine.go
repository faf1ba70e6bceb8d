package pricing

import (
	"github.com/aoacon/conference-backend/internal/domain"
)

const gstRatePercent = 18

// Engine computes deterministic price quotes from the rate table.
// Quotes carry no state; the same inputs always yield the same breakdown.
type Engine struct {
	table *Table
}

// NewEngine creates a quoting engine over the given rate table
func NewEngine(table *Table) *Engine {
	if table == nil {
		table = DefaultTable()
	}
	return &Engine{table: table}
}

// Quote computes the full price breakdown for a package purchase.
// A package whose rate resolves to zero for the role and phase is
// unavailable and yields ErrPackageUnavailable.
func (e *Engine) Quote(role domain.UserRole, pkg domain.PackageType, phase domain.BookingPhase, accompanying int) (*domain.PriceBreakdown, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	if !domain.ValidPackageType(pkg) {
		return nil, domain.ErrInvalidPackageType
	}
	if accompanying < 0 {
		return nil, domain.ErrNegativeCompanions
	}
	if accompanying > 0 && !pkg.AllowsCompanions() {
		return nil, domain.ErrCompanionsNotAllowed
	}

	var base, workshop int64
	switch pkg {
	case domain.PackageConferenceOnly:
		base = e.table.conference(role, phase)
	case domain.PackageWorkshopConference:
		base = e.table.conference(role, phase)
		workshop = e.table.workshopAddOn(role, phase)
		if workshop == 0 {
			return nil, domain.ErrPackageUnavailable
		}
	case domain.PackageCombo:
		if role == domain.RoleAOA {
			return nil, domain.ErrPackageUnavailable
		}
		base = e.table.combo(role, phase)
	case domain.PackageCertifiedCourse:
		if role == domain.RolePGS {
			return nil, domain.ErrPackageUnavailable
		}
		base = e.table.course(role)
	}
	if base == 0 {
		return nil, domain.ErrPackageUnavailable
	}

	subtotal := base + workshop
	gst := roundHalfUpPercent(subtotal, gstRatePercent)
	accompanyingTotal := int64(accompanying) * e.table.AccompanyingRate

	return &domain.PriceBreakdown{
		BasePrice:         base,
		WorkshopPrice:     workshop,
		ComboDiscount:     0,
		AccompanyingTotal: accompanyingTotal,
		TotalWithoutGST:   subtotal,
		GST:               gst,
		TotalAmount:       subtotal + gst + accompanyingTotal,
	}, nil
}

// AccompanyingRate exposes the configured per-head companion charge
func (e *Engine) AccompanyingRate() int64 {
	return e.table.AccompanyingRate
}

// roundHalfUpPercent computes amount*pct/100 rounded half up, in integer
// arithmetic so quotes never drift across platforms.
func roundHalfUpPercent(amount int64, pct int64) int64 {
	return (amount*pct + 50) / 100
}
