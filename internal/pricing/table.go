package pricing

import (
	"github.com/aoacon/conference-backend/internal/domain"
)

// rateKey indexes the per-role per-phase price matrices
type rateKey struct {
	Role  domain.UserRole
	Phase domain.BookingPhase
}

// Table holds the full price matrix in whole INR. A zero amount for a
// role and phase means the package is unavailable for that combination.
type Table struct {
	// Conference is the base delegate rate per role and phase
	Conference map[rateKey]int64
	// WorkshopAddOn is the additional charge for a workshop on top of
	// the conference rate
	WorkshopAddOn map[rateKey]int64
	// Combo is the flat all-inclusive conference+workshop rate
	Combo map[rateKey]int64
	// Course is the flat certified course rate per role, phase independent
	Course map[domain.UserRole]int64
	// AccompanyingRate is the per-head charge for accompanying persons,
	// excluded from the GST base
	AccompanyingRate int64
}

// DefaultTable returns the published 2026 rate card
func DefaultTable() *Table {
	return &Table{
		Conference: map[rateKey]int64{
			{domain.RoleAOA, domain.PhaseEarlyBird}:    8000,
			{domain.RoleAOA, domain.PhaseRegular}:      10000,
			{domain.RoleAOA, domain.PhaseSpot}:         13000,
			{domain.RoleNonAOA, domain.PhaseEarlyBird}: 11000,
			{domain.RoleNonAOA, domain.PhaseRegular}:   13000,
			{domain.RoleNonAOA, domain.PhaseSpot}:      16000,
			{domain.RolePGS, domain.PhaseEarlyBird}:    7000,
			{domain.RolePGS, domain.PhaseRegular}:      9000,
			{domain.RolePGS, domain.PhaseSpot}:         12000,
		},
		WorkshopAddOn: map[rateKey]int64{
			{domain.RoleAOA, domain.PhaseEarlyBird}:    10000,
			{domain.RoleAOA, domain.PhaseRegular}:      12000,
			{domain.RoleNonAOA, domain.PhaseEarlyBird}: 13000,
			{domain.RoleNonAOA, domain.PhaseRegular}:   15000,
			{domain.RolePGS, domain.PhaseEarlyBird}:    9000,
			{domain.RolePGS, domain.PhaseRegular}:      11000,
		},
		Combo: map[rateKey]int64{
			{domain.RoleNonAOA, domain.PhaseEarlyBird}: 16000,
			{domain.RoleNonAOA, domain.PhaseRegular}:   18000,
			{domain.RolePGS, domain.PhaseEarlyBird}:    12000,
			{domain.RolePGS, domain.PhaseRegular}:      14000,
		},
		Course: map[domain.UserRole]int64{
			domain.RoleAOA:    5000,
			domain.RoleNonAOA: 5000,
		},
		AccompanyingRate: 3000,
	}
}

func (t *Table) conference(role domain.UserRole, phase domain.BookingPhase) int64 {
	return t.Conference[rateKey{role, phase}]
}

func (t *Table) workshopAddOn(role domain.UserRole, phase domain.BookingPhase) int64 {
	return t.WorkshopAddOn[rateKey{role, phase}]
}

func (t *Table) combo(role domain.UserRole, phase domain.BookingPhase) int64 {
	return t.Combo[rateKey{role, phase}]
}

func (t *Table) course(role domain.UserRole) int64 {
	return t.Course[role]
}
