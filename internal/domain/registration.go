package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRole represents the delegate category a user registers under
type UserRole string

const (
	RoleAOA    UserRole = "AOA"     // AOA member
	RoleNonAOA UserRole = "NON_AOA" // non-member delegate
	RolePGS    UserRole = "PGS"     // postgraduate students and fellows
)

// ValidRole reports whether r is a known delegate role
func ValidRole(r UserRole) bool {
	switch r {
	case RoleAOA, RoleNonAOA, RolePGS:
		return true
	}
	return false
}

// PackageType represents the registration product being purchased
type PackageType string

const (
	PackageConferenceOnly     PackageType = "CONFERENCE_ONLY"
	PackageWorkshopConference PackageType = "WORKSHOP_CONFERENCE"
	PackageCombo              PackageType = "COMBO"
	PackageCertifiedCourse    PackageType = "AOA_CERTIFIED_COURSE"
)

// ValidPackageType reports whether p is a known package type
func ValidPackageType(p PackageType) bool {
	switch p {
	case PackageConferenceOnly, PackageWorkshopConference, PackageCombo, PackageCertifiedCourse:
		return true
	}
	return false
}

// RequiresWorkshop reports whether the package must carry a workshop selection
func (p PackageType) RequiresWorkshop() bool {
	return p == PackageWorkshopConference || p == PackageCombo
}

// AllowsCompanions reports whether accompanying persons may be added.
// The certified course admits the delegate only.
func (p PackageType) AllowsCompanions() bool {
	return p != PackageCertifiedCourse
}

// Workshop identifiers offered alongside the conference
const (
	WorkshopLabourAnalgesia   = "labour-analgesia"
	WorkshopCriticalIncidents = "critical-incidents"
	WorkshopPOCUS             = "pocus"
	WorkshopMaternalCollapse  = "maternal-collapse"
)

// ValidWorkshop reports whether w is one of the offered workshops
func ValidWorkshop(w string) bool {
	switch w {
	case WorkshopLabourAnalgesia, WorkshopCriticalIncidents, WorkshopPOCUS, WorkshopMaternalCollapse:
		return true
	}
	return false
}

// ValidateWorkshopSelection checks the workshop choice against the package.
// Packages that bundle a workshop must name one of the offered workshops.
func ValidateWorkshopSelection(pkg PackageType, workshop string) error {
	if !pkg.RequiresWorkshop() {
		return nil
	}
	if workshop == "" {
		return ErrWorkshopRequired
	}
	if !ValidWorkshop(workshop) {
		return ErrInvalidWorkshop
	}
	return nil
}

// BookingPhase is the time-windowed pricing tier captured at submission.
// The phase is a snapshot: it is never recomputed after the record exists.
type BookingPhase string

const (
	PhaseEarlyBird BookingPhase = "EARLY_BIRD"
	PhaseRegular   BookingPhase = "REGULAR"
	PhaseSpot      BookingPhase = "SPOT"
)

// PaymentState is the payment lifecycle of a priced target record.
// PENDING -> PAID | FAILED; PAID is terminal.
type PaymentState string

const (
	PaymentStatePending PaymentState = "PENDING"
	PaymentStatePaid    PaymentState = "PAID"
	PaymentStateFailed  PaymentState = "FAILED"
)

// PriceBreakdown holds the monetary components of a quote, in whole INR
type PriceBreakdown struct {
	BasePrice         int64 `json:"base_price"`
	WorkshopPrice     int64 `json:"workshop_price"`
	ComboDiscount     int64 `json:"combo_discount"`
	AccompanyingTotal int64 `json:"accompanying_total"`
	TotalWithoutGST   int64 `json:"total_without_gst"`
	GST               int64 `json:"gst"`
	TotalAmount       int64 `json:"total_amount"`
}

// Registration represents a delegate's conference registration
type Registration struct {
	ID                  string       `json:"id"`
	UserID              string       `json:"user_id"`
	RegistrationNumber  string       `json:"registration_number"`
	PackageType         PackageType  `json:"registration_type"`
	SelectedWorkshop    string       `json:"selected_workshop,omitempty"`
	AccompanyingPersons int          `json:"accompanying_persons"`
	BookingPhase        BookingPhase `json:"booking_phase"`
	PriceBreakdown
	PaymentStatus        PaymentState `json:"payment_status"`
	GatewayOrderID       string       `json:"gateway_order_id,omitempty"`
	GatewayPaymentID     string       `json:"gateway_payment_id,omitempty"`
	LifetimeMembershipID string       `json:"lifetime_membership_id,omitempty"`
	CollegeLetter        []byte       `json:"-"`
	CollegeLetterType    string       `json:"-"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

// NewRegistration creates a pending registration with a phase snapshot and
// a computed price breakdown. Identity fields are immutable afterwards.
func NewRegistration(userID string, pkg PackageType, workshop string, accompanying int, phase BookingPhase, price PriceBreakdown) (*Registration, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if !ValidPackageType(pkg) {
		return nil, ErrInvalidPackageType
	}
	if err := ValidateWorkshopSelection(pkg, workshop); err != nil {
		return nil, err
	}
	if accompanying < 0 {
		return nil, ErrNegativeCompanions
	}
	if accompanying > 0 && !pkg.AllowsCompanions() {
		return nil, ErrCompanionsNotAllowed
	}

	now := time.Now().UTC()
	return &Registration{
		ID:                  uuid.New().String(),
		UserID:              userID,
		PackageType:         pkg,
		SelectedWorkshop:    workshop,
		AccompanyingPersons: accompanying,
		BookingPhase:        phase,
		PriceBreakdown:      price,
		PaymentStatus:       PaymentStatePending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// MarkPaid transitions the registration to PAID. Calling it on an already
// paid registration is a no-op so reconciliation can re-apply safely.
func (r *Registration) MarkPaid(gatewayPaymentID string) error {
	if r.PaymentStatus == PaymentStatePaid {
		return nil
	}
	if r.PaymentStatus != PaymentStatePending {
		return fmt.Errorf("%w: %s -> PAID", ErrInvalidPaymentStatus, r.PaymentStatus)
	}
	r.PaymentStatus = PaymentStatePaid
	r.GatewayPaymentID = gatewayPaymentID
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkFailed transitions the registration to FAILED. PAID never reverts.
func (r *Registration) MarkFailed() error {
	if r.PaymentStatus == PaymentStateFailed {
		return nil
	}
	if r.PaymentStatus != PaymentStatePending {
		return fmt.Errorf("%w: %s -> FAILED", ErrInvalidPaymentStatus, r.PaymentStatus)
	}
	r.PaymentStatus = PaymentStateFailed
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// IsPaid reports whether the registration has been paid
func (r *Registration) IsPaid() bool {
	return r.PaymentStatus == PaymentStatePaid
}

// FormatRegistrationNumber renders the human-readable sequence number,
// e.g. AOA2026-0042.
func FormatRegistrationNumber(year int, seq int64) string {
	return fmt.Sprintf("AOA%d-%04d", year, seq)
}

// NewLifetimeMembershipID issues a lifetime membership identifier for a
// COMBO delegate, e.g. AOA-LM-2026-A3F29B. Never accepted from clients.
func NewLifetimeMembershipID(year int) string {
	buf := make([]byte, 3)
	rand.Read(buf)
	return fmt.Sprintf("AOA-LM-%d-%s", year, strings.ToUpper(hex.EncodeToString(buf)))
}
