package domain

import "errors"

// Domain errors
var (
	// Registration errors
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("user already has a registration")
	ErrWorkshopRequired     = errors.New("a workshop selection is required for this package")
	ErrInvalidWorkshop      = errors.New("invalid workshop selection")
	ErrCourseCapacityFull   = errors.New("certified course seats are sold out")
	ErrCompanionsNotAllowed = errors.New("accompanying persons are not permitted for this package")

	// Pricing errors
	ErrPackageUnavailable = errors.New("package is not available for this role and phase")

	// Accommodation errors
	ErrAccommodationNotFound = errors.New("accommodation not found")
	ErrBookingNotFound       = errors.New("accommodation booking not found")
	ErrInvalidDateRange      = errors.New("check-out date must be after check-in date")
	ErrNotEnoughRooms        = errors.New("not enough rooms available")

	// Payment errors
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentAlreadyExists = errors.New("payment already exists for this target")
	ErrAlreadyPaid          = errors.New("target is already paid")
	ErrInvalidPaymentStatus = errors.New("invalid payment status transition")
	ErrSignatureMismatch    = errors.New("payment signature verification failed")
	ErrGatewayUnavailable   = errors.New("payment gateway is unavailable")

	// Attendance errors
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrRegistrationNotPaid = errors.New("registration payment not completed")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Validation errors
	ErrInvalidUserID       = errors.New("invalid user id")
	ErrInvalidGuestCount   = errors.New("number of guests must be between 1 and 4")
	ErrInvalidRoomCount    = errors.New("rooms booked must be at least 1")
	ErrInvalidScanCount    = errors.New("scan count must be at least 1")
	ErrInvalidPackageType  = errors.New("invalid registration package type")
	ErrInvalidRole         = errors.New("invalid user role")
	ErrNegativeCompanions  = errors.New("accompanying persons cannot be negative")
)

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrRegistrationNotFound) ||
		errors.Is(err, ErrAccommodationNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrPaymentNotFound) ||
		errors.Is(err, ErrAttendanceNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrWorkshopRequired) ||
		errors.Is(err, ErrInvalidWorkshop) ||
		errors.Is(err, ErrCompanionsNotAllowed) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrInvalidGuestCount) ||
		errors.Is(err, ErrInvalidRoomCount) ||
		errors.Is(err, ErrInvalidScanCount) ||
		errors.Is(err, ErrInvalidPackageType) ||
		errors.Is(err, ErrInvalidRole) ||
		errors.Is(err, ErrNegativeCompanions) ||
		errors.Is(err, ErrPackageUnavailable)
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return errors.Is(err, ErrAlreadyRegistered) ||
		errors.Is(err, ErrCourseCapacityFull) ||
		errors.Is(err, ErrNotEnoughRooms) ||
		errors.Is(err, ErrPaymentAlreadyExists) ||
		errors.Is(err, ErrAlreadyPaid) ||
		errors.Is(err, ErrInvalidPaymentStatus) ||
		errors.Is(err, ErrUserAlreadyExists)
}
