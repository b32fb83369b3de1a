package leave

import "errors"

var (
	ErrIdentityRequired = errors.New("User identity is required")
	ErrProfileNotFound  = errors.New("Employee profile not found")
	ErrNoActivePeriod   = errors.New("No active leave period")

	ErrLeaveTypeUnknown = errors.New("Unknown leave type")
	ErrLeaveTypeExists  = errors.New("Leave type code already exists")
	ErrInvalidDate      = errors.New("Invalid date format (must be YYYY-MM-DD)")
	ErrInvalidDateRange = errors.New("End date cannot be before start date")
	ErrEntryNotFound    = errors.New("Leave entry not found")
	ErrAlreadyReviewed  = errors.New("Leave entry has already been reviewed")
	ErrInvalidAction    = errors.New("Action must be approve or reject")

	ErrPeriodNotFound    = errors.New("Leave period not found")
	ErrProfileExists     = errors.New("Employee code already registered")
	ErrProfileInvalid    = errors.New("Employee code and user id are required")
	ErrAllocationInvalid = errors.New("Allocation must reference an existing profile, period and leave type")
)
