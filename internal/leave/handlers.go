package leave

import (
	"campus-backend/internal/middleware"
	"campus-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles leave endpoints over the three services.
type Handlers struct {
	Balance  *BalanceService
	Requests *RequestService
	Admin    *AdminService
}

// MyBalance GET /api/v1/leave/my-balance — the per-leave-type live balance
// for the logged-in user, one line per allocation in the active period.
func (h *Handlers) MyBalance(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	lines, err := h.Balance.ComputeBalances(c.Context(), userID)
	if err != nil {
		switch err {
		case ErrIdentityRequired:
			return response.Error(c, err.Error(), 400, nil)
		case ErrProfileNotFound, ErrNoActivePeriod:
			return response.NotFound(c, err.Error())
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Leave balance computed successfully", lines, nil)
}

// Apply POST /api/v1/leave/apply
func (h *Handlers) Apply(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	var in ApplyInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	entry, err := h.Requests.Apply(c.Context(), userID, in)
	if err != nil {
		switch err {
		case ErrProfileNotFound:
			return response.NotFound(c, err.Error())
		case ErrLeaveTypeUnknown, ErrInvalidDate, ErrInvalidDateRange:
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "Leave applied successfully", entry, nil)
}

// MyEntries GET /api/v1/leave/my-entries
func (h *Handlers) MyEntries(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	entries, err := h.Requests.ListMine(c.Context(), userID)
	if err != nil {
		switch err {
		case ErrProfileNotFound:
			return response.NotFound(c, err.Error())
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Leave entries fetched successfully", entries, nil)
}

// Pending GET /api/v1/leave/pending (approver only)
func (h *Handlers) Pending(c *fiber.Ctx) error {
	entries, err := h.Requests.ListPending(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Pending leave entries fetched successfully", entries, nil)
}

// Review PATCH /api/v1/leave/review (approver only), approve or reject by
// entry id in the body.
func (h *Handlers) Review(c *fiber.Ctx) error {
	reviewerID := middleware.GetUserID(c)
	if reviewerID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	var in ReviewInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	entry, err := h.Requests.Review(c.Context(), reviewerID, in)
	if err != nil {
		switch err {
		case ErrEntryNotFound:
			return response.NotFound(c, err.Error())
		case ErrInvalidAction, ErrAlreadyReviewed:
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Leave entry reviewed successfully", entry, nil)
}

// CreatePeriod POST /api/v1/leave/periods (admin)
func (h *Handlers) CreatePeriod(c *fiber.Ctx) error {
	var in CreatePeriodInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	period, err := h.Admin.CreatePeriod(c.Context(), in)
	if err != nil {
		switch err {
		case ErrInvalidDate, ErrInvalidDateRange:
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "Leave period created successfully", period, nil)
}

// ActivatePeriod PATCH /api/v1/leave/periods/:id/activate (admin)
func (h *Handlers) ActivatePeriod(c *fiber.Ctx) error {
	period, err := h.Admin.ActivatePeriod(c.Context(), c.Params("id"))
	if err != nil {
		switch err {
		case ErrPeriodNotFound:
			return response.NotFound(c, err.Error())
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Leave period activated successfully", period, nil)
}

// CreateLeaveType POST /api/v1/leave/types (admin)
func (h *Handlers) CreateLeaveType(c *fiber.Ctx) error {
	var in CreateLeaveTypeInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	lt, err := h.Admin.CreateLeaveType(c.Context(), in)
	if err != nil {
		switch err {
		case ErrLeaveTypeUnknown, ErrLeaveTypeExists:
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "Leave type created successfully", lt, nil)
}

// CreateAllocation POST /api/v1/leave/allocations (admin)
func (h *Handlers) CreateAllocation(c *fiber.Ctx) error {
	var in CreateAllocationInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	alloc, err := h.Admin.CreateAllocation(c.Context(), in)
	if err != nil {
		switch err {
		case ErrAllocationInvalid:
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "Leave allocation created successfully", alloc, nil)
}

// ListAllocations GET /api/v1/leave/allocations?profile_id=&period_id= (admin)
func (h *Handlers) ListAllocations(c *fiber.Ctx) error {
	allocations, err := h.Admin.ListAllocations(c.Context(), c.Query("profile_id"), c.Query("period_id"))
	if err != nil {
		switch err {
		case ErrAllocationInvalid:
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Leave allocations fetched successfully", allocations, nil)
}

// RecordSnapshot POST /api/v1/leave/snapshots (admin)
func (h *Handlers) RecordSnapshot(c *fiber.Ctx) error {
	var in RecordSnapshotInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	snap, err := h.Admin.RecordSnapshot(c.Context(), in)
	if err != nil {
		switch err {
		case ErrProfileNotFound:
			return response.NotFound(c, err.Error())
		case ErrInvalidDate:
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "Balance snapshot recorded successfully", snap, nil)
}

// CreateProfile POST /api/v1/leave/profiles (admin)
func (h *Handlers) CreateProfile(c *fiber.Ctx) error {
	var in CreateProfileInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	profile, err := h.Admin.CreateProfile(c.Context(), in)
	if err != nil {
		switch err {
		case ErrProfileExists, ErrInvalidDate, ErrProfileInvalid:
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "Employee profile created successfully", profile, nil)
}

// MyProfile GET /api/v1/leave/my-profile
func (h *Handlers) MyProfile(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	profile, err := h.Admin.GetProfileByUser(c.Context(), userID)
	if err != nil {
		switch err {
		case ErrProfileNotFound:
			return response.NotFound(c, err.Error())
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Employee profile fetched successfully", profile, nil)
}
