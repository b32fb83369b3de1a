package users

import (
	"campus-backend/internal/middleware"
	"campus-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles user administration endpoints.
type Handlers struct {
	Service *Service
}

// CreateUser POST /api/v1/users/create-user
func (h *Handlers) CreateUser(c *fiber.Ctx) error {
	var in CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	u, err := h.Service.CreateUser(c.Context(), in)
	if err != nil {
		switch err {
		case ErrUnknownRole:
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, err.Error(), 400, nil)
		}
	}
	return response.SuccessCreated(c, "User created successfully", u, nil)
}

// UpdateUser PUT /api/v1/users/update-user/:id
func (h *Handlers) UpdateUser(c *fiber.Ctx) error {
	var in UpdateUserInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	u, err := h.Service.UpdateUser(c.Context(), c.Params("id"), in)
	if err != nil {
		switch err {
		case ErrUserNotFound:
			return response.NotFound(c, err.Error())
		default:
			return response.Error(c, err.Error(), 400, nil)
		}
	}
	return response.Success(c, "User updated successfully", u, nil)
}

// ViewUser GET /api/v1/users/view-user/:id
func (h *Handlers) ViewUser(c *fiber.Ctx) error {
	u, err := h.Service.ViewUser(c.Context(), c.Params("id"))
	if err != nil {
		switch err {
		case ErrUserNotFound:
			return response.NotFound(c, err.Error())
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "User fetched successfully", u, nil)
}

type updateRoleRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// UpdateRole PATCH /api/v1/users/update-role (admin only)
func (h *Handlers) UpdateRole(c *fiber.Ctx) error {
	actorID := middleware.GetUserID(c)
	if actorID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req updateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	u, err := h.Service.UpdateRole(c.Context(), actorID, req.UserID, req.Role)
	if err != nil {
		switch err {
		case ErrUserNotFound:
			return response.NotFound(c, err.Error())
		case ErrUsersCannotModifyOwnRole, ErrMustKeepOneAdmin, ErrUnknownRole:
			return response.Error(c, err.Error(), 403, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Role updated successfully", u, nil)
}

type removeUserRequest struct {
	UserID string `json:"user_id"`
}

// RemoveUser DELETE /api/v1/users/remove-user (admin only)
func (h *Handlers) RemoveUser(c *fiber.Ctx) error {
	actorID := middleware.GetUserID(c)
	if actorID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req removeUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if err := h.Service.RemoveUser(c.Context(), actorID, req.UserID); err != nil {
		switch err {
		case ErrUserNotFound:
			return response.NotFound(c, err.Error())
		case ErrCannotRemoveYourself:
			return response.Error(c, err.Error(), 403, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "User removed successfully", nil, nil)
}
