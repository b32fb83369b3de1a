package certificates

import (
	"campus-backend/internal/middleware"
	"campus-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles certificate endpoints.
type Handlers struct {
	Service *Service
}

// Create POST /api/v1/certificates/create
func (h *Handlers) Create(c *fiber.Ctx) error {
	issuerID, err := uuid.Parse(middleware.GetUserID(c))
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	var in CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	cert, err := h.Service.Create(c.Context(), issuerID, in)
	if err != nil {
		switch err {
		case ErrStudentNameRequired, ErrRollNumberRequired, ErrUnknownCertType:
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "Certificate issued successfully", cert, nil)
}

// ListByRoll GET /api/v1/certificates/by-roll/:roll
func (h *Handlers) ListByRoll(c *fiber.Ctx) error {
	certs, err := h.Service.ListByRoll(c.Context(), c.Params("roll"))
	if err != nil {
		switch err {
		case ErrRollNumberRequired:
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Certificates fetched successfully", certs, nil)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus PATCH /api/v1/certificates/:id/status
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	cert, err := h.Service.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		switch err {
		case ErrCertificateNotFound:
			return response.NotFound(c, err.Error())
		case ErrUnknownStatus:
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Certificate status updated successfully", cert, nil)
}
