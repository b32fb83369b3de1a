package chat

import (
	"campus-backend/internal/middleware"
	"campus-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles chat endpoints.
type Handlers struct {
	Service *Service
}

type sendRequest struct {
	RecipientID string `json:"recipient_id"`
	Body        string `json:"body"`
}

// Send POST /api/v1/chat/send
func (h *Handlers) Send(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req sendRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	msg, err := h.Service.Send(c.Context(), userID, req.RecipientID, req.Body)
	if err != nil {
		switch err {
		case ErrRecipientRequired, ErrMessageRequired:
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "Message sent successfully", msg, nil)
}

// History GET /api/v1/chat/history/:peer
func (h *Handlers) History(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	msgs, err := h.Service.History(c.Context(), userID, c.Params("peer"))
	if err != nil {
		switch err {
		case ErrRecipientRequired:
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Messages fetched successfully", msgs, nil)
}
