package server

import (
	"find/internal/models"
	"find/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SendMessage handles POST /api/messages
// @Summary Send a direct message
// @Description Send a message to another user, optionally about a listing
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{receiver_id=int,message=string,advertisement_id=int,product_id=int} true "Message"
// @Success 201 {object} object{message=models.ChatMessage}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /messages [post]
func (s *Server) SendMessage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		ReceiverID      uint   `json:"receiver_id"`
		Message         string `json:"message"`
		AdvertisementID *uint  `json:"advertisement_id"`
		ProductID       *uint  `json:"product_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.messageService.SendMessage(c.Context(), service.SendMessageInput{
		SenderID:        userID,
		ReceiverID:      req.ReceiverID,
		Message:         req.Message,
		AdvertisementID: req.AdvertisementID,
		ProductID:       req.ProductID,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": msg})
}

// GetConversations handles GET /api/messages
// @Summary List conversations
// @Description Summarize the authenticated user's conversations with last message and unread count
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{conversations=[]models.Conversation}
// @Router /messages [get]
func (s *Server) GetConversations(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	conversations, err := s.messageService.ListConversations(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"conversations": conversations})
}

// GetThread handles GET /api/messages/:userId
// @Summary Get a conversation thread
// @Description Return the two-way history with one user, oldest first, marking incoming messages read
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Conversation partner ID"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} object{messages=[]models.ChatMessage}
// @Router /messages/{userId} [get]
func (s *Server) GetThread(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	contactID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 50)

	msgs, err := s.messageService.GetThread(c.Context(), service.GetThreadInput{
		UserID:    userID,
		ContactID: contactID,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"messages": msgs})
}
