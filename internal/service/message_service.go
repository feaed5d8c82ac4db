package service

import (
	"context"
	"strings"

	"find/internal/models"
	"find/internal/observability"
	"find/internal/repository"
)

type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	// notify pushes a realtime event to one user; nil disables delivery.
	notify func(ctx context.Context, userID uint, event interface{})
}

type SendMessageInput struct {
	SenderID        uint
	ReceiverID      uint
	Message         string
	AdvertisementID *uint
	ProductID       *uint
}

type GetThreadInput struct {
	UserID    uint
	ContactID uint
	Limit     int
	Offset    int
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	notify func(ctx context.Context, userID uint, event interface{}),
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		notify:      notify,
	}
}

const maxMessageLen = 5000

func (s *MessageService) SendMessage(ctx context.Context, in SendMessageInput) (*models.ChatMessage, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, models.NewValidationError("a mensagem não pode estar vazia")
	}
	if len(in.Message) > maxMessageLen {
		return nil, models.NewValidationError("a mensagem não pode exceder 5000 caracteres")
	}
	if in.ReceiverID == in.SenderID {
		return nil, models.NewValidationError("não pode enviar mensagens a si próprio")
	}
	if in.AdvertisementID != nil && in.ProductID != nil {
		return nil, models.NewValidationError("a mensagem só pode referir um anúncio ou um produto, não ambos")
	}

	if _, err := s.userRepo.GetByID(ctx, in.ReceiverID); err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{
		SenderID:        in.SenderID,
		ReceiverID:      in.ReceiverID,
		Message:         in.Message,
		AdvertisementID: in.AdvertisementID,
		ProductID:       in.ProductID,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	observability.MessagesSent.Inc()

	if s.notify != nil {
		s.notify(ctx, in.ReceiverID, map[string]interface{}{
			"type":      "new_message",
			"sender_id": in.SenderID,
			"message":   msg,
		})
	}
	return msg, nil
}

// GetThread returns the conversation with one contact, oldest first, and
// marks the incoming half as read.
func (s *MessageService) GetThread(ctx context.Context, in GetThreadInput) ([]*models.ChatMessage, error) {
	msgs, err := s.messageRepo.GetThread(ctx, in.UserID, in.ContactID, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.MarkThreadRead(ctx, in.UserID, in.ContactID); err != nil {
		return nil, err
	}
	// Reflect the mark-read in the returned payload without a second fetch.
	for _, m := range msgs {
		if m.ReceiverID == in.UserID {
			m.Read = true
		}
		enrichListingTitle(m)
	}
	return msgs, nil
}

// ListConversations folds the user's recent messages into one summary per
// partner with the latest message and the unread count.
func (s *MessageService) ListConversations(ctx context.Context, userID uint) ([]models.Conversation, error) {
	const recentWindow = 500

	msgs, err := s.messageRepo.ListForUser(ctx, userID, recentWindow)
	if err != nil {
		return nil, err
	}
	unread, err := s.messageRepo.CountUnreadBySender(ctx, userID)
	if err != nil {
		return nil, err
	}

	var conversations []models.Conversation
	seen := make(map[uint]bool)
	for _, m := range msgs {
		partnerID := m.SenderID
		partner := m.Sender
		if partnerID == userID {
			partnerID = m.ReceiverID
			partner = m.Receiver
		}
		if seen[partnerID] {
			continue
		}
		seen[partnerID] = true

		conv := models.Conversation{
			PartnerID:   partnerID,
			LastMessage: *m,
			UnreadCount: unread[partnerID],
		}
		if partner != nil {
			conv.PartnerEmail = partner.Email
			conv.PartnerPhone = partner.Phone
		}
		conversations = append(conversations, conv)
	}
	return conversations, nil
}

func enrichListingTitle(m *models.ChatMessage) {
	switch {
	case m.Advertisement != nil:
		m.ListingTitle = m.Advertisement.Title
	case m.Product != nil:
		m.ListingTitle = m.Product.Title
	}
}
