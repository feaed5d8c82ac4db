package service

import (
	"context"
	"testing"
	"time"

	"find/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageService_SendMessage_Validation(t *testing.T) {
	t.Parallel()

	t.Run("empty message", func(t *testing.T) {
		t.Parallel()
		svc := NewMessageService(noopMessageRepo(), noopUserRepo(), nil)
		_, err := svc.SendMessage(context.Background(), SendMessageInput{
			SenderID: 1, ReceiverID: 2, Message: "   ",
		})
		assertValidationError(t, err)
	})

	t.Run("cannot message yourself", func(t *testing.T) {
		t.Parallel()
		svc := NewMessageService(noopMessageRepo(), noopUserRepo(), nil)
		_, err := svc.SendMessage(context.Background(), SendMessageInput{
			SenderID: 1, ReceiverID: 1, Message: "olá",
		})
		assertValidationError(t, err)
	})

	t.Run("at most one listing reference", func(t *testing.T) {
		t.Parallel()
		svc := NewMessageService(noopMessageRepo(), noopUserRepo(), nil)
		adID := uint(1)
		productID := uint(2)
		_, err := svc.SendMessage(context.Background(), SendMessageInput{
			SenderID:        1,
			ReceiverID:      2,
			Message:         "olá",
			AdvertisementID: &adID,
			ProductID:       &productID,
		})
		assertValidationError(t, err)
	})

	t.Run("unknown receiver propagates not found", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewMessageService(noopMessageRepo(), userRepo, nil)
		_, err := svc.SendMessage(context.Background(), SendMessageInput{
			SenderID: 1, ReceiverID: 99, Message: "olá",
		})
		assertAppErrorCode(t, err, "NOT_FOUND")
	})
}

func TestMessageService_SendMessage_NotifiesReceiver(t *testing.T) {
	t.Parallel()

	msgRepo := noopMessageRepo()
	msgRepo.createFn = func(_ context.Context, m *models.ChatMessage) error {
		m.ID = 10
		return nil
	}

	var notifiedUser uint
	var notifiedEvent interface{}
	notify := func(_ context.Context, userID uint, event interface{}) {
		notifiedUser = userID
		notifiedEvent = event
	}

	svc := NewMessageService(msgRepo, noopUserRepo(), notify)
	adID := uint(3)
	msg, err := svc.SendMessage(context.Background(), SendMessageInput{
		SenderID:        1,
		ReceiverID:      2,
		Message:         "Ainda está disponível?",
		AdvertisementID: &adID,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(10), msg.ID)
	assert.False(t, msg.Read, "new messages start unread")
	assert.Equal(t, uint(2), notifiedUser)
	require.NotNil(t, notifiedEvent)

	payload, ok := notifiedEvent.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "new_message", payload["type"])
}

func TestMessageService_GetThread(t *testing.T) {
	t.Parallel()

	msgRepo := noopMessageRepo()
	msgRepo.getThreadFn = func(_ context.Context, userID, contactID uint, _, _ int) ([]*models.ChatMessage, error) {
		return []*models.ChatMessage{
			{ID: 1, SenderID: contactID, ReceiverID: userID, Message: "olá", Read: false,
				Advertisement: &models.Advertisement{ID: 3, Title: "Recolha de alimentos"}},
			{ID: 2, SenderID: userID, ReceiverID: contactID, Message: "bom dia", Read: false},
		}, nil
	}
	var markedReceiver, markedSender uint
	msgRepo.markThreadReadFn = func(_ context.Context, receiverID, senderID uint) error {
		markedReceiver = receiverID
		markedSender = senderID
		return nil
	}

	svc := NewMessageService(msgRepo, noopUserRepo(), nil)
	msgs, err := svc.GetThread(context.Background(), GetThreadInput{UserID: 5, ContactID: 6, Limit: 50})
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, uint(5), markedReceiver)
	assert.Equal(t, uint(6), markedSender)

	assert.True(t, msgs[0].Read, "incoming message should be reported read")
	assert.False(t, msgs[1].Read, "outgoing message read state belongs to the contact")
	assert.Equal(t, "Recolha de alimentos", msgs[0].ListingTitle)
}

func TestMessageService_ListConversations(t *testing.T) {
	t.Parallel()

	now := time.Now()
	msgRepo := noopMessageRepo()
	msgRepo.listForUserFn = func(_ context.Context, userID uint, _ int) ([]*models.ChatMessage, error) {
		// Newest first, two partners, several messages each.
		return []*models.ChatMessage{
			{ID: 4, SenderID: 3, ReceiverID: userID, Message: "última do João", CreatedAt: now,
				Sender: &models.User{ID: 3, Email: "joao@example.com", Phone: "911111111"}},
			{ID: 3, SenderID: userID, ReceiverID: 5, Message: "última para a Ana", CreatedAt: now.Add(-time.Minute),
				Receiver: &models.User{ID: 5, Email: "ana@example.com"}},
			{ID: 2, SenderID: 3, ReceiverID: userID, Message: "mais antiga do João", CreatedAt: now.Add(-time.Hour),
				Sender: &models.User{ID: 3, Email: "joao@example.com"}},
		}, nil
	}
	msgRepo.countUnreadFn = func(_ context.Context, _ uint) (map[uint]int, error) {
		return map[uint]int{3: 2}, nil
	}

	svc := NewMessageService(msgRepo, noopUserRepo(), nil)
	convs, err := svc.ListConversations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, convs, 2)

	assert.Equal(t, uint(3), convs[0].PartnerID)
	assert.Equal(t, "joao@example.com", convs[0].PartnerEmail)
	assert.Equal(t, "última do João", convs[0].LastMessage.Message)
	assert.Equal(t, 2, convs[0].UnreadCount)

	assert.Equal(t, uint(5), convs[1].PartnerID)
	assert.Equal(t, "ana@example.com", convs[1].PartnerEmail)
	assert.Equal(t, 0, convs[1].UnreadCount)
}
