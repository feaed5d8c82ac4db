package repository

import (
	"context"

	"find/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	GetThread(ctx context.Context, userID, contactID uint, limit, offset int) ([]*models.ChatMessage, error)
	MarkThreadRead(ctx context.Context, receiverID, senderID uint) error
	ListForUser(ctx context.Context, userID uint, limit int) ([]*models.ChatMessage, error)
	CountUnreadBySender(ctx context.Context, receiverID uint) (map[uint]int, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetThread returns the two-way history between userID and contactID,
// oldest first, with both parties and the subject listing preloaded.
func (r *messageRepository) GetThread(ctx context.Context, userID, contactID uint, limit, offset int) ([]*models.ChatMessage, error) {
	var msgs []*models.ChatMessage
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Preload("Advertisement").
		Preload("Product").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, contactID, contactID, userID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}

// MarkThreadRead flips the unread incoming messages of one thread to read.
// Calling it again is a no-op.
func (r *messageRepository) MarkThreadRead(ctx context.Context, receiverID, senderID uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Where("receiver_id = ? AND sender_id = ? AND read = ?", receiverID, senderID, false).
		Update("read", true).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListForUser returns the newest messages the user sent or received, newest
// first. Used to fold conversation summaries.
func (r *messageRepository) ListForUser(ctx context.Context, userID uint, limit int) ([]*models.ChatMessage, error) {
	var msgs []*models.ChatMessage
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}

// CountUnreadBySender returns, per sending user, how many of their messages to
// receiverID are still unread.
func (r *messageRepository) CountUnreadBySender(ctx context.Context, receiverID uint) (map[uint]int, error) {
	type row struct {
		SenderID uint
		Count    int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Select("sender_id, COUNT(*) as count").
		Where("receiver_id = ? AND read = ?", receiverID, false).
		Group("sender_id").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.SenderID] = r.Count
	}
	return counts, nil
}
