package chat

import (
	"context"
	"errors"

	"campus-backend/internal/models"
	"campus-backend/internal/pkg/fieldcodec"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRecipientRequired = errors.New("Recipient is required")
	ErrMessageRequired   = errors.New("Message body is required")
)

// Service persists direct messages with the body encrypted at rest. Rows
// written before encryption was introduced stay readable: Decrypt passes
// plaintext through unchanged.
type Service struct {
	DB    *gorm.DB
	Codec *fieldcodec.Codec
}

// Send stores a message from sender to recipient.
func (s *Service) Send(ctx context.Context, senderID string, recipientID string, body string) (*models.ChatMessage, error) {
	sender, err := uuid.Parse(senderID)
	if err != nil {
		return nil, ErrRecipientRequired
	}
	recipient, err := uuid.Parse(recipientID)
	if err != nil {
		return nil, ErrRecipientRequired
	}
	if body == "" {
		return nil, ErrMessageRequired
	}

	msg := &models.ChatMessage{
		SenderID:    sender,
		RecipientID: recipient,
		Body:        s.Codec.Encrypt(body),
	}
	if err := s.DB.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	// Return the readable body, not the stored token.
	msg.Body = body
	return msg, nil
}

// History returns the conversation between two users, oldest first, bodies
// decrypted.
func (s *Service) History(ctx context.Context, userID string, peerID string) ([]models.ChatMessage, error) {
	user, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrRecipientRequired
	}
	peer, err := uuid.Parse(peerID)
	if err != nil {
		return nil, ErrRecipientRequired
	}

	var msgs []models.ChatMessage
	if err := s.DB.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			user, peer, peer, user).
		Order("created_at ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	for i := range msgs {
		msgs[i].Body = s.Codec.Decrypt(msgs[i].Body)
	}
	return msgs, nil
}
