package chat

import (
	"context"
	"strings"
	"testing"

	"campus-backend/internal/models"
	"campus-backend/internal/pkg/fieldcodec"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupChatTest(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ChatMessage{}))
	return &Service{DB: db, Codec: fieldcodec.New("chat-test-secret")}, db
}

func TestSend_StoresEncryptedBody(t *testing.T) {
	svc, db := setupChatTest(t)
	ctx := context.Background()

	sender := uuid.New()
	recipient := uuid.New()

	msg, err := svc.Send(ctx, sender.String(), recipient.String(), "see you at the seminar")
	require.NoError(t, err)
	assert.Equal(t, "see you at the seminar", msg.Body)

	var stored models.ChatMessage
	require.NoError(t, db.Where("message_id = ?", msg.MessageID).First(&stored).Error)
	assert.True(t, strings.HasPrefix(stored.Body, "enc:v1:"), "body must be encrypted at rest, got %q", stored.Body)
	assert.NotContains(t, stored.Body, "seminar")
}

func TestSend_Validation(t *testing.T) {
	svc, _ := setupChatTest(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, uuid.NewString(), "not-a-uuid", "hi")
	assert.ErrorIs(t, err, ErrRecipientRequired)

	_, err = svc.Send(ctx, "nope", uuid.NewString(), "hi")
	assert.ErrorIs(t, err, ErrRecipientRequired)

	_, err = svc.Send(ctx, uuid.NewString(), uuid.NewString(), "")
	assert.ErrorIs(t, err, ErrMessageRequired)
}

func TestHistory_DecryptsBothDirections(t *testing.T) {
	svc, _ := setupChatTest(t)
	ctx := context.Background()

	a := uuid.New()
	b := uuid.New()
	other := uuid.New()

	_, err := svc.Send(ctx, a.String(), b.String(), "first")
	require.NoError(t, err)
	_, err = svc.Send(ctx, b.String(), a.String(), "second")
	require.NoError(t, err)
	_, err = svc.Send(ctx, a.String(), other.String(), "unrelated")
	require.NoError(t, err)

	msgs, err := svc.History(ctx, a.String(), b.String())
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Body)
	assert.Equal(t, "second", msgs[1].Body)
}

func TestHistory_LegacyPlaintextRowStaysReadable(t *testing.T) {
	svc, db := setupChatTest(t)
	ctx := context.Background()

	a := uuid.New()
	b := uuid.New()

	// Row written before encryption was introduced.
	legacy := models.ChatMessage{SenderID: a, RecipientID: b, Body: "plain old message"}
	require.NoError(t, db.Create(&legacy).Error)

	msgs, err := svc.History(ctx, a.String(), b.String())
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "plain old message", msgs[0].Body)
}
