package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitcore/gym-api/internal/dto"
	"github.com/fitcore/gym-api/internal/model"
)

type mockContactRepo struct{ messages []*model.ContactMessage }

func (m *mockContactRepo) Create(_ context.Context, msg *model.ContactMessage) error {
	msg.ID = uuid.New()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockContactRepo) List(_ context.Context) ([]model.ContactMessage, error) {
	var all []model.ContactMessage
	for _, msg := range m.messages {
		all = append(all, *msg)
	}
	return all, nil
}

func TestContactService_Create(t *testing.T) {
	repo := &mockContactRepo{}
	publisher := &mockPublisher{}
	svc := NewContactService(repo, publisher, "admin@fitcore.local", slog.New(slog.NewTextHandler(io.Discard, nil)))

	msg, err := svc.Create(context.Background(), dto.CreateContactMessageRequest{
		Name: "Ravi", Email: "ravi@example.com", Subject: "Opening hours", Message: "Are you open on Saturdays?",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, msg.ID)
	require.Len(t, repo.messages, 1)

	published := publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, model.NotificationContactReceived, published[0].Kind)
	assert.Equal(t, "admin@fitcore.local", published[0].Recipient)
	assert.Contains(t, published[0].Body, "ravi@example.com")
}

func TestContactService_Create_PublishFailureStillStores(t *testing.T) {
	repo := &mockContactRepo{}
	publisher := &mockPublisher{err: errors.New("broker down")}
	svc := NewContactService(repo, publisher, "admin@fitcore.local", slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.Create(context.Background(), dto.CreateContactMessageRequest{
		Name: "Ravi", Email: "ravi@example.com", Message: "Hello",
	})
	require.NoError(t, err)
	assert.Len(t, repo.messages, 1)
}
