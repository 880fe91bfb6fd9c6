package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fitcore/gym-api/internal/dto"
	"github.com/fitcore/gym-api/internal/model"
	"github.com/fitcore/gym-api/internal/notify"
	"github.com/fitcore/gym-api/internal/repository"
)

type ContactService struct {
	contactRepo repository.ContactRepository
	publisher   notify.Publisher
	adminEmail  string
	log         *slog.Logger
}

func NewContactService(contactRepo repository.ContactRepository, publisher notify.Publisher, adminEmail string, log *slog.Logger) *ContactService {
	return &ContactService{contactRepo: contactRepo, publisher: publisher, adminEmail: adminEmail, log: log}
}

func (s *ContactService) Create(ctx context.Context, req dto.CreateContactMessageRequest) (*model.ContactMessage, error) {
	msg := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}

	// Admin heads-up is best-effort; the stored message is the record.
	if s.publisher != nil {
		err := s.publisher.Publish(ctx, model.NotificationMessage{
			ID:            uuid.New(),
			Kind:          model.NotificationContactReceived,
			Recipient:     s.adminEmail,
			RecipientName: "Admin",
			Subject:       msg.Subject,
			Body:          fmt.Sprintf("From %s <%s>: %s", msg.Name, msg.Email, msg.Message),
		})
		if err != nil {
			s.log.Error("publish contact notification", "error", err)
		}
	}
	return msg, nil
}

func (s *ContactService) List(ctx context.Context) ([]model.ContactMessage, error) {
	return s.contactRepo.List(ctx)
}
