package service

import (
	"context"
	"fmt"
	"strings"

	"storefront-service/internal/auth"
	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// ContactService handles the public contact form and the admin-only
// message listing.
type ContactService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewContactService creates a new contact service
func NewContactService(st *store.Store) *ContactService {
	return &ContactService{
		store:  st,
		logger: util.GetLogger(),
	}
}

// CreateMessage validates and persists a contact-form submission
func (s *ContactService) CreateMessage(ctx context.Context, name, email, message string) (*models.ContactMessage, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)

	if name == "" || email == "" || message == "" {
		return nil, fmt.Errorf("%w: name, email and message are required", ErrValidation)
	}

	msg := &models.ContactMessage{
		Name:    name,
		Email:   email,
		Message: message,
	}
	if err := s.store.CreateContactMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create contact message: %w", err)
	}

	s.logger.Info("Contact message received", zap.String("message_id", msg.ID))
	return msg, nil
}

// GetMessages lists all contact messages, newest first
func (s *ContactService) GetMessages(ctx context.Context, _ auth.Session) ([]models.ContactMessage, error) {
	return s.store.GetContactMessages(ctx)
}
