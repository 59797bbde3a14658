package store

import (
	"context"

	"storefront-service/internal/models"
)

// CreateContactMessage inserts a contact-form submission
func (s *Store) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, msg, query, msg.Name, msg.Email, msg.Message)
}

// GetContactMessages retrieves all contact messages, newest first
func (s *Store) GetContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := s.db.SelectContext(ctx, &messages,
		"SELECT * FROM contact_messages ORDER BY created_at DESC")
	return messages, err
}
