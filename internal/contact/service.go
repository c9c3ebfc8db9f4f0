package contact

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/common"
	"inkwell/internal/dbmysql"
)

type ContactUsecase interface {
	SubmitMessage(ctx context.Context, name, email, subject, body string) (*dbmysql.ContactMessage, error)
	ListMessages(ctx context.Context, limit, offset int) ([]dbmysql.ContactMessage, error)
	DeleteMessage(ctx context.Context, id uint64) error
	Subscribe(ctx context.Context, email string) error
	Unsubscribe(ctx context.Context, email string) error
	ListSubscribers(ctx context.Context) ([]dbmysql.Subscriber, error)
}

type ContactService struct {
	messages    Messages
	subscribers Subscribers
}

func NewContactService(messages Messages, subscribers Subscribers) *ContactService {
	return &ContactService{messages: messages, subscribers: subscribers}
}

func (s *ContactService) SubmitMessage(ctx context.Context, name, email, subject, body string) (*dbmysql.ContactMessage, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewValidationError("name", "is required")
	}
	if err := common.ValidateEmail(email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, common.NewValidationError("body", "is required")
	}

	msg := &dbmysql.ContactMessage{
		Name:    name,
		Email:   strings.ToLower(strings.TrimSpace(email)),
		Subject: strings.TrimSpace(subject),
		Body:    body,
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *ContactService) ListMessages(ctx context.Context, limit, offset int) ([]dbmysql.ContactMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.messages.ListMessages(ctx, limit, offset)
}

func (s *ContactService) DeleteMessage(ctx context.Context, id uint64) error {
	return s.messages.DeleteMessage(ctx, id)
}

// Subscribe adds an email to the newsletter. Subscribing an address
// that unsubscribed earlier reactivates the existing row; an already
// active subscription is a no-op.
func (s *ContactService) Subscribe(ctx context.Context, email string) error {
	if err := common.ValidateEmail(email); err != nil {
		return err
	}
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.subscribers.GetByEmail(ctx, email)
	if errors.Is(err, common.ErrNotFound) {
		return s.subscribers.CreateSubscriber(ctx, &dbmysql.Subscriber{
			Email:  email,
			Active: true,
		})
	}
	if err != nil {
		return err
	}

	if existing.Active {
		return nil
	}
	return s.subscribers.SetActive(ctx, email, true)
}

// Unsubscribe is idempotent: addresses that never subscribed or
// already unsubscribed come back as success, not an error.
func (s *ContactService) Unsubscribe(ctx context.Context, email string) error {
	if err := common.ValidateEmail(email); err != nil {
		return err
	}
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.subscribers.GetByEmail(ctx, email)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !existing.Active {
		return nil
	}
	return s.subscribers.SetActive(ctx, email, false)
}

func (s *ContactService) ListSubscribers(ctx context.Context) ([]dbmysql.Subscriber, error) {
	return s.subscribers.ListAll(ctx)
}
