package notif

import (
	"context"
	"fmt"
	"log"

	"inkwell/internal/common"
	"inkwell/internal/dbmysql"
)

// SubscriberSource lists the newsletter recipients a broadcast goes
// to. The contact package's repository satisfies it.
type SubscriberSource interface {
	ListActive(ctx context.Context) ([]dbmysql.Subscriber, error)
}

// SubscriberEmailObserver emails every active subscriber when a post
// is published. Per-recipient failures are tallied and logged; the
// batch keeps going.
type SubscriberEmailObserver struct {
	subscribers  SubscriberSource
	emailService common.EmailService
}

func NewSubscriberEmailObserver(subscribers SubscriberSource, emailService common.EmailService) *SubscriberEmailObserver {
	return &SubscriberEmailObserver{
		subscribers:  subscribers,
		emailService: emailService,
	}
}

func (o *SubscriberEmailObserver) Name() string {
	return "subscriber_email_observer"
}

func (o *SubscriberEmailObserver) Update(event common.NotificationEvent) error {
	if event.Type != common.PostPublishedType {
		return nil
	}

	recipients, err := o.subscribers.ListActive(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list subscribers: %w", err)
	}
	if len(recipients) == 0 {
		return nil
	}

	subject := fmt.Sprintf("New post by %s: %s", event.AuthorName, event.Title)
	body := event.Preview
	if event.PostURL != "" {
		body = fmt.Sprintf("%s\n\nRead the full post: %s", body, event.PostURL)
	}

	sent, failed := 0, 0
	for _, sub := range recipients {
		if err := o.emailService.SendEmail(sub.Email, subject, body); err != nil {
			failed++
			log.Printf("Failed to email subscriber %s: %v", sub.Email, err)
			continue
		}
		sent++
	}

	log.Printf("Subscriber broadcast for post %d: %d sent, %d failed", event.PostID, sent, failed)
	return nil
}

// LogObserver records every event; useful in development and as the
// fallback observer when email is disabled.
type LogObserver struct{}

func (LogObserver) Name() string {
	return "log_observer"
}

func (LogObserver) Update(event common.NotificationEvent) error {
	log.Printf("Notification event: type=%s post=%d author=%s", event.Type, event.PostID, event.AuthorName)
	return nil
}
