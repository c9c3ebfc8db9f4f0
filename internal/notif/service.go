package notif

import (
	"fmt"
	"strings"
	"time"

	"inkwell/internal/common"
	"inkwell/internal/config"
	"inkwell/internal/dbmysql"
	"inkwell/internal/document"
)

// previewLimit bounds the plain-text excerpt sent to subscribers.
const previewLimit = 200

// Service is the notification collaborator the blog service publishes
// into. All delivery happens on the manager's worker pool, detached
// from the request that produced the event.
type Service struct {
	manager *Manager
	baseURL string
	enabled bool
}

func NewService(cfg *config.Config, subscribers SubscriberSource, emailService common.EmailService) *Service {
	manager := NewManager(cfg.Notification.Workers, cfg.Notification.ChannelBufferSize)

	manager.Subscribe(LogObserver{})
	if emailService != nil {
		manager.Subscribe(NewSubscriberEmailObserver(subscribers, emailService))
	}

	return &Service{
		manager: manager,
		baseURL: strings.TrimRight(cfg.Server.PublicBaseURL, "/"),
		enabled: cfg.Notification.Enabled,
	}
}

// PostPublished hands the publish event off to the worker pool and
// returns immediately. Errors never reach the publisher: a malformed
// stored document only costs the preview text.
func (s *Service) PostPublished(post *dbmysql.Post, authorName string) {
	if !s.enabled {
		return
	}

	preview := ""
	if doc, err := document.Deserialize(post.Document); err == nil {
		preview = doc.Preview(previewLimit)
	}

	s.manager.NotifyAsync(common.NotificationEvent{
		Type:       common.PostPublishedType,
		PostID:     post.PostID,
		AuthorName: authorName,
		Title:      post.Title,
		Preview:    preview,
		PostURL:    fmt.Sprintf("%s/posts/%d", s.baseURL, post.PostID),
		OccurredAt: time.Now(),
	})
}

func (s *Service) Shutdown() {
	s.manager.Shutdown()
}
