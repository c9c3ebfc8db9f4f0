package common

import (
	"context"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Principal is the authenticated identity attached to every mutating
// request. Services trust it and never re-validate credentials.
type Principal struct {
	UserID uint64
	Handle string
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal attaches the authenticated principal to ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom extracts the authenticated principal from ctx.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

type NotificationType string

const (
	PostPublishedType  NotificationType = "post_published"
	ContactMessageType NotificationType = "contact_message"
)

// NotificationEvent is the payload handed to the notification worker
// pool. Delivery is fire-and-forget relative to the request that
// produced it.
type NotificationEvent struct {
	Type       NotificationType
	PostID     uint64
	AuthorName string
	Title      string
	Preview    string
	PostURL    string
	OccurredAt time.Time
}
