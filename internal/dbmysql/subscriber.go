package dbmysql

import (
	"time"
)

// Subscriber is a newsletter recipient. Unsubscribing flips Active
// instead of deleting the row so a re-subscribe reactivates it.
type Subscriber struct {
	SubscriberID uint64    `gorm:"primaryKey;autoIncrement;column:subscriber_id" json:"subscriber_id"`
	Email        string    `gorm:"column:email;uniqueIndex;size:255;not null" json:"email"`
	Active       bool      `gorm:"column:active;default:true" json:"active"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
