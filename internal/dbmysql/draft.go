package dbmysql

import (
	"time"
)

// Draft is an unpublished, time-limited working copy. Expiry is
// enforced by a read-time filter on expires_at, not eager deletion.
type Draft struct {
	DraftID   uint64    `gorm:"primaryKey;autoIncrement;column:draft_id" json:"draft_id"`
	UserID    uint64    `gorm:"column:user_id;index;not null" json:"user_id"`
	Title     string    `gorm:"column:title;size:255" json:"title"`
	Document  string    `gorm:"column:document;type:longtext" json:"document"`
	Tags      []string  `gorm:"column:tags;type:text;serializer:json" json:"tags"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	ExpiresAt time.Time `gorm:"column:expires_at;index" json:"expires_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
