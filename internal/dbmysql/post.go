package dbmysql

import (
	"time"
)

// Post is a published, durable blog entry. Document holds the
// serialized rich-text body verbatim; the column is opaque to SQL.
type Post struct {
	PostID    uint64    `gorm:"primaryKey;autoIncrement;column:post_id" json:"post_id"`
	AuthorID  uint64    `gorm:"column:author_id;index;not null" json:"author_id"`
	Title     string    `gorm:"column:title;size:255;not null" json:"title"`
	Document  string    `gorm:"column:document;type:longtext;not null" json:"document"`
	Tags      []string  `gorm:"column:tags;type:text;serializer:json" json:"tags"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:AuthorID" json:"-"`
}
