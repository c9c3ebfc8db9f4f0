package dbmysql

import (
	"time"
)

// ContactMessage is a reader-submitted message shown in the admin
// console.
type ContactMessage struct {
	MessageID uint64    `gorm:"primaryKey;autoIncrement;column:message_id" json:"message_id"`
	Name      string    `gorm:"column:name;size:100;not null" json:"name"`
	Email     string    `gorm:"column:email;size:255;not null" json:"email"`
	Subject   string    `gorm:"column:subject;size:255" json:"subject"`
	Body      string    `gorm:"column:body;type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
