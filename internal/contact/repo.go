package contact

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"inkwell/internal/common"
	"inkwell/internal/dbmysql"
)

// Messages is the contact-message persistence surface.
type Messages interface {
	CreateMessage(ctx context.Context, msg *dbmysql.ContactMessage) error
	ListMessages(ctx context.Context, limit, offset int) ([]dbmysql.ContactMessage, error)
	DeleteMessage(ctx context.Context, id uint64) error
}

// Subscribers is the newsletter persistence surface. ListActive also
// serves the notification broadcast.
type Subscribers interface {
	GetByEmail(ctx context.Context, email string) (*dbmysql.Subscriber, error)
	CreateSubscriber(ctx context.Context, sub *dbmysql.Subscriber) error
	SetActive(ctx context.Context, email string, active bool) error
	ListActive(ctx context.Context) ([]dbmysql.Subscriber, error)
	ListAll(ctx context.Context) ([]dbmysql.Subscriber, error)
}

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// --------- MESSAGES ---------

func (r *ContactRepository) CreateMessage(ctx context.Context, msg *dbmysql.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *ContactRepository) ListMessages(ctx context.Context, limit, offset int) ([]dbmysql.ContactMessage, error) {
	var messages []dbmysql.ContactMessage
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, err
}

func (r *ContactRepository) DeleteMessage(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&dbmysql.ContactMessage{}, "message_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// --------- SUBSCRIBERS ---------

func (r *ContactRepository) GetByEmail(ctx context.Context, email string) (*dbmysql.Subscriber, error) {
	var sub dbmysql.Subscriber
	err := r.db.WithContext(ctx).First(&sub, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *ContactRepository) CreateSubscriber(ctx context.Context, sub *dbmysql.Subscriber) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *ContactRepository) SetActive(ctx context.Context, email string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&dbmysql.Subscriber{}).
		Where("email = ?", email).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *ContactRepository) ListActive(ctx context.Context) ([]dbmysql.Subscriber, error) {
	var subs []dbmysql.Subscriber
	err := r.db.WithContext(ctx).Where("active = ?", true).Find(&subs).Error
	return subs, err
}

func (r *ContactRepository) ListAll(ctx context.Context) ([]dbmysql.Subscriber, error) {
	var subs []dbmysql.Subscriber
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&subs).Error
	return subs, err
}
