package blog

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"inkwell/internal/common"
	"inkwell/internal/dbmysql"
)

// Posts is the post persistence surface consumed by the service.
type Posts interface {
	CreatePost(ctx context.Context, post *dbmysql.Post) error
	GetPostByID(ctx context.Context, id uint64) (*dbmysql.Post, error)
	ListPosts(ctx context.Context, limit, offset int) ([]dbmysql.Post, error)
	ListUserPosts(ctx context.Context, userID uint64) ([]dbmysql.Post, error)
	SavePost(ctx context.Context, post *dbmysql.Post) error
	DeletePost(ctx context.Context, id uint64) error
}

// Drafts is the draft persistence surface. Every read is scoped to
// the owning user and filtered by expires_at; an expired row behaves
// exactly like a missing one.
type Drafts interface {
	CreateDraft(ctx context.Context, draft *dbmysql.Draft) error
	GetDraft(ctx context.Context, id, userID uint64, now time.Time) (*dbmysql.Draft, error)
	ListUserDrafts(ctx context.Context, userID uint64, now time.Time) ([]dbmysql.Draft, error)
	SaveDraft(ctx context.Context, draft *dbmysql.Draft) error
	DeleteDraft(ctx context.Context, id, userID uint64) error
	PublishDraft(ctx context.Context, draft *dbmysql.Draft, post *dbmysql.Post) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// --------- POSTS ---------

func (r *BlogRepository) CreatePost(ctx context.Context, post *dbmysql.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *BlogRepository) GetPostByID(ctx context.Context, id uint64) (*dbmysql.Post, error) {
	var post dbmysql.Post
	err := r.db.WithContext(ctx).First(&post, "post_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *BlogRepository) ListPosts(ctx context.Context, limit, offset int) ([]dbmysql.Post, error) {
	var posts []dbmysql.Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *BlogRepository) ListUserPosts(ctx context.Context, userID uint64) ([]dbmysql.Post, error) {
	var posts []dbmysql.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *BlogRepository) SavePost(ctx context.Context, post *dbmysql.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *BlogRepository) DeletePost(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&dbmysql.Post{}, "post_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// --------- DRAFTS ---------

func (r *BlogRepository) CreateDraft(ctx context.Context, draft *dbmysql.Draft) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

func (r *BlogRepository) GetDraft(ctx context.Context, id, userID uint64, now time.Time) (*dbmysql.Draft, error) {
	var draft dbmysql.Draft
	err := r.db.WithContext(ctx).
		Where("draft_id = ? AND user_id = ? AND expires_at > ?", id, userID, now).
		First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *BlogRepository) ListUserDrafts(ctx context.Context, userID uint64, now time.Time) ([]dbmysql.Draft, error) {
	var drafts []dbmysql.Draft
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, now).
		Order("updated_at DESC").
		Find(&drafts).Error
	return drafts, err
}

func (r *BlogRepository) SaveDraft(ctx context.Context, draft *dbmysql.Draft) error {
	return r.db.WithContext(ctx).Save(draft).Error
}

func (r *BlogRepository) DeleteDraft(ctx context.Context, id, userID uint64) error {
	res := r.db.WithContext(ctx).
		Delete(&dbmysql.Draft{}, "draft_id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// PublishDraft creates the post and removes the draft in one
// transaction, so a draft can never be published twice.
func (r *BlogRepository) PublishDraft(ctx context.Context, draft *dbmysql.Draft, post *dbmysql.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		res := tx.Delete(&dbmysql.Draft{}, "draft_id = ? AND user_id = ?", draft.DraftID, draft.UserID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return common.ErrNotFound
		}
		return nil
	})
}

// DeleteExpiredBefore hard-deletes draft rows long past their expiry.
// Reads never depend on this; the expires_at filter already hides
// expired rows.
func (r *BlogRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&dbmysql.Draft{}, "expires_at < ?", cutoff)
	return res.RowsAffected, res.Error
}
