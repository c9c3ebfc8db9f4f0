package blog

import (
	"context"
	"log"
	"strings"
	"time"

	"inkwell/internal/common"
	"inkwell/internal/dbmysql"
	"inkwell/internal/document"
)

// Notifier receives the fire-and-forget publish side effect. The
// handoff must never block and its failure must never surface to the
// publisher.
type Notifier interface {
	PostPublished(post *dbmysql.Post, authorName string)
}

// DraftInput is the save_draft payload. Document is the serialized
// JSON form produced by the editor; it is stored verbatim.
type DraftInput struct {
	DraftID  uint64
	Title    string
	Document string
	Tags     []string
}

// PostInput is the publish_new payload.
type PostInput struct {
	Title    string
	Document string
	Tags     []string
}

// PostUpdate is the partial update_post payload; nil fields keep
// their prior value.
type PostUpdate struct {
	Title    *string
	Document *string
	Tags     *[]string
}

type BlogUsecase interface {
	SaveDraft(ctx context.Context, principal common.Principal, in DraftInput) (*dbmysql.Draft, error)
	GetDraft(ctx context.Context, principal common.Principal, id uint64) (*dbmysql.Draft, error)
	ListDrafts(ctx context.Context, principal common.Principal) ([]dbmysql.Draft, error)
	DeleteDraft(ctx context.Context, principal common.Principal, id uint64) error
	Publish(ctx context.Context, principal common.Principal, draftID uint64) (*dbmysql.Post, error)
	PublishNew(ctx context.Context, principal common.Principal, in PostInput) (*dbmysql.Post, error)
	GetPost(ctx context.Context, id uint64) (*dbmysql.Post, error)
	ListPosts(ctx context.Context, limit, offset int) ([]dbmysql.Post, error)
	ListUserPosts(ctx context.Context, userID uint64) ([]dbmysql.Post, error)
	UpdatePost(ctx context.Context, principal common.Principal, id uint64, in PostUpdate) (*dbmysql.Post, error)
	DeletePost(ctx context.Context, principal common.Principal, id uint64) error
}

type BlogService struct {
	postRepo       Posts
	draftRepo      Drafts
	notifier       Notifier
	retention      time.Duration
	janitorStarted bool
}

func NewBlogService(postRepo Posts, draftRepo Drafts, notifier Notifier, retentionDays int) *BlogService {
	if retentionDays <= 0 {
		retentionDays = 7
	}
	service := &BlogService{
		postRepo:  postRepo,
		draftRepo: draftRepo,
		notifier:  notifier,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
	go service.startExpiredDraftJanitor()

	return service
}

// parseBody validates the serialized document and reports whether it
// holds real content. The raw string is what gets stored.
func parseBody(raw string) (*document.Document, error) {
	if strings.TrimSpace(raw) == "" {
		return document.New(), nil
	}
	return document.Deserialize(raw)
}

// --------- DRAFTS ---------

// SaveDraft upserts the caller's draft, refreshing updated_at and the
// expiry window. A draft with a blank title and an empty body is
// rejected: there is nothing to keep.
func (s *BlogService) SaveDraft(ctx context.Context, principal common.Principal, in DraftInput) (*dbmysql.Draft, error) {
	doc, err := parseBody(in.Document)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" && doc.IsEmpty() {
		return nil, common.ErrEmptyContent
	}

	now := time.Now()
	if in.DraftID != 0 {
		draft, err := s.draftRepo.GetDraft(ctx, in.DraftID, principal.UserID, now)
		if err != nil {
			return nil, err
		}
		draft.Title = title
		draft.Document = in.Document
		draft.Tags = in.Tags
		draft.UpdatedAt = now
		draft.ExpiresAt = now.Add(s.retention)
		if err := s.draftRepo.SaveDraft(ctx, draft); err != nil {
			return nil, err
		}
		return draft, nil
	}

	draft := &dbmysql.Draft{
		UserID:    principal.UserID,
		Title:     title,
		Document:  in.Document,
		Tags:      in.Tags,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.retention),
	}
	if err := s.draftRepo.CreateDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *BlogService) GetDraft(ctx context.Context, principal common.Principal, id uint64) (*dbmysql.Draft, error) {
	return s.draftRepo.GetDraft(ctx, id, principal.UserID, time.Now())
}

func (s *BlogService) ListDrafts(ctx context.Context, principal common.Principal) ([]dbmysql.Draft, error) {
	return s.draftRepo.ListUserDrafts(ctx, principal.UserID, time.Now())
}

func (s *BlogService) DeleteDraft(ctx context.Context, principal common.Principal, id uint64) error {
	return s.draftRepo.DeleteDraft(ctx, id, principal.UserID)
}

// Publish converts the caller's draft into a post. The draft must
// still be retrievable: missing, foreign, and expired drafts all
// come back as not found.
func (s *BlogService) Publish(ctx context.Context, principal common.Principal, draftID uint64) (*dbmysql.Post, error) {
	draft, err := s.draftRepo.GetDraft(ctx, draftID, principal.UserID, time.Now())
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(draft.Title) == "" {
		return nil, common.ErrTitleRequired
	}
	doc, err := parseBody(draft.Document)
	if err != nil {
		return nil, err
	}
	if doc.IsEmpty() {
		return nil, common.ErrEmptyContent
	}

	post := &dbmysql.Post{
		AuthorID: draft.UserID,
		Title:    draft.Title,
		Document: draft.Document,
		Tags:     draft.Tags,
	}
	if err := s.draftRepo.PublishDraft(ctx, draft, post); err != nil {
		return nil, err
	}

	s.notifyPublished(post, principal.Handle)
	return post, nil
}

// --------- POSTS ---------

func (s *BlogService) PublishNew(ctx context.Context, principal common.Principal, in PostInput) (*dbmysql.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, common.ErrTitleRequired
	}

	doc, err := parseBody(in.Document)
	if err != nil {
		return nil, err
	}
	if doc.IsEmpty() {
		return nil, common.ErrEmptyContent
	}

	post := &dbmysql.Post{
		AuthorID: principal.UserID,
		Title:    title,
		Document: in.Document,
		Tags:     in.Tags,
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.notifyPublished(post, principal.Handle)
	return post, nil
}

func (s *BlogService) GetPost(ctx context.Context, id uint64) (*dbmysql.Post, error) {
	return s.postRepo.GetPostByID(ctx, id)
}

func (s *BlogService) ListPosts(ctx context.Context, limit, offset int) ([]dbmysql.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.postRepo.ListPosts(ctx, limit, offset)
}

func (s *BlogService) ListUserPosts(ctx context.Context, userID uint64) ([]dbmysql.Post, error) {
	return s.postRepo.ListUserPosts(ctx, userID)
}

// UpdatePost applies a partial edit in place. Only the author or an
// admin may touch a post; unsupplied fields keep their prior value.
// Concurrent editors are last-write-wins.
func (s *BlogService) UpdatePost(ctx context.Context, principal common.Principal, id uint64, in PostUpdate) (*dbmysql.Post, error) {
	post, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != principal.UserID && !principal.IsAdmin() {
		return nil, common.ErrForbidden
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			// A post can never end up untitled; clearing the title
			// is rejected rather than silently keeping the old one.
			return nil, common.ErrTitleRequired
		}
		post.Title = title
	}
	if in.Document != nil {
		doc, err := parseBody(*in.Document)
		if err != nil {
			return nil, err
		}
		if doc.IsEmpty() {
			return nil, common.ErrEmptyContent
		}
		post.Document = *in.Document
	}
	if in.Tags != nil {
		post.Tags = *in.Tags
	}
	post.UpdatedAt = time.Now()

	if err := s.postRepo.SavePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post if the caller is its author or an
// admin.
func (s *BlogService) DeletePost(ctx context.Context, principal common.Principal, id uint64) error {
	post, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		return err
	}

	if post.AuthorID != principal.UserID && !principal.IsAdmin() {
		return common.ErrForbidden
	}

	return s.postRepo.DeletePost(ctx, id)
}

func (s *BlogService) notifyPublished(post *dbmysql.Post, authorName string) {
	if s.notifier == nil {
		return
	}
	// Detached handoff; the publish response never waits on this.
	s.notifier.PostPublished(post, authorName)
}

func (s *BlogService) startExpiredDraftJanitor() {
	if s.janitorStarted {
		return
	}
	s.janitorStarted = true

	ticker := time.NewTicker(12 * time.Hour)
	for range ticker.C {
		cutoff := time.Now().Add(-24 * time.Hour)
		deleted, err := s.draftRepo.DeleteExpiredBefore(context.Background(), cutoff)
		if err != nil {
			log.Printf("Failed to purge expired drafts: %v", err)
			continue
		}
		if deleted > 0 {
			log.Printf("Purged %d expired drafts", deleted)
		}
	}
}
