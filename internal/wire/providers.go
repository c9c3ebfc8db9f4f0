package wire

import (
	"inkwell/internal/blog"
	"inkwell/internal/config"
	"inkwell/internal/contact"
	"inkwell/internal/dbmongo"
	"inkwell/internal/media"
	"inkwell/internal/notif"
	"inkwell/internal/user"

	"gorm.io/gorm"
)

// Application holds everything the HTTP server needs.
type Application struct {
	Config         *config.Config
	DB             *gorm.DB
	Mongo          *dbmongo.MongoClient
	UserHandler    *user.Handler
	BlogHandler    *blog.Handler
	ContactHandler *contact.Handler
	MediaServer    *media.Server
	Notifications  *notif.Service
}

func ProvideConfig() *config.Config {
	return config.Load()
}

func ProvideBlogService(postRepo blog.Posts, draftRepo blog.Drafts, notifier blog.Notifier, cfg *config.Config) *blog.BlogService {
	return blog.NewBlogService(postRepo, draftRepo, notifier, cfg.DraftRetention())
}
