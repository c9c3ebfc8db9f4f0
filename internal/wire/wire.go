//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"inkwell/internal/blog"
	"inkwell/internal/contact"
	"inkwell/internal/dbmongo"
	"inkwell/internal/dbmysql"
	"inkwell/internal/media"
	"inkwell/internal/notif"
	"inkwell/internal/user"
)

func InitializeApplication() (*Application, error) {
	wire.Build(
		ProvideConfig,
		dbmysql.NewMySQL,
		dbmongo.NewMongoConnection,

		blog.NewBlogRepository,
		wire.Bind(new(blog.Posts), new(*blog.BlogRepository)),
		wire.Bind(new(blog.Drafts), new(*blog.BlogRepository)),

		contact.NewContactRepository,
		wire.Bind(new(contact.Messages), new(*contact.ContactRepository)),
		wire.Bind(new(contact.Subscribers), new(*contact.ContactRepository)),
		wire.Bind(new(notif.SubscriberSource), new(*contact.ContactRepository)),

		notif.NewEmailService,
		notif.NewService,
		wire.Bind(new(blog.Notifier), new(*notif.Service)),

		ProvideBlogService,
		wire.Bind(new(blog.BlogUsecase), new(*blog.BlogService)),
		blog.NewHandler,

		contact.NewContactService,
		wire.Bind(new(contact.ContactUsecase), new(*contact.ContactService)),
		contact.NewHandler,

		user.NewUserRepository,
		user.NewUserService,
		user.NewHandler,

		media.NewServer,

		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
