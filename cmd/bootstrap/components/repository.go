package components

import (
	repo_impl "github.com/DanSBol/shareit/internal/infra/repository"
	"github.com/DanSBol/shareit/internal/usecase/commands"
	"github.com/DanSBol/shareit/internal/usecase/queries"

	"go.uber.org/fx"
)

// Each repository serves both the write ports and the read stores, so a
// single constructor is annotated with every interface it satisfies.
var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			repo_impl.NewItemRepository,
			fx.As(new(commands.ItemRepository)),
			fx.As(new(queries.ItemReadStore)),
			fx.As(new(queries.ItemsByRequestStore)),
		),
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(commands.UserRepository)),
			fx.As(new(queries.UserReadStore)),
			fx.As(new(queries.UserExistsStore)),
		),
		fx.Annotate(
			repo_impl.NewCommentRepository,
			fx.As(new(commands.CommentRepository)),
			fx.As(new(queries.CommentReadStore)),
		),
		fx.Annotate(
			repo_impl.NewRequestRepository,
			fx.As(new(commands.RequestRepository)),
			fx.As(new(queries.RequestReadStore)),
		),
	),
)
