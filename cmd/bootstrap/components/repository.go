package components

import (
	"reservehub/internal/infra/db"
	repo_impl "reservehub/internal/infra/repository"
	"reservehub/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		db.NewTxManager,
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
		),
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(usecase.BookingRepository)),
		),
		fx.Annotate(
			repo_impl.NewResourceRepository,
			fx.As(new(usecase.ResourceRepository)),
			fx.As(new(usecase.BookingResourceRepository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
