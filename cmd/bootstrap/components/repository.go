package components

import (
	"dealspot/internal/infra/db"
	"dealspot/internal/infra/readstore"
	"dealspot/internal/infra/repository"
	"dealspot/internal/infra/uow"
	"dealspot/internal/usecase/queries"
	"dealspot/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(shared.UserRepository)),
		),
		fx.Annotate(
			repository.NewMembershipRepository,
			fx.As(new(shared.MembershipProvider)),
		),
		// Read-side repositories for queries
		fx.Annotate(
			readstore.NewDealReadStore,
			fx.As(new(queries.DealViewRepo)),
		),
		fx.Annotate(
			readstore.NewRedemptionReadStore,
			fx.As(new(queries.RedemptionViewRepo)),
		),
		// Non-transactional command reads for previews
		func(u shared.UnitOfWork) shared.CommandReads {
			return u.CommandReads()
		},
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
