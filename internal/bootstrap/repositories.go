package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/StealFarm_Go/internal/database/postgres"
	"github.com/osse101/StealFarm_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// Tests fill it with in-memory stores instead of Postgres.
type Repositories struct {
	Player repository.Player
	Farm   repository.Farm
	Friend repository.Friend
}

// InitializeRepositories creates the Postgres repository implementations
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Player: postgres.NewPlayerRepository(dbPool),
		Farm:   postgres.NewFarmRepository(dbPool),
		Friend: postgres.NewFriendRepository(dbPool),
	}
}
