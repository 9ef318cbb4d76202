package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/StealFarm_Go/internal/domain"
)

// parsePlayerUUID parses a player id. Ids that are not UUIDs cannot exist,
// so the error wraps notFound.
func parsePlayerUUID(playerID string, notFound error) (uuid.UUID, error) {
	u, err := uuid.Parse(playerID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s: %s", notFound, ErrMsgInvalidPlayerID, playerID)
	}
	return u, nil
}

// isPgError reports whether err is a PostgreSQL error with the given code
func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// escapeLike escapes LIKE wildcards so keyword matches literally
func escapeLike(keyword string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(keyword)
}

// queryer is satisfied by both *pgxpool.Pool and pgx.Tx
type queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	if err := row.Scan(&p.ID, &p.Username, &p.PasswordHash, &p.Coins, &p.Level, &p.Exp, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

func scanPlot(row pgx.Row) (*domain.Plot, error) {
	var p domain.Plot
	if err := row.Scan(&p.OwnerID, &p.Index, &p.CropID, &p.PlantedAt, &p.StolenBy); err != nil {
		return nil, err
	}
	if p.PlantedAt != nil {
		at := p.PlantedAt.UTC()
		p.PlantedAt = &at
	}
	if p.StolenBy == nil {
		p.StolenBy = []string{}
	}
	return &p, nil
}
