package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tablebistro/tablebistro/internal/shared"
	"github.com/tablebistro/tablebistro/internal/tables/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) GetByID(ctx context.Context, id domain.TableID) (*domain.Table, error) {
	var number int
	err := r.pool.QueryRow(ctx, `SELECT number FROM tables WHERE number=$1`, id.Value()).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFoundf("table %d not found", id.Value())
		}
		return nil, err
	}
	session, err := r.activeSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.RestoreTable(id, session), nil
}

func (r *Repository) GetAll(ctx context.Context) ([]*domain.Table, error) {
	rows, err := r.pool.Query(ctx, `SELECT number FROM tables ORDER BY number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tables := make([]*domain.Table, 0, len(numbers))
	for _, n := range numbers {
		session, err := r.activeSession(ctx, domain.TableID(n))
		if err != nil {
			return nil, err
		}
		tables = append(tables, domain.RestoreTable(domain.TableID(n), session))
	}
	return tables, nil
}

func (r *Repository) Save(ctx context.Context, table *domain.Table) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `INSERT INTO tables (number) VALUES ($1) ON CONFLICT (number) DO NOTHING`, table.ID().Value())
	if err != nil {
		return err
	}

	if table.IsOccupied() {
		s := table.ActiveSession()
		_, err = tx.Exec(ctx, `
			INSERT INTO table_sessions (id, table_number, started_at, ended_at)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (id) DO UPDATE SET ended_at=$4`,
			uuid.UUID(s.ID()), table.ID().Value(), s.StartedAt(), s.EndedAt())
		if err != nil {
			return err
		}
	} else {
		// EndSession cleared the aggregate's reference, so close whatever
		// session is still open for this table.
		_, err = tx.Exec(ctx, `UPDATE table_sessions SET ended_at=$2 WHERE table_number=$1 AND ended_at IS NULL`,
			table.ID().Value(), time.Now().UTC())
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *Repository) activeSession(ctx context.Context, id domain.TableID) (*domain.TableSession, error) {
	var (
		sessionID uuid.UUID
		startedAt time.Time
		endedAt   *time.Time
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, started_at, ended_at FROM table_sessions
		WHERE table_number=$1 AND ended_at IS NULL
		ORDER BY started_at DESC LIMIT 1`, id.Value()).
		Scan(&sessionID, &startedAt, &endedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return domain.RestoreTableSession(domain.SessionID(sessionID), startedAt, endedAt), nil
}
