package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vncsmyrnk/stv/internal/core/domain"
	"github.com/vncsmyrnk/stv/internal/core/ports"
	"github.com/vncsmyrnk/stv/internal/core/stv"
)

type ballotRepository struct {
	db *sql.DB
}

func NewBallotRepository(db *sql.DB) ports.BallotRepository {
	return &ballotRepository{
		db: db,
	}
}

func (r *ballotRepository) SaveBallot(ctx context.Context, electionID uuid.UUID, ranking []int) error {
	query := `
		INSERT INTO ballots (election_id, ranking)
		VALUES ($1, $2)
	`
	values := make([]int64, len(ranking))
	for i, p := range ranking {
		values[i] = int64(p)
	}
	_, err := r.db.ExecContext(ctx, query, electionID, pq.Int64Array(values))
	if err != nil {
		return fmt.Errorf("failed to save ballot: %w", err)
	}
	return nil
}

func (r *ballotRepository) GroupedBallots(ctx context.Context, electionID uuid.UUID) ([]domain.Ballot, error) {
	query := `
		SELECT ranking, COUNT(*)
		FROM ballots
		WHERE election_id = $1
		GROUP BY ranking
	`
	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to group ballots: %w", err)
	}
	defer rows.Close()

	var ballots []domain.Ballot
	for rows.Next() {
		var ranking pq.Int64Array
		var weight int64
		if err := rows.Scan(&ranking, &weight); err != nil {
			return nil, fmt.Errorf("failed to scan ballot: %w", err)
		}
		preferences := make([]int, len(ranking))
		for i, p := range ranking {
			preferences[i] = int(p)
		}
		ballots = append(ballots, domain.NewBallot(preferences, weight))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ballots: %w", err)
	}

	// Postgres orders arrays numerically; keep the key order used everywhere else.
	return stv.Group(ballots), nil
}
