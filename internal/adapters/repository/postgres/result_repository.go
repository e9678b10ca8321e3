package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vncsmyrnk/stv/internal/core/domain"
	"github.com/vncsmyrnk/stv/internal/core/ports"
)

type resultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) ports.ResultRepository {
	return &resultRepository{
		db: db,
	}
}

func (r *resultRepository) SaveResult(ctx context.Context, result *domain.Result) error {
	rounds, err := json.Marshal(result.Rounds)
	if err != nil {
		return fmt.Errorf("failed to encode rounds: %w", err)
	}

	query := `
		INSERT INTO election_results (election_id, winners, exhausted, rounds, counted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (election_id) DO UPDATE
		SET winners = EXCLUDED.winners,
		    exhausted = EXCLUDED.exhausted,
		    rounds = EXCLUDED.rounds,
		    counted_at = EXCLUDED.counted_at;
	`
	_, err = r.db.ExecContext(ctx, query,
		result.ElectionID, pq.Array(result.Winners), result.Exhausted.RatString(), rounds, result.CountedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save result for election %s: %w", result.ElectionID, err)
	}
	return nil
}

func (r *resultRepository) GetResult(ctx context.Context, electionID uuid.UUID) (*domain.Result, error) {
	query := `
		SELECT election_id, winners, exhausted, rounds, counted_at
		FROM election_results
		WHERE election_id = $1
	`

	var result domain.Result
	var exhausted string
	var rounds []byte
	err := r.db.QueryRowContext(ctx, query, electionID).Scan(
		&result.ElectionID, pq.Array(&result.Winners), &exhausted, &rounds, &result.CountedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	var ok bool
	if result.Exhausted, ok = new(big.Rat).SetString(exhausted); !ok {
		return nil, fmt.Errorf("failed to parse exhausted value %q", exhausted)
	}
	if err := json.Unmarshal(rounds, &result.Rounds); err != nil {
		return nil, fmt.Errorf("failed to decode rounds: %w", err)
	}

	return &result, nil
}
