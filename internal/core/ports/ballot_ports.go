package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/stv/internal/core/domain"
)

type BallotRepository interface {
	SaveBallot(ctx context.Context, electionID uuid.UUID, ranking []int) error
	// GroupedBallots returns the election's ballots with identical rankings
	// collapsed, ordered by ranking key.
	GroupedBallots(ctx context.Context, electionID uuid.UUID) ([]domain.Ballot, error)
}
