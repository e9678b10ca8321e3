package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/stv/internal/core/domain"
)

// TieBreaker picks which of the tied candidates to exclude. It may block, for
// example while waiting on a person at a terminal.
type TieBreaker interface {
	BreakTie(ctx context.Context, tie domain.Tie) (string, error)
}

type ResultRepository interface {
	SaveResult(ctx context.Context, result *domain.Result) error
	GetResult(ctx context.Context, electionID uuid.UUID) (*domain.Result, error)
}

type TallyInput struct {
	Candidates []string
	Rankings   []WeightedRanking
	Seats      int
	Quota      string
}

type WeightedRanking struct {
	Ranking []int
	Weight  int64
}

type CountService interface {
	// Count tallies a stored election and persists the result.
	Count(ctx context.Context, electionID string, tieBreaker TieBreaker) (*domain.Result, error)
	GetResult(ctx context.Context, electionID string) (*domain.Result, error)
	// Tally counts ad-hoc input without touching storage.
	Tally(ctx context.Context, input TallyInput, tieBreaker TieBreaker) (*domain.Result, error)
}

// TieBreakerFunc adapts a function to TieBreaker.
type TieBreakerFunc func(ctx context.Context, tie domain.Tie) (string, error)

func (f TieBreakerFunc) BreakTie(ctx context.Context, tie domain.Tie) (string, error) {
	return f(ctx, tie)
}
