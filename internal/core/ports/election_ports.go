package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/stv/internal/core/domain"
)

type ElectionRepository interface {
	Save(ctx context.Context, election *domain.Election) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Election, error)
}

type CreateElectionInput struct {
	Title      string
	Candidates []string
	Seats      int
	Quota      string
}

type CastBallotInput struct {
	ElectionID uuid.UUID
	Ranking    []int
}

type ElectionService interface {
	Create(ctx context.Context, input CreateElectionInput) (*domain.Election, error)
	GetElection(ctx context.Context, id string) (*domain.Election, error)
	CastBallot(ctx context.Context, input CastBallotInput) error
}
