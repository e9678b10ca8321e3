package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/stv/internal/core/domain"
	"github.com/vncsmyrnk/stv/internal/core/stv"
)

type memoryElections map[uuid.UUID]*domain.Election

func (m memoryElections) Save(ctx context.Context, election *domain.Election) error {
	m[election.ID] = election
	return nil
}

func (m memoryElections) GetByID(ctx context.Context, id uuid.UUID) (*domain.Election, error) {
	election, ok := m[id]
	if !ok {
		return nil, domain.ErrElectionNotFound
	}
	return election, nil
}

type memoryBallots map[uuid.UUID][][]int

func (m memoryBallots) SaveBallot(ctx context.Context, electionID uuid.UUID, ranking []int) error {
	m[electionID] = append(m[electionID], ranking)
	return nil
}

func (m memoryBallots) GroupedBallots(ctx context.Context, electionID uuid.UUID) ([]domain.Ballot, error) {
	return stv.GroupRankings(m[electionID]), nil
}

type memoryResults map[uuid.UUID]*domain.Result

func (m memoryResults) SaveResult(ctx context.Context, result *domain.Result) error {
	m[result.ElectionID] = result
	return nil
}

func (m memoryResults) GetResult(ctx context.Context, electionID uuid.UUID) (*domain.Result, error) {
	result, ok := m[electionID]
	if !ok {
		return nil, domain.ErrResultNotFound
	}
	return result, nil
}
