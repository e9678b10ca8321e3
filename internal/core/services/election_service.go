package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/stv/internal/core/domain"
	"github.com/vncsmyrnk/stv/internal/core/ports"
	"github.com/vncsmyrnk/stv/internal/core/stv"
)

type electionService struct {
	electionRepo ports.ElectionRepository
	ballotRepo   ports.BallotRepository
}

func NewElectionService(electionRepo ports.ElectionRepository, ballotRepo ports.BallotRepository) ports.ElectionService {
	return &electionService{
		electionRepo: electionRepo,
		ballotRepo:   ballotRepo,
	}
}

func (s *electionService) Create(ctx context.Context, input ports.CreateElectionInput) (*domain.Election, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.ErrTitleRequired
	}

	quota, err := domain.ParseQuotaRule(input.Quota)
	if err != nil {
		return nil, err
	}

	election := &domain.Election{
		ID:        uuid.New(),
		Title:     input.Title,
		Seats:     input.Seats,
		Quota:     quota,
		CreatedAt: time.Now(),
	}
	for _, name := range input.Candidates {
		election.Candidates = append(election.Candidates, strings.TrimSpace(name))
	}

	if err := stv.Validate(*election, nil); err != nil {
		return nil, err
	}

	if err := s.electionRepo.Save(ctx, election); err != nil {
		return nil, err
	}

	return election, nil
}

func (s *electionService) GetElection(ctx context.Context, id string) (*domain.Election, error) {
	electionID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidElectionID
	}

	return s.electionRepo.GetByID(ctx, electionID)
}

func (s *electionService) CastBallot(ctx context.Context, input ports.CastBallotInput) error {
	election, err := s.electionRepo.GetByID(ctx, input.ElectionID)
	if err != nil {
		return err
	}

	if len(input.Ranking) == 0 {
		return domain.ErrEmptyBallot
	}
	if err := stv.ValidateRanking(input.Ranking, len(election.Candidates)); err != nil {
		return err
	}

	if err := s.ballotRepo.SaveBallot(ctx, election.ID, input.Ranking); err != nil {
		return fmt.Errorf("failed to cast ballot: %w", err)
	}
	return nil
}
