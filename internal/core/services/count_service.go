package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/stv/internal/core/domain"
	"github.com/vncsmyrnk/stv/internal/core/ports"
	"github.com/vncsmyrnk/stv/internal/core/stv"
)

type countService struct {
	electionRepo ports.ElectionRepository
	ballotRepo   ports.BallotRepository
	resultRepo   ports.ResultRepository
	log          *logrus.Entry
}

func NewCountService(electionRepo ports.ElectionRepository, ballotRepo ports.BallotRepository, resultRepo ports.ResultRepository, log *logrus.Entry) ports.CountService {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &countService{
		electionRepo: electionRepo,
		ballotRepo:   ballotRepo,
		resultRepo:   resultRepo,
		log:          log,
	}
}

func (s *countService) Count(ctx context.Context, id string, tieBreaker ports.TieBreaker) (*domain.Result, error) {
	electionID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidElectionID
	}

	election, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		return nil, err
	}

	ballots, err := s.ballotRepo.GroupedBallots(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ballots: %w", err)
	}

	result, err := s.count(ctx, *election, ballots, tieBreaker)
	if err != nil {
		return nil, err
	}

	if err := s.resultRepo.SaveResult(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"election": election.ID,
		"winners":  result.Winners,
		"rounds":   len(result.Rounds),
	}).Info("election counted")

	return result, nil
}

func (s *countService) GetResult(ctx context.Context, id string) (*domain.Result, error) {
	electionID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidElectionID
	}

	return s.resultRepo.GetResult(ctx, electionID)
}

func (s *countService) Tally(ctx context.Context, input ports.TallyInput, tieBreaker ports.TieBreaker) (*domain.Result, error) {
	quota, err := domain.ParseQuotaRule(input.Quota)
	if err != nil {
		return nil, err
	}

	election := domain.Election{
		Title:      "tally",
		Candidates: input.Candidates,
		Seats:      input.Seats,
		Quota:      quota,
	}

	ballots := make([]domain.Ballot, 0, len(input.Rankings))
	for _, r := range input.Rankings {
		ballots = append(ballots, domain.NewBallot(r.Ranking, r.Weight))
	}

	return s.count(ctx, election, stv.Group(ballots), tieBreaker)
}

func (s *countService) count(ctx context.Context, election domain.Election, ballots []domain.Ballot, tieBreaker ports.TieBreaker) (*domain.Result, error) {
	counter, err := stv.NewCounter(election, ballots, tieBreaker, s.log)
	if err != nil {
		return nil, err
	}

	return counter.Count(ctx)
}
