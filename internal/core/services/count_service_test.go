package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/stv/internal/core/domain"
	"github.com/vncsmyrnk/stv/internal/core/ports"
)

func setupElection(t *testing.T, rankings ...[]int) (ports.CountService, memoryResults, *domain.Election) {
	t.Helper()
	elections := memoryElections{}
	ballots := memoryBallots{}
	results := memoryResults{}
	ctx := context.Background()

	electionSvc := NewElectionService(elections, ballots)
	election, err := electionSvc.Create(ctx, ports.CreateElectionInput{
		Title:      "Board",
		Candidates: []string{"A", "B", "C"},
		Seats:      2,
		Quota:      "geq-droop",
	})
	require.NoError(t, err)

	for _, r := range rankings {
		require.NoError(t, electionSvc.CastBallot(ctx, ports.CastBallotInput{ElectionID: election.ID, Ranking: r}))
	}

	return NewCountService(elections, ballots, results, nil), results, election
}

func TestCountStoredElection(t *testing.T) {
	svc, results, election := setupElection(t,
		[]int{0, 1}, []int{0, 1}, []int{0, 1},
		[]int{1, 0}, []int{1, 0},
		[]int{2},
	)

	result, err := svc.Count(context.Background(), election.ID.String(), nil)
	require.NoError(t, err)

	assert.Equal(t, election.ID, result.ElectionID)
	assert.Equal(t, []string{"A", "B"}, result.Winners)
	assert.Equal(t, "1", result.Exhausted.RatString())
	assert.Same(t, result, results[election.ID])

	stored, err := svc.GetResult(context.Background(), election.ID.String())
	require.NoError(t, err)
	assert.Same(t, result, stored)
}

func TestCountStoredElectionTie(t *testing.T) {
	svc, results, election := setupElection(t, []int{0}, []int{0}, []int{0}, []int{1}, []int{2})

	_, err := svc.Count(context.Background(), election.ID.String(), nil)
	var tieErr *domain.TieError
	require.ErrorAs(t, err, &tieErr)
	assert.Equal(t, []string{"B", "C"}, tieErr.Tie.Candidates)
	assert.Empty(t, results)

	result, err := svc.Count(context.Background(), election.ID.String(), NewOrderTieBreaker([]string{"C", "B"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, result.Winners)
}

func TestCountInvalidID(t *testing.T) {
	svc, _, _ := setupElection(t)

	_, err := svc.Count(context.Background(), "nope", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidElectionID)

	_, err = svc.Count(context.Background(), uuid.NewString(), nil)
	assert.ErrorIs(t, err, domain.ErrElectionNotFound)

	_, err = svc.GetResult(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrResultNotFound)
}

func TestTally(t *testing.T) {
	svc := NewCountService(memoryElections{}, memoryBallots{}, memoryResults{}, nil)

	result, err := svc.Tally(context.Background(), ports.TallyInput{
		Candidates: []string{"A", "B", "C"},
		Rankings: []ports.WeightedRanking{
			{Ranking: []int{0, 1}, Weight: 2},
			{Ranking: []int{1, 0}, Weight: 2},
			{Ranking: []int{0, 1}, Weight: 1},
			{Ranking: []int{2}, Weight: 1},
		},
		Seats: 2,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, result.Winners)
	assert.Equal(t, uuid.Nil, result.ElectionID)
}

func TestTallyRejectsInvalidInput(t *testing.T) {
	svc := NewCountService(memoryElections{}, memoryBallots{}, memoryResults{}, nil)

	_, err := svc.Tally(context.Background(), ports.TallyInput{
		Candidates: []string{"A", "B"},
		Rankings:   []ports.WeightedRanking{{Ranking: []int{0}, Weight: 0}},
		Seats:      1,
	}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidWeight)

	_, err = svc.Tally(context.Background(), ports.TallyInput{Candidates: []string{"A"}, Seats: 1, Quota: "lt"}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidQuotaRule)
}

func TestOrderTieBreaker(t *testing.T) {
	breaker := NewOrderTieBreaker([]string{"D", "B", "C"})

	choice, err := breaker.BreakTie(context.Background(), domain.Tie{Candidates: []string{"A", "C", "B"}})
	require.NoError(t, err)
	assert.Equal(t, "B", choice)

	_, err = breaker.BreakTie(context.Background(), domain.Tie{Candidates: []string{"A", "E"}})
	assert.ErrorIs(t, err, ErrNoTieDecision)
}

func TestPromptTieBreakerAsksAgain(t *testing.T) {
	var out strings.Builder
	breaker := NewPromptTieBreaker(strings.NewReader("x\n7\n1\n"), &out)

	choice, err := breaker.BreakTie(context.Background(), domain.Tie{Round: 2, Candidates: []string{"B", "C"}})
	require.NoError(t, err)

	assert.Equal(t, "C", choice)
	assert.Contains(t, out.String(), "     0. B\n     1. C\n")
	assert.Equal(t, 3, strings.Count(out.String(), "Which candidate to exclude?"))
}

func TestPromptTieBreakerInputClosed(t *testing.T) {
	var out strings.Builder
	breaker := NewPromptTieBreaker(strings.NewReader(""), &out)

	_, err := breaker.BreakTie(context.Background(), domain.Tie{Candidates: []string{"B", "C"}})
	assert.ErrorIs(t, err, ErrNoTieDecision)
}

func TestPromptTieBreakerCancelled(t *testing.T) {
	var out strings.Builder
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPromptTieBreaker(strings.NewReader("0\n"), &out).BreakTie(ctx, domain.Tie{Candidates: []string{"B", "C"}})
	assert.ErrorIs(t, err, context.Canceled)
}
