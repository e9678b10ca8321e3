package stv

import (
	"fmt"
	"sort"

	"github.com/vncsmyrnk/stv/internal/core/domain"
)

// Validate rejects input that cannot be counted. It runs before any round.
func Validate(election domain.Election, ballots []domain.Ballot) error {
	if len(election.Candidates) == 0 {
		return domain.ErrNoCandidates
	}
	seen := make(map[string]struct{}, len(election.Candidates))
	for i, name := range election.Candidates {
		if name == "" {
			return fmt.Errorf("candidate %d: %w", i, domain.ErrBlankCandidate)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateCandidate, name)
		}
		seen[name] = struct{}{}
	}
	if election.Seats < 1 || election.Seats > len(election.Candidates) {
		return fmt.Errorf("%w: got %d seats for %d candidates", domain.ErrInvalidSeats, election.Seats, len(election.Candidates))
	}
	if !election.Quota.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidQuotaRule, election.Quota)
	}
	for _, ballot := range ballots {
		if ballot.Weight <= 0 {
			return fmt.Errorf("ballot %q: %w", ballot.Key, domain.ErrInvalidWeight)
		}
		if err := ValidateRanking(ballot.Preferences, len(election.Candidates)); err != nil {
			return fmt.Errorf("ballot %q: %w", ballot.Key, err)
		}
	}
	return nil
}

// ValidateRanking checks that every preference is a distinct index below
// candidates. An empty ranking is valid and simply exhausts.
func ValidateRanking(ranking []int, candidates int) error {
	seen := make(map[int]struct{}, len(ranking))
	for _, p := range ranking {
		if p < 0 || p >= candidates {
			return fmt.Errorf("%w: %d", domain.ErrInvalidPreference, p)
		}
		if _, ok := seen[p]; ok {
			return fmt.Errorf("%w: %d", domain.ErrDuplicatePreference, p)
		}
		seen[p] = struct{}{}
	}
	return nil
}

// Group merges ballots with identical rankings, adding up their weights. The
// result is ordered by ranking key.
func Group(ballots []domain.Ballot) []domain.Ballot {
	index := make(map[string]int, len(ballots))
	var grouped []domain.Ballot
	for _, ballot := range ballots {
		key := domain.RankingKey(ballot.Preferences)
		if i, ok := index[key]; ok {
			grouped[i].Weight += ballot.Weight
			continue
		}
		index[key] = len(grouped)
		grouped = append(grouped, domain.NewBallot(append([]int(nil), ballot.Preferences...), ballot.Weight))
	}
	sort.Slice(grouped, func(i, j int) bool {
		return grouped[i].Key < grouped[j].Key
	})
	return grouped
}

// GroupRankings collapses single rankings into weighted ballots.
func GroupRankings(rankings [][]int) []domain.Ballot {
	ballots := make([]domain.Ballot, len(rankings))
	for i, r := range rankings {
		ballots[i] = domain.NewBallot(r, 1)
	}
	return Group(ballots)
}
