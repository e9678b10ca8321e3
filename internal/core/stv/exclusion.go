package stv

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/vncsmyrnk/stv/internal/core/domain"
)

// exclude removes the lowest hopefuls from the count: as many tie groups at
// once as is safe, otherwise a single candidate.
func (c *Counter) exclude(ctx context.Context, t *tally, round *domain.Round, hopefuls []int) error {
	unfilled := c.election.Seats - len(t.elected)
	if bulk := t.bulkExclusion(hopefuls, unfilled); len(bulk) > 0 {
		votes := new(big.Rat)
		for _, i := range bulk {
			votes.Add(votes, t.votes[i])
			c.status[i] = domain.Excluded
		}
		round.Events = append(round.Events, domain.Event{
			Kind:       domain.EventBulkExclusion,
			Candidates: t.namesOf(bulk),
			Value:      votes,
		})
		return nil
	}

	loser, err := c.lowest(ctx, t, round, hopefuls)
	if err != nil {
		return err
	}
	c.status[loser] = domain.Excluded
	round.Events = append(round.Events, domain.Event{
		Kind:       domain.EventExclusion,
		Candidates: []string{t.names[loser]},
		Value:      new(big.Rat).Set(t.votes[loser]),
	})
	return nil
}

// bulkExclusion returns the largest set of lowest tie groups whose combined
// vote can neither overtake the next group up nor bring the leading hopeful
// to quota, leaving at least unfilled hopefuls. It returns nil when no such
// set exists.
func (t *tally) bulkExclusion(hopefuls []int, unfilled int) []int {
	if len(hopefuls) == 0 {
		return nil
	}
	ascending := append([]int(nil), hopefuls...)
	sort.SliceStable(ascending, func(a, b int) bool {
		if c := t.votes[ascending[a]].Cmp(t.votes[ascending[b]]); c != 0 {
			return c < 0
		}
		return ascending[a] < ascending[b]
	})

	var groups [][]int
	for _, i := range ascending {
		n := len(groups)
		if n > 0 && t.votes[groups[n-1][0]].Cmp(t.votes[i]) == 0 {
			groups[n-1] = append(groups[n-1], i)
			continue
		}
		groups = append(groups, []int{i})
	}

	cumulative := make([]*big.Rat, len(groups))
	counts := make([]int, len(groups))
	sum := new(big.Rat)
	count := 0
	for g, group := range groups {
		for _, i := range group {
			sum.Add(sum, t.votes[i])
		}
		count += len(group)
		cumulative[g] = new(big.Rat).Set(sum)
		counts[g] = count
	}

	shortfall := new(big.Rat).Sub(t.quota, t.votes[hopefuls[0]])
	for g := len(groups) - 2; g >= 0; g-- {
		if counts[g] > len(hopefuls)-unfilled {
			continue
		}
		if cumulative[g].Cmp(t.votes[groups[g+1][0]]) >= 0 {
			continue
		}
		if cumulative[g].Cmp(shortfall) >= 0 {
			continue
		}
		var excluded []int
		for _, group := range groups[:g+1] {
			excluded = append(excluded, group...)
		}
		return excluded
	}
	return nil
}

// lowest picks the single hopeful to exclude, asking the tie breaker when
// several share the lowest vote.
func (c *Counter) lowest(ctx context.Context, t *tally, round *domain.Round, hopefuls []int) (int, error) {
	last := hopefuls[len(hopefuls)-1]
	var tied []int
	for _, i := range hopefuls {
		if t.votes[i].Cmp(t.votes[last]) == 0 {
			tied = append(tied, i)
		}
	}
	if len(tied) == 1 {
		return last, nil
	}

	tie := domain.Tie{
		Round:      round.Number,
		Candidates: t.namesOf(tied),
		Vote:       new(big.Rat).Set(t.votes[last]),
	}
	if c.tieBreaker == nil {
		return -1, &domain.TieError{Tie: tie}
	}
	choice, err := c.tieBreaker.BreakTie(ctx, tie)
	if err != nil {
		return -1, fmt.Errorf("round %d: breaking tie: %w", round.Number, err)
	}
	for _, i := range tied {
		if t.names[i] == choice {
			round.Events = append(round.Events, domain.Event{
				Kind:       domain.EventTieBroken,
				Candidates: tie.Candidates,
				Value:      tie.Vote,
			})
			return i, nil
		}
	}
	return -1, fmt.Errorf("round %d: %w: %q", round.Number, domain.ErrInvalidTieChoice, choice)
}
