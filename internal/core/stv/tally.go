package stv

import (
	"math/big"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/stv/internal/core/domain"
)

// tally is the state of a single round. It is rebuilt from the ballots and
// the exclusions so far at the start of every round and thrown away after.
type tally struct {
	names   []string
	ballots []domain.Ballot
	status  []domain.CandidateStatus

	votes  []*big.Rat
	piles  [][]int
	values []*big.Rat

	elected   []int
	quota     *big.Rat
	exhausted *big.Rat
}

func newTally(names []string, ballots []domain.Ballot, excluded []domain.CandidateStatus) *tally {
	t := &tally{
		names:     names,
		ballots:   ballots,
		status:    append([]domain.CandidateStatus(nil), excluded...),
		votes:     make([]*big.Rat, len(names)),
		piles:     make([][]int, len(names)),
		values:    make([]*big.Rat, len(ballots)),
		exhausted: new(big.Rat),
	}
	for i := range t.votes {
		t.votes[i] = new(big.Rat)
	}
	for b, ballot := range ballots {
		t.values[b] = domain.Rat(ballot.Weight)
	}
	return t
}

// distribute gives every ballot to its highest preference still in the
// count. Ballots without one are exhausted. It returns the exhausted value.
func (t *tally) distribute(log *logrus.Entry) *big.Rat {
	exhausted := new(big.Rat)
	for b, ballot := range t.ballots {
		value := t.values[b]
		if value.Sign() == 0 {
			continue
		}
		to := t.firstRemaining(ballot.Preferences, 0)
		if to < 0 {
			log.WithFields(logrus.Fields{"ballot": ballot.Key, "value": value.FloatString(2)}).Debug("exhausted")
			exhausted.Add(exhausted, value)
			t.values[b] = new(big.Rat)
			continue
		}
		log.WithFields(logrus.Fields{"ballot": ballot.Key, "value": value.FloatString(2), "candidate": t.names[to]}).Debug("assigning")
		t.votes[to].Add(t.votes[to], value)
		t.piles[to] = append(t.piles[to], b)
	}
	t.exhausted.Add(t.exhausted, exhausted)
	return exhausted
}

// firstRemaining returns the first candidate at or after position start that
// is neither elected nor excluded, or -1.
func (t *tally) firstRemaining(preferences []int, start int) int {
	for _, p := range preferences[start:] {
		if t.status[p] == domain.Remaining {
			return p
		}
	}
	return -1
}

// nextPreference returns the usable preference after from on the ballot.
func (t *tally) nextPreference(preferences []int, from int) int {
	for i, p := range preferences {
		if p == from {
			return t.firstRemaining(preferences, i+1)
		}
	}
	return -1
}

func (t *tally) total() *big.Rat {
	return domain.Sum(t.votes...)
}

func (t *tally) elect(i int) {
	t.status[i] = domain.Elected
	t.elected = append(t.elected, i)
}

// ranking lists candidates still in the count by vote, highest first. Equal
// votes keep candidate order.
func (t *tally) ranking() []int {
	var order []int
	for i, s := range t.status {
		if s != domain.Excluded {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return t.votes[order[a]].Cmp(t.votes[order[b]]) > 0
	})
	return order
}

// hopefuls is ranking without the provisionally elected.
func (t *tally) hopefuls() []int {
	var order []int
	for _, i := range t.ranking() {
		if t.status[i] == domain.Remaining {
			order = append(order, i)
		}
	}
	return order
}

// surpluses lists provisionally elected candidates above quota, highest first.
func (t *tally) surpluses() []int {
	var order []int
	for _, i := range t.ranking() {
		if t.status[i] == domain.Elected && t.votes[i].Cmp(t.quota) > 0 {
			order = append(order, i)
		}
	}
	return order
}

func (t *tally) standings() []domain.CandidateTally {
	order := t.ranking()
	standings := make([]domain.CandidateTally, len(order))
	for n, i := range order {
		standings[n] = domain.CandidateTally{
			Name:    t.names[i],
			Votes:   new(big.Rat).Set(t.votes[i]),
			Elected: t.status[i] == domain.Elected,
		}
	}
	return standings
}

func (t *tally) winners() []string {
	winners := make([]string, len(t.elected))
	for n, i := range t.elected {
		winners[n] = t.names[i]
	}
	return winners
}

func (t *tally) namesOf(indices []int) []string {
	names := make([]string, len(indices))
	for n, i := range indices {
		names[n] = t.names[i]
	}
	return names
}
