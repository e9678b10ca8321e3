package stv

import (
	"math/big"

	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/stv/internal/core/domain"
)

// transferSurpluses passes on every surplus above quota, electing hopefuls
// that the transfers lift to quota. It reports whether all seats are filled.
func (c *Counter) transferSurpluses(t *tally, round *domain.Round) bool {
	rule := c.election.Quota
	for {
		pending := t.surpluses()
		if len(pending) == 0 {
			return false
		}
		for _, from := range pending {
			round.Events = append(round.Events, t.transferSurplus(from, c.log))
			for _, i := range t.hopefuls() {
				if rule.Meets(t.votes[i], t.quota) {
					t.elect(i)
					round.Events = append(round.Events, electedEvent(t, i, domain.EventElected))
				}
			}
			if len(t.elected) >= c.election.Seats {
				return true
			}
		}
	}
}

// transferSurplus moves the surplus of from to the next usable preference of
// each ballot in its pile, at value (vote-quota)/vote. The transferable share
// of a ballot with no usable preference is exhausted. Afterwards from holds
// exactly the quota.
func (t *tally) transferSurplus(from int, log *logrus.Entry) domain.Event {
	vote := t.votes[from]
	surplus := new(big.Rat).Sub(vote, t.quota)
	multiplier := new(big.Rat).Quo(surplus, vote)
	log.WithFields(logrus.Fields{"candidate": t.names[from], "value": multiplier.FloatString(2)}).Debug("transferring surplus")

	received := make([]*big.Rat, len(t.names))
	counts := make([]int, len(t.names))
	exhausted := new(big.Rat)
	for _, b := range t.piles[from] {
		ballot := t.ballots[b]
		share := new(big.Rat).Mul(t.values[b], multiplier)
		to := t.nextPreference(ballot.Preferences, from)
		if to < 0 {
			log.WithFields(logrus.Fields{"ballot": ballot.Key, "value": share.FloatString(2)}).Debug("exhausted")
			exhausted.Add(exhausted, share)
			continue
		}
		log.WithFields(logrus.Fields{"ballot": ballot.Key, "value": share.FloatString(2), "candidate": t.names[to]}).Debug("transferring")
		t.values[b] = share
		t.votes[to].Add(t.votes[to], share)
		t.piles[to] = append(t.piles[to], b)
		if received[to] == nil {
			received[to] = new(big.Rat)
		}
		received[to].Add(received[to], share)
		counts[to]++
	}
	t.exhausted.Add(t.exhausted, exhausted)
	t.votes[from] = new(big.Rat).Set(t.quota)

	var transfers []domain.Transfer
	for i, value := range received {
		if value != nil {
			transfers = append(transfers, domain.Transfer{To: t.names[i], Value: value, Ballots: counts[i]})
		}
	}
	return domain.Event{
		Kind:       domain.EventSurplusTransfer,
		Candidates: []string{t.names[from]},
		Value:      surplus,
		Multiplier: multiplier,
		Transfers:  transfers,
		Exhausted:  exhausted,
		Tallies:    t.standings(),
	}
}
