// Package stv counts single transferable vote elections by Wright's method.
//
// Every round restarts from the ballots' full values: preferences are
// distributed over the candidates not yet excluded, a quota is computed from
// the resulting total, candidates reaching it are provisionally elected and
// their surpluses transferred at reduced value. If seats remain open, the
// lowest candidates are excluded and the next round begins.
package stv

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/stv/internal/core/domain"
	"github.com/vncsmyrnk/stv/internal/core/ports"
)

// Counter runs one count. It is not safe for concurrent use and can only be
// run once.
type Counter struct {
	election   domain.Election
	ballots    []domain.Ballot
	tieBreaker ports.TieBreaker
	log        *logrus.Entry

	status []domain.CandidateStatus
	rounds []domain.Round
	ran    bool
}

// NewCounter validates the election and ballots. tieBreaker may be nil, in
// which case a tie for exclusion stops the count with a *domain.TieError.
func NewCounter(election domain.Election, ballots []domain.Ballot, tieBreaker ports.TieBreaker, log *logrus.Entry) (*Counter, error) {
	if err := Validate(election, ballots); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Counter{
		election:   election,
		ballots:    ballots,
		tieBreaker: tieBreaker,
		log:        log.WithField("election", election.ID),
		status:     make([]domain.CandidateStatus, len(election.Candidates)),
	}, nil
}

// Count runs rounds until every seat is filled.
func (c *Counter) Count(ctx context.Context) (*domain.Result, error) {
	if c.ran {
		return nil, domain.ErrAlreadyCounted
	}
	c.ran = true

	for number := 1; ; number++ {
		if remaining := c.remaining(); remaining < c.election.Seats {
			return nil, fmt.Errorf("round %d: %w: %d candidates for %d seats", number, domain.ErrInconsistentCount, remaining, c.election.Seats)
		}

		t := newTally(c.election.Candidates, c.ballots, c.status)
		log := c.log.WithField("round", number)
		exhausted := t.distribute(log)
		total := t.total()
		t.quota = c.election.Quota.Quota(total, c.election.Seats)
		log.WithFields(logrus.Fields{
			"quota":     t.quota.FloatString(2),
			"exhausted": exhausted.FloatString(2),
		}).Debug("preferences distributed")

		round := domain.Round{
			Number:    number,
			Total:     total,
			Quota:     new(big.Rat).Set(t.quota),
			Exhausted: exhausted,
			Tallies:   t.standings(),
		}
		done, err := c.runRound(ctx, t, &round)
		c.rounds = append(c.rounds, round)
		if err != nil {
			return nil, err
		}
		if done {
			return &domain.Result{
				ElectionID: c.election.ID,
				Winners:    t.winners(),
				Exhausted:  new(big.Rat).Set(t.exhausted),
				Rounds:     c.rounds,
				CountedAt:  time.Now().UTC(),
			}, nil
		}
	}
}

// Rounds returns the trace so far, including the round that failed if Count
// returned an error.
func (c *Counter) Rounds() []domain.Round {
	return c.rounds
}

func (c *Counter) runRound(ctx context.Context, t *tally, round *domain.Round) (bool, error) {
	seats := c.election.Seats
	for _, i := range t.ranking() {
		if c.election.Quota.Meets(t.votes[i], t.quota) {
			t.elect(i)
			round.Events = append(round.Events, electedEvent(t, i, domain.EventElected))
		}
	}
	if len(t.elected) >= seats {
		return true, nil
	}

	if c.transferSurpluses(t, round) {
		return true, nil
	}

	// Nothing left to decide once hopefuls and open seats match.
	hopefuls := t.hopefuls()
	if len(hopefuls) == seats-len(t.elected) {
		for _, i := range hopefuls {
			t.elect(i)
			round.Events = append(round.Events, electedEvent(t, i, domain.EventAutoElected))
		}
		return true, nil
	}

	return false, c.exclude(ctx, t, round, hopefuls)
}

func (c *Counter) remaining() int {
	n := 0
	for _, s := range c.status {
		if s != domain.Excluded {
			n++
		}
	}
	return n
}

func electedEvent(t *tally, i int, kind domain.EventKind) domain.Event {
	return domain.Event{
		Kind:       kind,
		Candidates: []string{t.names[i]},
		Value:      new(big.Rat).Set(t.votes[i]),
	}
}
