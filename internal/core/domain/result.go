package domain

import (
	"math/big"
	"time"

	"github.com/google/uuid"
)

type Result struct {
	ElectionID uuid.UUID `json:"election_id"`
	Winners    []string  `json:"winners"`
	Exhausted  *big.Rat  `json:"exhausted"`
	Rounds     []Round   `json:"rounds"`
	CountedAt  time.Time `json:"counted_at"`
}

// Round is the trace of one count. Tallies are the standings right after
// first-preference distribution; Events are in the order they happened.
type Round struct {
	Number    int              `json:"number"`
	Total     *big.Rat         `json:"total"`
	Quota     *big.Rat         `json:"quota"`
	Exhausted *big.Rat         `json:"exhausted"`
	Tallies   []CandidateTally `json:"tallies"`
	Events    []Event          `json:"events"`
}

type CandidateTally struct {
	Name    string   `json:"name"`
	Votes   *big.Rat `json:"votes"`
	Elected bool     `json:"elected,omitempty"`
}

type EventKind string

const (
	EventElected         EventKind = "elected"
	EventSurplusTransfer EventKind = "surplus_transfer"
	EventAutoElected     EventKind = "auto_elected"
	EventBulkExclusion   EventKind = "bulk_exclusion"
	EventExclusion       EventKind = "exclusion"
	EventTieBroken       EventKind = "tie_broken"
)

// Event records one decision. Value is the candidate's vote for elections and
// exclusions, and the surplus for transfers.
type Event struct {
	Kind       EventKind        `json:"kind"`
	Candidates []string         `json:"candidates"`
	Value      *big.Rat         `json:"value,omitempty"`
	Multiplier *big.Rat         `json:"multiplier,omitempty"`
	Transfers  []Transfer       `json:"transfers,omitempty"`
	Exhausted  *big.Rat         `json:"exhausted,omitempty"`
	Tallies    []CandidateTally `json:"tallies,omitempty"`
}

type Transfer struct {
	To      string   `json:"to"`
	Value   *big.Rat `json:"value"`
	Ballots int      `json:"ballots"`
}

// Quotas returns how many quotas votes represents, e.g. 5/4 for 5 votes
// against a quota of 4.
func Quotas(votes, quota *big.Rat) *big.Rat {
	if quota.Sign() == 0 {
		return new(big.Rat)
	}
	return new(big.Rat).Quo(votes, quota)
}
