package domain

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	ErrElectionNotFound    = errors.New("election not found")
	ErrResultNotFound      = errors.New("election has not been counted")
	ErrInvalidElectionID   = errors.New("invalid election id")
	ErrTitleRequired       = errors.New("title is required")
	ErrNoCandidates        = errors.New("election has no candidates")
	ErrDuplicateCandidate  = errors.New("duplicate candidate name")
	ErrBlankCandidate      = errors.New("candidate name is empty")
	ErrInvalidSeats        = errors.New("seat target must be between 1 and the number of candidates")
	ErrInvalidQuotaRule    = errors.New("unknown quota rule")
	ErrInvalidPreference   = errors.New("ranking references an unknown candidate")
	ErrDuplicatePreference = errors.New("ranking lists a candidate more than once")
	ErrEmptyBallot         = errors.New("ballot ranks no candidates")
	ErrInvalidWeight       = errors.New("ballot weight must be positive")
	ErrTieUnresolved       = errors.New("tie for exclusion needs a decision")
	ErrInvalidTieChoice    = errors.New("tie decision is not one of the tied candidates")
	ErrInconsistentCount   = errors.New("fewer candidates remain than seats to fill")
	ErrAlreadyCounted      = errors.New("counter has already run")
)

// TieError is returned when the lowest hopefuls are tied and no tie breaker
// was supplied. It matches ErrTieUnresolved with errors.Is.
type TieError struct {
	Tie Tie
}

func (e *TieError) Error() string {
	return fmt.Sprintf("round %d: tie for last place between %s", e.Tie.Round, strings.Join(e.Tie.Candidates, ", "))
}

func (e *TieError) Unwrap() error {
	return ErrTieUnresolved
}

// Tie describes candidates sharing the lowest vote when one must be excluded.
type Tie struct {
	Round      int      `json:"round"`
	Candidates []string `json:"candidates"`
	Vote       *big.Rat `json:"vote"`
}
