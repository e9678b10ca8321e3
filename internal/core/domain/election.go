package domain

import (
	"time"

	"github.com/google/uuid"
)

type Election struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Candidates []string  `json:"candidates"`
	Seats      int       `json:"seats"`
	Quota      QuotaRule `json:"quota"`
	CreatedAt  time.Time `json:"created_at"`
}

// CandidateStatus tags a candidate by index. Excluded persists across rounds,
// Elected only lasts for the round in which it was decided.
type CandidateStatus int

const (
	Remaining CandidateStatus = iota
	Elected
	Excluded
)

func (s CandidateStatus) String() string {
	switch s {
	case Elected:
		return "elected"
	case Excluded:
		return "excluded"
	}
	return "remaining"
}
