package domain

import (
	"fmt"
	"math/big"
)

// QuotaRule pairs a quota formula with the comparison a candidate's vote must
// satisfy against it. The two halves are never configured separately.
type QuotaRule string

const (
	// QuotaDroop is floor(total/(seats+1)) + 1, reached with >=.
	QuotaDroop QuotaRule = "geq-droop"
	// QuotaHagenbachBischoff is total/(seats+1) exactly, exceeded with >.
	QuotaHagenbachBischoff QuotaRule = "gt-hb"
)

func ParseQuotaRule(s string) (QuotaRule, error) {
	switch QuotaRule(s) {
	case QuotaDroop, QuotaHagenbachBischoff:
		return QuotaRule(s), nil
	case "":
		return QuotaDroop, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidQuotaRule, s)
}

func (q QuotaRule) Valid() bool {
	return q == QuotaDroop || q == QuotaHagenbachBischoff
}

// Quota computes the threshold for the given total vote and seat count.
func (q QuotaRule) Quota(total *big.Rat, seats int) *big.Rat {
	quota := new(big.Rat).Quo(total, Rat(int64(seats)+1))
	if q == QuotaDroop {
		quota = Floor(quota)
		quota.Add(quota, Rat(1))
	}
	return quota
}

// Meets reports whether vote satisfies quota under this rule.
func (q QuotaRule) Meets(vote, quota *big.Rat) bool {
	if q == QuotaHagenbachBischoff {
		return vote.Cmp(quota) > 0
	}
	return vote.Cmp(quota) >= 0
}
