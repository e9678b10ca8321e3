package domain

import (
	"strconv"
	"strings"
)

// Ballot is a group of identical rankings. Preferences are candidate indices,
// highest preference first, and Weight is the number of rankings collapsed
// into the group.
type Ballot struct {
	Key         string `json:"key"`
	Preferences []int  `json:"preferences"`
	Weight      int64  `json:"weight"`
}

// NewBallot builds a ballot keyed by its ranking.
func NewBallot(preferences []int, weight int64) Ballot {
	return Ballot{
		Key:         RankingKey(preferences),
		Preferences: preferences,
		Weight:      weight,
	}
}

// RankingKey renders a ranking as comma separated indices, e.g. "2,0,1".
func RankingKey(preferences []int) string {
	parts := make([]string, len(preferences))
	for i, p := range preferences {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}
