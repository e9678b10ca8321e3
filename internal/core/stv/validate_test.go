package stv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/stv/internal/core/domain"
	"github.com/vncsmyrnk/stv/internal/core/stv"
)

func TestGroupRankings(t *testing.T) {
	rankings := [][]int{{1, 0}, {0, 1}, {2}, {0, 1}, {1, 0}, {0, 1}}

	ballots := stv.GroupRankings(rankings)

	require.Len(t, ballots, 3)
	assert.Equal(t, domain.Ballot{Key: "0,1", Preferences: []int{0, 1}, Weight: 3}, ballots[0])
	assert.Equal(t, domain.Ballot{Key: "1,0", Preferences: []int{1, 0}, Weight: 2}, ballots[1])
	assert.Equal(t, domain.Ballot{Key: "2", Preferences: []int{2}, Weight: 1}, ballots[2])
}

func TestGroupAddsWeights(t *testing.T) {
	ballots := stv.Group([]domain.Ballot{
		domain.NewBallot([]int{2, 1}, 4),
		domain.NewBallot([]int{2, 1}, 5),
	})

	require.Len(t, ballots, 1)
	assert.Equal(t, int64(9), ballots[0].Weight)
}

func TestGroupCopiesPreferences(t *testing.T) {
	ranking := []int{0, 1}
	ballots := stv.GroupRankings([][]int{ranking})

	ranking[0] = 1
	assert.Equal(t, []int{0, 1}, ballots[0].Preferences)
}

func TestValidateRankingAllowsEmpty(t *testing.T) {
	assert.NoError(t, stv.ValidateRanking(nil, 3))
	assert.ErrorIs(t, stv.ValidateRanking([]int{3}, 3), domain.ErrInvalidPreference)
}
