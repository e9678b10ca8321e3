package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/stv/internal/core/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadElection(t *testing.T) {
	path := writeFile(t, "election.json", `{
		"name": "Club",
		"questions": [
			{"question": "President", "answers": ["Zed"]},
			{"question": "Committee", "answers": ["Alice/Physics", "Bob", "Carol/Maths/Year 2"]}
		]
	}`)

	election, err := LoadElection(path, 1)
	require.NoError(t, err)

	assert.Equal(t, "Committee", election.Title)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, election.Candidates)

	_, err = LoadElection(path, 2)
	assert.ErrorContains(t, err, "question 2 not found")
}

func TestLoadBallots(t *testing.T) {
	path := writeFile(t, "result.json", `[
		[[0]],
		[[0, 1], [2], [0, 1], [1, 0, 2]]
	]`)

	ballots, err := LoadBallots(path, 1)
	require.NoError(t, err)

	assert.Equal(t, []domain.Ballot{
		domain.NewBallot([]int{0, 1}, 2),
		domain.NewBallot([]int{1, 0, 2}, 1),
		domain.NewBallot([]int{2}, 1),
	}, ballots)
}

func TestLoadBallotsErrors(t *testing.T) {
	_, err := LoadBallots(filepath.Join(t.TempDir(), "missing.json"), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeFile(t, "result.json", `{"not": "a list"}`)
	_, err = LoadBallots(path, 0)
	assert.ErrorContains(t, err, "failed to parse")
}
