package postgres

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vncsmyrnk/stv/internal/core/domain"
	"github.com/vncsmyrnk/stv/internal/core/stv"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, applyMigrations(db))
	return db
}

func applyMigrations(db *sql.DB) error {
	entries, err := os.ReadDir("migrations")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}
		content, err := os.ReadFile(filepath.Join("migrations", entry.Name()))
		if err != nil {
			return err
		}
		if _, err := db.Exec(string(content)); err != nil {
			return err
		}
	}
	return nil
}

func TestElectionBallotsAndResult(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	elections := NewElectionRepository(db)
	ballots := NewBallotRepository(db)
	results := NewResultRepository(db)

	election := &domain.Election{
		ID:         uuid.New(),
		Title:      "Council",
		Candidates: []string{"A", "B", "C"},
		Seats:      2,
		Quota:      domain.QuotaDroop,
	}
	require.NoError(t, elections.Save(ctx, election))
	assert.False(t, election.CreatedAt.IsZero())

	fetched, err := elections.GetByID(ctx, election.ID)
	require.NoError(t, err)
	assert.Equal(t, election.Candidates, fetched.Candidates)
	assert.Equal(t, domain.QuotaDroop, fetched.Quota)

	for _, r := range [][]int{{0, 1}, {1, 0}, {0, 1}, {2}, {0, 1}, {1, 0}} {
		require.NoError(t, ballots.SaveBallot(ctx, election.ID, r))
	}
	grouped, err := ballots.GroupedBallots(ctx, election.ID)
	require.NoError(t, err)
	require.Len(t, grouped, 3)
	assert.Equal(t, domain.NewBallot([]int{0, 1}, 3), grouped[0])
	assert.Equal(t, domain.NewBallot([]int{2}, 1), grouped[2])

	_, err = results.GetResult(ctx, election.ID)
	assert.ErrorIs(t, err, domain.ErrResultNotFound)

	counter, err := stv.NewCounter(*fetched, grouped, nil, nil)
	require.NoError(t, err)
	result, err := counter.Count(ctx)
	require.NoError(t, err)
	require.NoError(t, results.SaveResult(ctx, result))
	require.NoError(t, results.SaveResult(ctx, result))

	stored, err := results.GetResult(ctx, election.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, stored.Winners)
	assert.Equal(t, "1", stored.Exhausted.RatString())
	require.Len(t, stored.Rounds, len(result.Rounds))
	assert.Zero(t, stored.Rounds[0].Quota.Cmp(result.Rounds[0].Quota))
	assert.Equal(t, result.Rounds[0].Events[0].Kind, stored.Rounds[0].Events[0].Kind)
}

func TestGetMissingElection(t *testing.T) {
	db := setupDB(t)

	_, err := NewElectionRepository(db).GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrElectionNotFound)
}
