package postgres

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"telcochurn/domain/core"
	"telcochurn/internal/migration"
	"telcochurn/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL and migrates it; the test is
// skipped when no database is configured.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sqlx.Connect("postgres", url)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migration.NewRunner().Run(context.Background(), db))
	return db
}

func TestRunRepositoryRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewRunRepository(db)
	ctx := context.Background()

	run := &models.RemediationRun{
		ID:         core.NewRunID().UUID(),
		Source:     "telco.csv",
		Fold:       1.5,
		RowsBefore: 7043,
		RowsAfter:  7010,
		Report:     json.RawMessage(`{"decisions":[]}`),
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.SaveRun(ctx, run))

	got, err := repo.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Source, got.Source)
	assert.Equal(t, run.RowsAfter, got.RowsAfter)
	assert.JSONEq(t, string(run.Report), string(got.Report))

	_, err = repo.GetRun(ctx, uuid.New())
	assert.ErrorIs(t, err, core.ErrRunNotFound)

	runs, err := repo.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, runs)
}

func TestPredictionRepositoryCounts(t *testing.T) {
	db := openTestDB(t)
	repo := NewPredictionRepository(db)
	ctx := context.Background()

	before, err := repo.CountByClass(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.RecordPrediction(ctx, &models.Prediction{
		ID:          core.NewPredictionID().UUID(),
		Payload:     json.RawMessage(`{"Contract":"Month-to-month"}`),
		Class:       1,
		ClassName:   "Churn",
		Probability: 0.91,
		CreatedAt:   time.Now(),
	}))

	after, err := repo.CountByClass(ctx)
	require.NoError(t, err)
	assert.Equal(t, before[1]+1, after[1])
}
