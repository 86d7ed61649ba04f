package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asif-dev/machbazar-storefront/internal/app/model"
	"github.com/asif-dev/machbazar-storefront/internal/db"
)

func TestSubmissionRepository_CreateAndList(t *testing.T) {
	repo := NewSubmissionRepository(db.NewTestDB(t))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(&model.OrderSubmission{
			CartKey:       "user:1",
			Zone:          "inside_dhaka",
			PaymentMethod: "cash_on_delivery",
			ItemCount:     i + 1,
			Status:        model.SubmissionCompleted,
		}))
	}

	submissions, total, err := repo.List(2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, submissions, 2)
}

func TestSubmissionRepository_FindRecent(t *testing.T) {
	database := db.NewTestDB(t)
	repo := NewSubmissionRepository(database)

	old := &model.OrderSubmission{CartKey: "user:1", Status: model.SubmissionFailed}
	require.NoError(t, repo.Create(old))
	require.NoError(t, database.Model(old).
		Update("created_at", time.Now().Add(-72*time.Hour)).Error)

	require.NoError(t, repo.Create(&model.OrderSubmission{
		CartKey: "user:2",
		Status:  model.SubmissionCompleted,
	}))

	recent, err := repo.FindRecent(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "user:2", recent[0].CartKey)
}
