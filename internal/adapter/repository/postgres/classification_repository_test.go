package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Wajihx/News-Article-Classifier/internal/domain/entity"
	"github.com/Wajihx/News-Article-Classifier/internal/infrastructure/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func newRecord(t *testing.T, labelIndex int, text string, createdAt time.Time) *entity.Classification {
	t.Helper()

	pred, err := entity.NewPrediction(labelIndex, 0.9, text)
	require.NoError(t, err)

	c := entity.NewClassification(entity.NewArticle(text, entity.SourcePaste, ""), pred, "test-model")
	c.CreatedAt = createdAt
	return c
}

func TestClassificationRepository_CreateAndGet(t *testing.T) {
	repo := NewClassificationRepository(newTestDB(t))
	ctx := context.Background()

	record := newRecord(t, entity.LabelBusiness, "Shares of the retailer jumped", time.Now())
	record.SetTiming(42, false)
	require.NoError(t, repo.Create(ctx, record))

	got, err := repo.GetByID(ctx, record.ID)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, "Business", got.Label)
	assert.Equal(t, entity.SourcePaste, got.Source)
	assert.Equal(t, int64(42), got.LatencyMs)
	assert.Equal(t, entity.HashText("Shares of the retailer jumped"), got.TextHash)
}

func TestClassificationRepository_GetByID_NotFound(t *testing.T) {
	repo := NewClassificationRepository(newTestDB(t))

	got, err := repo.GetByID(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestClassificationRepository_List(t *testing.T) {
	repo := NewClassificationRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, newRecord(t, i%entity.NumLabels, "article", base.Add(time.Duration(i)*time.Minute))))
	}

	records, total, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, records, 2)
	assert.True(t, records[0].CreatedAt.After(records[1].CreatedAt))

	records, total, err = repo.List(ctx, 10, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, records, 1)
}

func TestClassificationRepository_CountByLabel(t *testing.T) {
	repo := NewClassificationRepository(newTestDB(t))
	ctx := context.Background()

	for _, idx := range []int{entity.LabelSports, entity.LabelSports, entity.LabelWorld} {
		require.NoError(t, repo.Create(ctx, newRecord(t, idx, "text", time.Now())))
	}

	counts, err := repo.CountByLabel(ctx)

	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Sports": 2, "World": 1}, counts)
}
