package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/SAP-F-2025/question-parser-service/internal/models"
	"github.com/SAP-F-2025/question-parser-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() || os.Getenv("INTEGRATION_TESTS") != "1" {
		t.Skip("set INTEGRATION_TESTS=1 to run against a Postgres container")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("questions"),
		tcpostgres.WithUsername("parser"),
		tcpostgres.WithPassword("parser"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.QuestionSet{}))
	return db
}

func TestQuestionSetRepository(t *testing.T) {
	db := setupDB(t)
	repo := NewQuestionSetPostgreSQL(db)
	ctx := context.Background()

	first := &models.QuestionSet{
		FileName:       "exam.pdf",
		Questions:      datatypes.JSON(`[{"section":"math","questionText":"1+1?"}]`),
		QuestionsCount: 1,
		CacheKey:       "final:exam.pdf",
	}
	require.NoError(t, repo.Upsert(ctx, first))
	require.NotZero(t, first.ID)

	second := &models.QuestionSet{
		FileName:       "exam.pdf",
		Questions:      datatypes.JSON(`[{"section":"math","questionText":"1+1?"},{"section":"math","questionText":"2+2?"}]`),
		QuestionsCount: 2,
		CacheKey:       "final:exam.pdf",
	}
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	got, err := repo.GetByFileName(ctx, "exam.pdf")
	require.NoError(t, err)
	assert.Equal(t, 2, got.QuestionsCount)
	assert.JSONEq(t, string(second.Questions), string(got.Questions))

	require.NoError(t, repo.Upsert(ctx, &models.QuestionSet{FileName: "other.pdf", Questions: datatypes.JSON(`[]`)}))

	sets, total, err := repo.List(ctx, repositories.QuestionSetFilters{Limit: 1, SortBy: "file_name", SortOrder: "asc"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, sets, 1)
	assert.Equal(t, "exam.pdf", sets[0].FileName)

	require.NoError(t, repo.Delete(ctx, "other.pdf"))
	assert.ErrorIs(t, repo.Delete(ctx, "other.pdf"), repositories.ErrQuestionSetNotFound)

	_, err = repo.GetByFileName(ctx, "missing.pdf")
	assert.ErrorIs(t, err, repositories.ErrQuestionSetNotFound)
}
