package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"examgen-be/internal/entity"
	"examgen-be/internal/repository/specification"
	"examgen-be/internal/repository/unitofwork"
	"examgen-be/pkg/database"
	"examgen-be/pkg/pipeline"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ProblemRepository())
	assert.NotNil(t, uow.GenerationRunRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Problem Repository", func(t *testing.T) {
		count, err := uow.ProblemRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Problem count: %d", count)
	})

	t.Run("Check Problem Embedding Repository", func(t *testing.T) {
		count, err := uow.ProblemEmbeddingRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("ProblemEmbedding count: %d", count)
	})

	t.Run("Check Transactional Problem With Run", func(t *testing.T) {
		sessionId := uuid.New()
		problem := &entity.Problem{
			Id:          uuid.New(),
			Stem:        "x^2 - 4x + 1 の最小値を求めよ",
			FinalAnswer: "-3",
			Subject:     "math",
			SessionId:   sessionId.String(),
			CreatedAt:   time.Now(),
		}

		ctx := context.Background()
		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		err = uow.ProblemRepository().Create(ctx, problem)
		assert.NoError(t, err)

		problemId := problem.Id
		run := &entity.GenerationRun{
			Id:    sessionId,
			Stage: string(pipeline.StageCompileReady),
			Parameters: pipeline.Parameters{
				Subject:       "math",
				Difficulty:    "standard",
				QuestionCount: 1,
			},
			ProblemId: &problemId,
			CreatedAt: time.Now(),
		}

		err = uow.GenerationRunRepository().Save(ctx, run)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		// Read back through a fresh unit of work
		readUow := uowFactory.NewUnitOfWork(context.Background())
		got, err := readUow.GenerationRunRepository().FindOne(context.Background(),
			specification.ByID{ID: sessionId})
		assert.NoError(t, err)
		assert.Equal(t, string(pipeline.StageCompileReady), got.Stage)

		t.Log("Successfully created Problem with GenerationRun in Transaction")
	})
}
