package unitofwork

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"notes-app/internal/entity"
	"notes-app/internal/model"
	"notes-app/internal/repository/contract"
	"notes-app/internal/repository/specification"
	"notes-app/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormNotesAgainstPostgres(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, true)
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&model.Note{}))

	ctx := context.Background()
	factory := NewRepositoryFactory(gormDB)

	note := &entity.Note{Title: "integration", Content: "created"}
	require.NoError(t, factory.NewUnitOfWork(ctx).NoteRepository().Create(ctx, note))
	t.Cleanup(func() {
		_ = factory.NewUnitOfWork(ctx).NoteRepository().Delete(ctx, note.Id)
	})
	assert.NotZero(t, note.Id)

	t.Run("Rolled back update is invisible", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.NoteRepository().Update(ctx, &entity.Note{Id: note.Id, Title: "changed", Content: "changed"}))
		require.NoError(t, uow.Rollback())

		found, err := factory.NewUnitOfWork(ctx).NoteRepository().FindOne(ctx, specification.ByID{ID: note.Id})
		require.NoError(t, err)
		assert.Equal(t, "integration", found.Title)
	})

	t.Run("Committed update is visible", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.NoteRepository().Update(ctx, &entity.Note{Id: note.Id, Title: "updated", Content: "updated"}))
		require.NoError(t, uow.Commit())

		found, err := factory.NewUnitOfWork(ctx).NoteRepository().FindOne(ctx, specification.ByID{ID: note.Id})
		require.NoError(t, err)
		assert.Equal(t, "updated", found.Title)
	})

	t.Run("Missing row", func(t *testing.T) {
		err := factory.NewUnitOfWork(ctx).NoteRepository().Delete(ctx, -1)
		assert.True(t, errors.Is(err, contract.ErrNoteNotFound))
	})
}
