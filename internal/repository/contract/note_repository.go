package contract

import (
	"context"
	"errors"

	"notes-app/internal/entity"
	"notes-app/internal/repository/specification"
)

// ErrNoteNotFound is returned by Update and Delete when no row has the id.
var ErrNoteNotFound = errors.New("note not found")

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	// Update overwrites title and content of the row with note.Id and
	// reloads note from the store.
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id int) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
