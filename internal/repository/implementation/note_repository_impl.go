package implementation

import (
	"context"
	"errors"
	"fmt"

	"notes-app/internal/entity"
	"notes-app/internal/mapper"
	"notes-app/internal/model"
	"notes-app/internal/repository/contract"
	"notes-app/internal/repository/specification"

	"gorm.io/gorm"
)

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	m.Id = 0 // always store-assigned
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

// Update only touches existing rows; Save would insert a missing one.
func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entity.Note) error {
	result := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ?", note.Id).
		Updates(map[string]interface{}{
			"title":   note.Title,
			"content": note.Content,
		})
	if result.Error != nil {
		return fmt.Errorf("update note %d: %w", note.Id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update note %d: %w", note.Id, contract.ErrNoteNotFound)
	}

	updated, err := r.FindOne(ctx, specification.ByID{ID: note.Id})
	if err != nil {
		return err
	}
	if updated == nil {
		return fmt.Errorf("reload note %d: %w", note.Id, contract.ErrNoteNotFound)
	}
	*note = *updated
	return nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&model.Note{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete note %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete note %d: %w", id, contract.ErrNoteNotFound)
	}
	return nil
}

func (r *NoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	var m model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var models []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return count, nil
}
