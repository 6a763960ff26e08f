package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"notes-app/internal/entity"
	"notes-app/internal/repository/contract"
	"notes-app/internal/repository/specification"

	"github.com/patrickmn/go-cache"
)

// NoteStore keeps notes in process memory. It backs local runs without
// PostgreSQL and the HTTP tests. Ids come from a counter and are never reused.
type NoteStore struct {
	mu     sync.Mutex
	cache  *cache.Cache
	nextId int
}

func NewNoteStore() *NoteStore {
	return &NoteStore{
		cache:  cache.New(cache.NoExpiration, 0),
		nextId: 1,
	}
}

// NoteRepository is the contract.NoteRepository view of a NoteStore.
// Specifications are ignored except ByID; results are ordered by id.
type NoteRepository struct {
	store *NoteStore
}

func NewNoteRepository(store *NoteStore) contract.NoteRepository {
	return &NoteRepository{store: store}
}

func key(id int) string {
	return strconv.Itoa(id)
}

func (r *NoteRepository) Create(ctx context.Context, note *entity.Note) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("create note: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored := entity.Note{Id: r.store.nextId, Title: note.Title, Content: note.Content}
	r.store.nextId++
	r.store.cache.Set(key(stored.Id), stored, cache.NoExpiration)

	*note = stored
	return nil
}

func (r *NoteRepository) Update(ctx context.Context, note *entity.Note) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("update note %d: %w", note.Id, err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, found := r.store.cache.Get(key(note.Id)); !found {
		return fmt.Errorf("update note %d: %w", note.Id, contract.ErrNoteNotFound)
	}
	r.store.cache.Set(key(note.Id), *note, cache.NoExpiration)
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, found := r.store.cache.Get(key(id)); !found {
		return fmt.Errorf("delete note %d: %w", id, contract.ErrNoteNotFound)
	}
	r.store.cache.Delete(key(id))
	return nil
}

func (r *NoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	notes, err := r.FindAll(ctx, specs...)
	if err != nil || len(notes) == 0 {
		return nil, err
	}
	return notes[0], nil
}

func (r *NoteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			x, found := r.store.cache.Get(key(byId.ID))
			if !found {
				return []*entity.Note{}, nil
			}
			note := x.(entity.Note)
			return []*entity.Note{&note}, nil
		}
	}

	items := r.store.cache.Items()
	notes := make([]*entity.Note, 0, len(items))
	for _, item := range items {
		note := item.Object.(entity.Note)
		notes = append(notes, &note)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Id < notes[j].Id })
	return notes, nil
}

func (r *NoteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	notes, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(notes)), nil
}
