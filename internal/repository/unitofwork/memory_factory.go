package unitofwork

import (
	"context"
	"fmt"

	"notes-app/internal/repository/contract"
	"notes-app/internal/repository/memory"
)

type memoryRepositoryFactory struct {
	store *memory.NoteStore
}

// NewMemoryRepositoryFactory serves units of work over a process-local store.
// Transactions only track state; every write is applied immediately.
func NewMemoryRepositoryFactory(store *memory.NoteStore) RepositoryFactory {
	return &memoryRepositoryFactory{store: store}
}

func (f *memoryRepositoryFactory) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return &memoryUnitOfWork{store: f.store}
}

type memoryUnitOfWork struct {
	store  *memory.NoteStore
	active bool
}

func (u *memoryUnitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return fmt.Errorf("transaction already started")
	}
	u.active = true
	return nil
}

func (u *memoryUnitOfWork) Commit() error {
	if !u.active {
		return fmt.Errorf("no transaction to commit")
	}
	u.active = false
	return nil
}

func (u *memoryUnitOfWork) Rollback() error {
	if !u.active {
		return fmt.Errorf("no transaction to rollback")
	}
	u.active = false
	return nil
}

func (u *memoryUnitOfWork) NoteRepository() contract.NoteRepository {
	return memory.NewNoteRepository(u.store)
}
