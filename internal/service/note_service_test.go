package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"notes-app/internal/dto"
	"notes-app/internal/entity"
	"notes-app/internal/pkg/logger"
	"notes-app/internal/repository/contract"
	"notes-app/internal/repository/memory"
	"notes-app/internal/repository/specification"
	"notes-app/internal/repository/unitofwork"
	"notes-app/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	messages []dto.NoteEventMessage
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	var msg dto.NoteEventMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return err
	}
	p.messages = append(p.messages, msg)
	return p.err
}

func newMemoryNoteService(pub IPublisherService) INoteService {
	factory := unitofwork.NewMemoryRepositoryFactory(memory.NewNoteStore())
	return NewNoteService(factory, pub, logger.NewNopLogger())
}

func createReq(title, content string) *dto.CreateNoteRequest {
	return &dto.CreateNoteRequest{NoteRequest: dto.NoteRequest{Title: title, Content: content}}
}

func updateReq(id int, title, content string) *dto.UpdateNoteRequest {
	return &dto.UpdateNoteRequest{Id: id, NoteRequest: dto.NoteRequest{Title: title, Content: content}}
}

func TestNoteServiceCreateThenList(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := newMemoryNoteService(pub)

	created, err := svc.Create(ctx, createReq("A", "B"))
	require.NoError(t, err)
	assert.NotZero(t, created.Id)

	notes, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, notes, &dto.NoteResponse{Id: created.Id, Title: "A", Content: "B"})

	require.Len(t, pub.messages, 1)
	assert.Equal(t, events.NoteCreated, pub.messages[0].Type)
	assert.Equal(t, created.Id, pub.messages[0].NoteId)
}

func TestNoteServiceUpdateKeepsIdAndCount(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryNoteService(nil)

	first, err := svc.Create(ctx, createReq("A", "B"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createReq("C", "D"))
	require.NoError(t, err)

	before, _ := svc.List(ctx)
	updated, err := svc.Update(ctx, updateReq(first.Id, "A2", "B2"))
	require.NoError(t, err)
	after, _ := svc.List(ctx)

	assert.Equal(t, &dto.NoteResponse{Id: first.Id, Title: "A2", Content: "B2"}, updated)
	assert.Len(t, after, len(before))
	assert.Equal(t, "C", after[1].Title, "other rows untouched")
}

func TestNoteServiceDeleteThenUpdateIsNotFound(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := newMemoryNoteService(pub)

	created, err := svc.Create(ctx, createReq("A", "B"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.Id))
	notes, _ := svc.List(ctx)
	assert.Empty(t, notes)

	_, err = svc.Update(ctx, updateReq(created.Id, "X", "Y"))
	assert.ErrorIs(t, err, contract.ErrNoteNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.Id), contract.ErrNoteNotFound)

	require.Len(t, pub.messages, 2)
	assert.Equal(t, events.NoteDeleted, pub.messages[1].Type)
}

func TestNoteServicePublishFailureDoesNotFailRequest(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("bus closed")}
	svc := newMemoryNoteService(pub)

	created, err := svc.Create(context.Background(), createReq("A", "B"))

	require.NoError(t, err)
	assert.Equal(t, "A", created.Title)
}

// failing store --------------------------------------------------------------

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *mockNoteRepository) Update(ctx context.Context, note *entity.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *mockNoteRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	args := m.Called(ctx)
	note, _ := args.Get(0).(*entity.Note)
	return note, args.Error(1)
}

func (m *mockNoteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	args := m.Called(ctx)
	notes, _ := args.Get(0).([]*entity.Note)
	return notes, args.Error(1)
}

func (m *mockNoteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type stubUnitOfWork struct {
	repo       contract.NoteRepository
	begun      bool
	rolledBack bool
}

func (u *stubUnitOfWork) Begin(ctx context.Context) error {
	u.begun = true
	return nil
}

func (u *stubUnitOfWork) Commit() error {
	return nil
}

func (u *stubUnitOfWork) Rollback() error {
	u.rolledBack = true
	return nil
}

func (u *stubUnitOfWork) NoteRepository() contract.NoteRepository {
	return u.repo
}

type stubFactory struct {
	uow *stubUnitOfWork
}

func (f stubFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func TestNoteServiceStoreFailures(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("connection refused")

	repo := &mockNoteRepository{}
	repo.On("FindAll", mock.Anything).Return(nil, storeErr)
	repo.On("Create", mock.Anything, mock.Anything).Return(storeErr)
	repo.On("Update", mock.Anything, mock.Anything).Return(storeErr)

	uow := &stubUnitOfWork{repo: repo}
	pub := &recordingPublisher{}
	svc := NewNoteService(stubFactory{uow: uow}, pub, logger.NewNopLogger())

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.Create(ctx, createReq("A", "B"))
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.Update(ctx, updateReq(1, "A", "B"))
	assert.ErrorIs(t, err, storeErr)
	assert.True(t, uow.begun)
	assert.True(t, uow.rolledBack)

	assert.Empty(t, pub.messages, "failed writes publish nothing")
	repo.AssertExpectations(t)
}
