package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"notes-app/internal/dto"
	"notes-app/internal/entity"
	"notes-app/internal/mapper"
	"notes-app/internal/metrics"
	"notes-app/internal/pkg/logger"
	"notes-app/internal/repository/contract"
	"notes-app/internal/repository/specification"
	"notes-app/internal/repository/unitofwork"
	"notes-app/pkg/events"
)

type INoteService interface {
	List(ctx context.Context) ([]*dto.NoteResponse, error)
	Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, id int) error
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	mapper           *mapper.NoteMapper
	logger           logger.ILogger
}

// NewNoteService wires the note use cases. publisherService may be nil.
func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		mapper:           mapper.NewNoteMapper(),
		logger:           log,
	}
}

func (s *noteService) List(ctx context.Context) ([]*dto.NoteResponse, error) {
	started := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.NoteRepository().FindAll(ctx, specification.OrderBy{Field: "id"})
	if err != nil {
		metrics.ObserveOperation("list", metrics.ResultError, started)
		return nil, err
	}

	metrics.ObserveOperation("list", metrics.ResultOK, started)
	return s.mapper.ToResponses(notes), nil
}

func (s *noteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	started := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note := entity.Note{
		Title:   req.Title,
		Content: req.Content,
	}
	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		metrics.ObserveOperation("create", metrics.ResultError, started)
		return nil, err
	}

	metrics.ObserveOperation("create", metrics.ResultOK, started)
	s.publish(ctx, dto.NoteEventMessage{
		Type:    events.NoteCreated,
		NoteId:  note.Id,
		Title:   note.Title,
		Content: note.Content,
	})

	return s.mapper.ToResponse(&note), nil
}

func (s *noteService) Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	started := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note := entity.Note{
		Id:      req.Id,
		Title:   req.Title,
		Content: req.Content,
	}

	// the write and the reload of the row see the same snapshot
	if err := uow.Begin(ctx); err != nil {
		metrics.ObserveOperation("update", metrics.ResultError, started)
		return nil, fmt.Errorf("begin update: %w", err)
	}
	if err := uow.NoteRepository().Update(ctx, &note); err != nil {
		_ = uow.Rollback()
		metrics.ObserveOperation("update", metrics.ResultError, started)
		s.logMissing("update", req.Id, err)
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		metrics.ObserveOperation("update", metrics.ResultError, started)
		return nil, fmt.Errorf("commit update: %w", err)
	}

	metrics.ObserveOperation("update", metrics.ResultOK, started)
	s.publish(ctx, dto.NoteEventMessage{
		Type:    events.NoteUpdated,
		NoteId:  note.Id,
		Title:   note.Title,
		Content: note.Content,
	})

	return s.mapper.ToResponse(&note), nil
}

func (s *noteService) Delete(ctx context.Context, id int) error {
	started := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		metrics.ObserveOperation("delete", metrics.ResultError, started)
		s.logMissing("delete", id, err)
		return err
	}

	metrics.ObserveOperation("delete", metrics.ResultOK, started)
	s.publish(ctx, dto.NoteEventMessage{
		Type:   events.NoteDeleted,
		NoteId: id,
	})

	return nil
}

// logMissing records absent ids; the API still answers 500 for them.
func (s *noteService) logMissing(operation string, id int, err error) {
	if errors.Is(err, contract.ErrNoteNotFound) {
		s.logger.Warn("NoteService", "note not found", map[string]interface{}{
			"operation": operation,
			"note_id":   id,
		})
	}
}

// publish never fails the request; events are auxiliary.
func (s *noteService) publish(ctx context.Context, msg dto.NoteEventMessage) {
	if s.publisherService == nil {
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.Warn("NoteService", "failed to marshal note event", map[string]interface{}{
			"error": err.Error(),
			"type":  msg.Type,
		})
		return
	}

	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("NoteService", "failed to publish note event", map[string]interface{}{
			"error":   err.Error(),
			"type":    msg.Type,
			"note_id": msg.NoteId,
		})
	}
}
