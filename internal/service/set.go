package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/forgo/smartwords/internal/logging"
	"github.com/forgo/smartwords/internal/model"
)

const tracerName = "github.com/forgo/smartwords/internal/service"

// SetStore defines the interface for set document storage
type SetStore interface {
	Find(ctx context.Context, filter model.SetFilter) ([]model.SetDocument, error)
	Insert(ctx context.Context, doc model.SetDocument) (model.SetDocument, error)
	Delete(ctx context.Context, id string) (bool, error)
	Ping(ctx context.Context) error
}

// SetService maps stored set documents to validated sets
type SetService struct {
	store  SetStore
	logger *zap.Logger
	tracer trace.Tracer
}

// SetServiceConfig holds dependencies for the set service
type SetServiceConfig struct {
	Store  SetStore
	Logger *zap.Logger  // Optional
	Tracer trace.Tracer // Optional, uses the global provider if nil
}

// NewSetService creates a new set service
func NewSetService(cfg SetServiceConfig) *SetService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &SetService{
		store:  cfg.Store,
		logger: logger,
		tracer: tracer,
	}
}

// FindAll returns every stored set whose name contains nameFilter, ignoring
// case. An empty filter returns all sets. The result is never nil.
//
// Store errors are returned unchanged. A stored document that fails
// validation aborts the whole call with ErrCorruptSet.
func (s *SetService) FindAll(ctx context.Context, nameFilter string) ([]*model.Set, error) {
	ctx, span := s.tracer.Start(ctx, "SetService.FindAll",
		trace.WithAttributes(attribute.String("set.name_filter", nameFilter)))
	defer span.End()

	docs, err := s.store.Find(ctx, model.SetFilter{Name: nameFilter})
	if err != nil {
		return nil, recordError(span, err)
	}

	sets := make([]*model.Set, 0, len(docs))
	for _, doc := range docs {
		set, err := s.toSet(ctx, doc)
		if err != nil {
			return nil, recordError(span, err)
		}
		sets = append(sets, set)
	}

	span.SetAttributes(attribute.Int("set.count", len(sets)))
	return sets, nil
}

// FindByID returns the set with exactly the given id
func (s *SetService) FindByID(ctx context.Context, id string) (*model.Set, error) {
	ctx, span := s.tracer.Start(ctx, "SetService.FindByID",
		trace.WithAttributes(attribute.String("set.id", id)))
	defer span.End()

	if id == "" {
		return nil, ErrSetNotFound
	}

	docs, err := s.store.Find(ctx, model.SetFilter{ID: id})
	if err != nil {
		return nil, recordError(span, err)
	}
	if len(docs) == 0 {
		return nil, ErrSetNotFound
	}

	set, err := s.toSet(ctx, docs[0])
	if err != nil {
		return nil, recordError(span, err)
	}
	return set, nil
}

// Create validates req and stores it as a new set
func (s *SetService) Create(ctx context.Context, req model.CreateSetRequest) (*model.Set, error) {
	ctx, span := s.tracer.Start(ctx, "SetService.Create")
	defer span.End()

	draft := model.SetDocument{
		Name:        req.Name,
		Description: req.Description,
		Words:       make([]model.WordDocument, 0, len(req.Words)),
	}
	for _, w := range req.Words {
		draft.Words = append(draft.Words, model.WordDocument{Word: w.Word, Meaning: w.Meaning})
	}

	// nothing reaches the store unless it is a valid set
	if _, err := model.NewSet(draft); err != nil {
		return nil, err
	}

	stored, err := s.store.Insert(ctx, draft)
	if err != nil {
		return nil, recordError(span, err)
	}

	set, err := s.toSet(ctx, stored)
	if err != nil {
		return nil, recordError(span, err)
	}

	span.SetAttributes(attribute.String("set.id", set.ID()))
	logging.FromContext(ctx, s.logger).Info("set created",
		zap.String("set_id", set.ID()),
		zap.Int("words", len(stored.Words)),
	)
	return set, nil
}

// Delete removes the set with the given id
func (s *SetService) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "SetService.Delete",
		trace.WithAttributes(attribute.String("set.id", id)))
	defer span.End()

	if id == "" {
		return ErrSetNotFound
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return recordError(span, err)
	}
	if !deleted {
		return ErrSetNotFound
	}

	logging.FromContext(ctx, s.logger).Info("set deleted", zap.String("set_id", id))
	return nil
}

// Ping checks that the store is reachable
func (s *SetService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *SetService) toSet(ctx context.Context, doc model.SetDocument) (*model.Set, error) {
	set, err := model.NewSet(doc)
	if err != nil {
		logging.FromContext(ctx, s.logger).Warn("stored set failed validation",
			zap.String("set_id", doc.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptSet, doc.ID, err)
	}
	return set, nil
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
