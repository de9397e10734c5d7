package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"saveit/internal/amqp"
	"saveit/internal/core"
	"saveit/internal/storage"
)

// TrackerService orchestrates writes: the durable store first, then a
// change event. Event publishing never fails the write; the read streams
// reflect the new state regardless, and the export catches up through the
// periodic sweep.
type TrackerService struct {
	storage *storage.SQLiteRepository
	events  *amqp.Client
}

func NewTrackerService(storage *storage.SQLiteRepository, events *amqp.Client) *TrackerService {
	return &TrackerService{
		storage: storage,
		events:  events,
	}
}

// SaveTransaction validates and stores a transaction, defaulting a blank
// title to the category name, then publishes a created event.
func (s *TrackerService) SaveTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	if strings.TrimSpace(t.Title) == "" {
		t.Title = t.Category
	}
	if err := t.Validate(); err != nil {
		return 0, err
	}

	id, err := s.storage.InsertTransaction(ctx, storage.TransactionFromCore(t))
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}

	s.publish(ctx, amqp.TransactionCreated, id)
	return id, nil
}

// DeleteTransaction removes a transaction and publishes a deleted event.
func (s *TrackerService) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.storage.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.publish(ctx, amqp.TransactionDeleted, id)
	return nil
}

// SaveBudget validates and upserts a budget. A zero id creates or replaces
// the (category, month, year) row; a non-zero id updates only the limit.
func (s *TrackerService) SaveBudget(ctx context.Context, b core.Budget) (int64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}

	id, err := s.storage.UpsertBudget(ctx, storage.BudgetFromCore(b))
	if err != nil {
		return 0, fmt.Errorf("save budget: %w", err)
	}

	s.publish(ctx, amqp.BudgetUpserted, id)
	return id, nil
}

// DeleteBudget removes a budget and publishes a deleted event.
func (s *TrackerService) DeleteBudget(ctx context.Context, id int64) error {
	if err := s.storage.DeleteBudget(ctx, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}

	s.publish(ctx, amqp.BudgetDeleted, id)
	return nil
}

func (s *TrackerService) publish(ctx context.Context, eventType amqp.EventType, id int64) {
	if s.events == nil {
		slog.DebugContext(ctx, "Event client not available, skipping change event",
			"type", eventType, "id", id)
		return
	}
	if err := s.events.PublishChange(ctx, amqp.NewChangeEvent(eventType, id)); err != nil {
		// The write already landed; the export sweep picks it up later.
		slog.ErrorContext(ctx, "Failed to publish change event",
			"type", eventType, "id", id, "error", err)
	}
}

// Close closes both the storage and event connections.
func (s *TrackerService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.events != nil {
		if err := s.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close tracker service: %v", errs)
	}

	return nil
}
