package amqp

import (
	"encoding/json"
	"time"
)

// EventType tags a ledger change event. The export worker only acts on the
// transaction events; budget events are published for symmetry and ignored
// downstream.
type EventType string

const (
	TransactionCreated EventType = "transaction.created"
	TransactionDeleted EventType = "transaction.deleted"
	BudgetUpserted     EventType = "budget.upserted"
	BudgetDeleted      EventType = "budget.deleted"
)

// ChangeEvent is a lightweight notification that a row changed. It carries
// only the id; consumers fetch the full record from the database, so a
// stale message never overwrites newer data.
type ChangeEvent struct {
	Type      EventType `json:"type"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeEvent(t EventType, id int64) *ChangeEvent {
	return &ChangeEvent{
		Type:      t,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (e *ChangeEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ChangeEventFromJSON(data []byte) (*ChangeEvent, error) {
	var e ChangeEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
