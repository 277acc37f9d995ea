// Package events publishes group and expense changes to a message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Type names a change to stored data. It doubles as the AMQP routing key.
type Type string

const (
	GroupCreated   Type = "group.created"
	GroupDeleted   Type = "group.deleted"
	ExpenseAdded   Type = "expense.added"
	ExpenseRemoved Type = "expense.removed"
)

// Event is the JSON payload sent for every change.
type Event struct {
	Type       Type      `json:"type"`
	GroupID    string    `json:"groupId"`
	ExpenseID  string    `json:"expenseId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// New stamps an event with the current time.
func New(typ Type, groupID, expenseID string) Event {
	return Event{
		Type:       typ,
		GroupID:    groupID,
		ExpenseID:  expenseID,
		OccurredAt: time.Now().UTC(),
	}
}

// Encode returns the wire form of e.
func (e Event) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// Decode parses an event produced by Encode.
func Decode(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return e, nil
}

// Publisher delivers events to a broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Noop drops every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }
