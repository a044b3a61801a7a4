package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"networth/internal/core"
)

type EventType string

const (
	EventDealCreated EventType = "deal.created"
	EventDealDeleted EventType = "deal.deleted"
)

// DealEvent describes one change to the deals table. Created events carry the
// whole row so consumers never need to read the database.
type DealEvent struct {
	MessageID string          `json:"message_id"`
	Type      EventType       `json:"type"`
	DealID    int64           `json:"deal_id"`
	Date      string          `json:"date,omitempty"`
	Value     decimal.Decimal `json:"value"`
	Category  string          `json:"category,omitempty"`
	Comment   string          `json:"comment,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewDealCreatedEvent(d core.Deal) *DealEvent {
	return &DealEvent{
		MessageID: uuid.NewString(),
		Type:      EventDealCreated,
		DealID:    d.ID,
		Date:      d.Date,
		Value:     d.Value,
		Category:  d.Category,
		Comment:   d.Comment,
		Timestamp: time.Now(),
	}
}

func NewDealDeletedEvent(id int64) *DealEvent {
	return &DealEvent{
		MessageID: uuid.NewString(),
		Type:      EventDealDeleted,
		DealID:    id,
		Timestamp: time.Now(),
	}
}

// Deal rebuilds the deal carried by a created event.
func (e *DealEvent) Deal() core.Deal {
	return core.Deal{
		ID:       e.DealID,
		Date:     e.Date,
		Value:    e.Value,
		Category: e.Category,
		Comment:  e.Comment,
	}
}

// ToJSON converts the event to JSON bytes
func (e *DealEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// DealEventFromJSON decodes an event and rejects unknown types or missing ids.
func DealEventFromJSON(data []byte) (*DealEvent, error) {
	var ev DealEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	switch ev.Type {
	case EventDealCreated, EventDealDeleted:
	default:
		return nil, fmt.Errorf("unknown event type %q", ev.Type)
	}
	if ev.DealID <= 0 {
		return nil, fmt.Errorf("event %s has no deal id", ev.MessageID)
	}
	return &ev, nil
}
