package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"maeum/internal/core"
)

// RecordSavedMessage announces that a record was written. It carries the
// whole record so consumers never read the record store.
type RecordSavedMessage struct {
	ID        string      `json:"id"`
	Record    core.Record `json:"record"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewRecordSavedMessage wraps rec with a fresh message id.
func NewRecordSavedMessage(rec core.Record) *RecordSavedMessage {
	return &RecordSavedMessage{
		ID:        uuid.NewString(),
		Record:    rec,
		Timestamp: time.Now().UTC(),
	}
}

// Validate rejects messages a consumer cannot act on.
func (m *RecordSavedMessage) Validate() error {
	if _, err := uuid.Parse(m.ID); err != nil {
		return fmt.Errorf("invalid message id %q: %w", m.ID, err)
	}
	if err := m.Record.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}
	return nil
}

// ToJSON converts the message to JSON bytes
func (m *RecordSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordSavedMessageFromJSON decodes and validates a message body.
func RecordSavedMessageFromJSON(data []byte) (*RecordSavedMessage, error) {
	var msg RecordSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Join(errInvalidMessage, err)
	}
	return &msg, nil
}

var errInvalidMessage = errors.New("invalid record saved message")
