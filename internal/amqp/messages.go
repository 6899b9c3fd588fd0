package amqp

import (
	"encoding/json"
	"time"
)

// Entities and operations carried by sync messages.
const (
	EntityExpense   = "expense"
	EntityTimesheet = "timesheet"

	OpUpsert = "upsert"
	OpDelete = "delete"
)

// EntitySyncMessage is a lightweight pointer to a row whose mirror copy is
// stale. It carries only identity and version; the worker fetches the full
// row from storage before writing the mirror.
type EntitySyncMessage struct {
	Entity    string    `json:"entity"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Op        string    `json:"op"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntitySyncMessage(entity, id, userID, op string, version int64) *EntitySyncMessage {
	return &EntitySyncMessage{
		Entity:    entity,
		ID:        id,
		UserID:    userID,
		Op:        op,
		Version:   version,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *EntitySyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func EntitySyncMessageFromJSON(data []byte) (*EntitySyncMessage, error) {
	var msg EntitySyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
