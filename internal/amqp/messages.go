package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Mirror actions carried on the wire. The worker fetches the full movement
// from the database, so messages stay small even if they sit in the queue.
const (
	ActionUpsert = "upsert"
	ActionCancel = "cancel"
)

// MovementMirrorMessage asks the mirror worker to push one movement to the
// external ledger sheet.
type MovementMirrorMessage struct {
	MovementID int64     `json:"movement_id"`
	Action     string    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewMovementMirrorMessage(movementID int64, action string) *MovementMirrorMessage {
	return &MovementMirrorMessage{
		MovementID: movementID,
		Action:     action,
		Timestamp:  time.Now(),
	}
}

func (m *MovementMirrorMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MovementMirrorMessageFromJSON(data []byte) (*MovementMirrorMessage, error) {
	var msg MovementMirrorMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	switch msg.Action {
	case ActionUpsert, ActionCancel:
	default:
		return nil, fmt.Errorf("unknown mirror action %q", msg.Action)
	}
	return &msg, nil
}
