package amqp

import (
	"testing"
	"time"
)

func TestMovementMirrorMessageRoundTrip(t *testing.T) {
	msg := NewMovementMirrorMessage(42, ActionUpsert)
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := MovementMirrorMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.MovementID != 42 || got.Action != ActionUpsert {
		t.Fatalf("got %+v", got)
	}
	if !got.Timestamp.Truncate(time.Second).Equal(msg.Timestamp.Truncate(time.Second)) {
		t.Fatalf("timestamp drifted: %v vs %v", got.Timestamp, msg.Timestamp)
	}
}

func TestMovementMirrorMessageRejectsUnknownAction(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"unknown action", `{"movement_id":1,"action":"sync"}`},
		{"missing action", `{"movement_id":1}`},
		{"not json", `movement 1`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := MovementMirrorMessageFromJSON([]byte(tc.body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
