package kafka

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewOrderAppendedEvent(t *testing.T) {
	order := json.RawMessage(`{"item":"widget","qty":2}`)
	event := NewOrderAppendedEvent("alice", order)

	if event.EventType != EventTypeOrderAppended {
		t.Fatalf("expected %s, got %s", EventTypeOrderAppended, event.EventType)
	}
	if event.Name != "alice" {
		t.Fatalf("expected name alice, got %s", event.Name)
	}
	if string(event.Order) != string(order) {
		t.Fatalf("expected order payload preserved, got %s", event.Order)
	}
	if time.Since(event.Timestamp) > time.Minute {
		t.Fatalf("unexpected timestamp: %v", event.Timestamp)
	}
}

func TestNewUserRegisteredEvent(t *testing.T) {
	event := NewUserRegisteredEvent("carol")

	if event.EventType != EventTypeUserRegistered {
		t.Fatalf("expected %s, got %s", EventTypeUserRegistered, event.EventType)
	}
	if event.Name != "carol" {
		t.Fatalf("expected name carol, got %s", event.Name)
	}
	if time.Since(event.Timestamp) > time.Minute {
		t.Fatalf("unexpected timestamp: %v", event.Timestamp)
	}
}

func TestOrderEventJSONShape(t *testing.T) {
	event := NewOrderAppendedEvent("bob", json.RawMessage(`{"total":3}`))

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if decoded["event_type"] != "order.appended" {
		t.Fatalf("unexpected event_type: %v", decoded["event_type"])
	}
	if decoded["name"] != "bob" {
		t.Fatalf("unexpected name: %v", decoded["name"])
	}
	if _, ok := decoded["order"]; !ok {
		t.Fatal("order payload missing from event")
	}
}
