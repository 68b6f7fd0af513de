package server

import (
	"encoding/json"
	"testing"
)

func TestBrokerPublishSubscribe(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("group-1")
	defer b.Unsubscribe("group-1", ch)

	b.Publish("group-1", Event{Type: eventPingCreated, PingID: "p1"})

	select {
	case data := <-ch:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if ev.Type != eventPingCreated || ev.PingID != "p1" {
			t.Fatalf("got %+v", ev)
		}
	default:
		t.Fatalf("no event delivered")
	}
}

func TestBrokerScopedToGroup(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("group-1")
	defer b.Unsubscribe("group-1", ch)

	b.Publish("group-2", Event{Type: eventPingCreated})

	select {
	case <-ch:
		t.Fatalf("received an event for another group")
	default:
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("group-1")
	b.Unsubscribe("group-1", ch)

	b.Publish("group-1", Event{Type: eventPingCreated})

	select {
	case <-ch:
		t.Fatalf("received an event after unsubscribe")
	default:
	}
}

func TestBrokerDropsWhenSlow(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("group-1")
	defer b.Unsubscribe("group-1", ch)

	// Publish past the buffer; extra events are dropped rather than
	// blocking the publisher.
	for i := 0; i < 40; i++ {
		b.Publish("group-1", Event{Type: eventResponseAdded})
	}

	if got := len(ch); got != cap(ch) {
		t.Fatalf("buffered = %d, want full buffer of %d", got, cap(ch))
	}
}
