package server

import (
	"encoding/json"
	"sync"
)

// Event is the payload published to a group's subscribers whenever a
// ping in that group changes.
type Event struct {
	Type   string `json:"type"`
	PingID string `json:"ping_id,omitempty"`
	State  string `json:"state,omitempty"`
	UserID string `json:"user_id,omitempty"`
}

const (
	eventPingCreated      = "ping_created"
	eventResponseAdded    = "response_added"
	eventResponseUpdated  = "response_updated"
	eventMatchComputed    = "match_computed"
	eventHangoutConfirmed = "hangout_confirmed"
	eventHangoutActivated = "hangout_activated"
	eventHangoutCompleted = "hangout_completed"
	eventPingCancelled    = "ping_cancelled"
	eventAttendeeStatus   = "attendee_status_changed"
)

// Broker is an in-process pub/sub for SSE events, keyed by group ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for
// the given group.
func (b *Broker) Subscribe(groupID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[groupID] == nil {
		b.subs[groupID] = make(map[chan []byte]struct{})
	}
	b.subs[groupID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the group's subscribers.
func (b *Broker) Unsubscribe(groupID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[groupID], ch)
	if len(b.subs[groupID]) == 0 {
		delete(b.subs, groupID)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given group.
func (b *Broker) Publish(groupID string, event Event) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[groupID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
