package apiserver

import "sync"

// EventType categorizes a broadcast event.
type EventType string

const (
	// EventEvaluate fires once per completed /api/v1/evaluate request.
	EventEvaluate EventType = "evaluate"
)

// BroadcastEvent is one message fanned out to every matching
// subscription. Evaluation here is stateless, so there is nothing to
// scope an event to beyond its type.
type BroadcastEvent struct {
	Type EventType        `json:"type"`
	Data EvaluateResponse `json:"data"`
}

// Subscription is one websocket client's live feed of events.
type Subscription struct {
	EventTypes map[EventType]bool
	Channel    chan BroadcastEvent
}

// Broadcaster fans BroadcastEvents out to every subscription whose
// filter accepts them, using a register/unregister/broadcast channel
// trio so a single goroutine owns the subscription map and needs no
// external locking on it.
type Broadcaster struct {
	mu            sync.RWMutex
	subscriptions map[*Subscription]bool
	broadcast     chan BroadcastEvent
	register      chan *Subscription
	unregister    chan *Subscription
	done          chan struct{}
}

// NewBroadcaster creates and starts a new event broadcaster.
func NewBroadcaster() *Broadcaster {
	b := &Broadcaster{
		subscriptions: make(map[*Subscription]bool),
		broadcast:     make(chan BroadcastEvent, 256),
		register:      make(chan *Subscription),
		unregister:    make(chan *Subscription),
		done:          make(chan struct{}),
	}
	go b.run()
	return b
}

func (b *Broadcaster) run() {
	for {
		select {
		case sub := <-b.register:
			b.mu.Lock()
			b.subscriptions[sub] = true
			b.mu.Unlock()

		case sub := <-b.unregister:
			b.mu.Lock()
			if b.subscriptions[sub] {
				delete(b.subscriptions, sub)
				close(sub.Channel)
			}
			b.mu.Unlock()

		case event := <-b.broadcast:
			b.mu.RLock()
			for sub := range b.subscriptions {
				if len(sub.EventTypes) > 0 && !sub.EventTypes[event.Type] {
					continue
				}
				select {
				case sub.Channel <- event:
				default:
					// slow client: drop rather than block the broadcaster.
				}
			}
			b.mu.RUnlock()

		case <-b.done:
			b.mu.Lock()
			for sub := range b.subscriptions {
				close(sub.Channel)
			}
			b.subscriptions = make(map[*Subscription]bool)
			b.mu.Unlock()
			return
		}
	}
}

// Subscribe registers a new subscription filtered to eventTypes (all
// types when empty).
func (b *Broadcaster) Subscribe(eventTypes []EventType) *Subscription {
	filter := make(map[EventType]bool, len(eventTypes))
	for _, et := range eventTypes {
		filter[et] = true
	}
	sub := &Subscription{EventTypes: filter, Channel: make(chan BroadcastEvent, 64)}
	b.register <- sub
	return sub
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Broadcaster) Unsubscribe(sub *Subscription) {
	b.unregister <- sub
}

// Broadcast sends event to every matching subscription, dropping it
// rather than blocking if the broadcaster's internal queue is full.
func (b *Broadcaster) Broadcast(event BroadcastEvent) {
	select {
	case b.broadcast <- event:
	default:
	}
}

// Close shuts the broadcaster down and closes every live subscription.
func (b *Broadcaster) Close() { close(b.done) }

// SubscriptionCount reports the number of active subscriptions.
func (b *Broadcaster) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscriptions)
}
