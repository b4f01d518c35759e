// Package events provides the observable surface of the distribution
// ledger: a publish/subscribe bus carrying a structured record of every
// state change (balance movements, completed claims, commitment and owner
// updates, completed batches).
package events

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/holiman/uint256"

	"github.com/merkledrop/merkledrop/core/types"
)

// Type identifies the kind of event published on the bus.
type Type string

const (
	// TypeTransfer fires for every balance movement, including each entry
	// of a batch push and the ledger side of a claim.
	TypeTransfer Type = "drop.transfer"
	// TypeClaimed fires once per successful claim.
	TypeClaimed Type = "drop.claimed"
	// TypeRootUpdated fires when the active commitment is replaced.
	TypeRootUpdated Type = "drop.rootUpdated"
	// TypeOwnerChanged fires when the owner role is transferred.
	TypeOwnerChanged Type = "drop.ownerChanged"
	// TypeBatchCompleted fires once per successful batch push.
	TypeBatchCompleted Type = "drop.batchCompleted"
)

// Transfer records one balance movement.
type Transfer struct {
	From   types.Address
	To     types.Address
	Amount *uint256.Int
}

// Claimed records one completed claim.
type Claimed struct {
	Account types.Address
	Amount  *uint256.Int
}

// RootUpdated records a commitment replacement. Prev is the zero hash when
// no commitment was published before.
type RootUpdated struct {
	Prev types.Hash
	Root types.Hash
}

// OwnerChanged records a transfer of the owner role.
type OwnerChanged struct {
	Prev  types.Address
	Owner types.Address
}

// BatchCompleted records a successful batch push and its entry count.
type BatchCompleted struct {
	Entries int
}

// Event is a message published on the bus.
type Event struct {
	Type      Type
	Data      interface{}
	Timestamp time.Time
}

// Subscription represents a subscription to one or more event types on the
// Bus.
type Subscription struct {
	id     uint64
	types  map[Type]struct{}
	ch     chan Event
	bus    *Bus
	closed atomic.Bool
}

// Chan returns a read-only channel that receives events matching the
// subscription's event types.
func (s *Subscription) Chan() <-chan Event {
	return s.ch
}

// Unsubscribe removes this subscription from the bus and closes the
// underlying channel. It is safe to call multiple times.
func (s *Subscription) Unsubscribe() {
	if s.bus != nil {
		s.bus.Unsubscribe(s)
	}
}

// Bus is a publish/subscribe mechanism decoupling the distributor from its
// observers. All methods are safe for concurrent use.
type Bus struct {
	mu         sync.RWMutex
	subs       map[uint64]*Subscription
	nextID     uint64
	bufferSize int
	closed     bool
}

// NewBus creates a new Bus. bufferSize controls the channel buffer for each
// subscription; use 0 for unbuffered channels.
func NewBus(bufferSize int) *Bus {
	if bufferSize < 0 {
		bufferSize = 0
	}
	return &Bus{
		subs:       make(map[uint64]*Subscription),
		bufferSize: bufferSize,
	}
}

// Subscribe creates a subscription that receives events matching any of the
// given types.
func (b *Bus) Subscribe(eventTypes ...Type) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		sub := &Subscription{
			ch:    make(chan Event),
			types: make(map[Type]struct{}),
		}
		sub.closed.Store(true)
		close(sub.ch)
		return sub
	}

	b.nextID++
	typeSet := make(map[Type]struct{}, len(eventTypes))
	for _, t := range eventTypes {
		typeSet[t] = struct{}{}
	}

	sub := &Subscription{
		id:    b.nextID,
		types: typeSet,
		ch:    make(chan Event, b.bufferSize),
		bus:   b,
	}
	b.subs[sub.id] = sub
	return sub
}

// Unsubscribe removes the given subscription from the bus and closes its
// channel. Safe to call multiple times or with nil.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	if !sub.closed.CompareAndSwap(false, true) {
		return
	}

	b.mu.Lock()
	delete(b.subs, sub.id)
	b.mu.Unlock()

	close(sub.ch)
}

// Publish sends an event to all subscribers that match the given event
// type. It blocks if a subscriber's channel is full; the distributor calls
// it only after its state mutation has committed and its lock is released.
func (b *Bus) Publish(eventType Type, data interface{}) {
	event := Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, sub := range b.subs {
		if sub.closed.Load() {
			continue
		}
		if _, ok := sub.types[eventType]; ok {
			sub.ch <- event
		}
	}
}

// SubscriberCount returns the number of active subscriptions for the given
// event type.
func (b *Bus) SubscriberCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, sub := range b.subs {
		if sub.closed.Load() {
			continue
		}
		if _, ok := sub.types[eventType]; ok {
			count++
		}
	}
	return count
}

// Close shuts down the bus. All subscription channels are closed and no
// further events can be published.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true

	toClose := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		toClose = append(toClose, sub)
	}
	b.subs = make(map[uint64]*Subscription)
	b.mu.Unlock()

	for _, sub := range toClose {
		if sub.closed.CompareAndSwap(false, true) {
			close(sub.ch)
		}
	}
}
