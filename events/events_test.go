package events

import (
	"testing"
	"time"

	"github.com/holiman/uint256"

	"github.com/merkledrop/merkledrop/core/types"
)

func TestSubscribeReceivesMatchingType(t *testing.T) {
	bus := NewBus(1)
	defer bus.Close()

	sub := bus.Subscribe(TypeClaimed)
	bus.Publish(TypeClaimed, Claimed{
		Account: types.HexToAddress("0x01"),
		Amount:  uint256.NewInt(5),
	})

	select {
	case ev := <-sub.Chan():
		if ev.Type != TypeClaimed {
			t.Fatalf("got event type %q, want %q", ev.Type, TypeClaimed)
		}
		data, ok := ev.Data.(Claimed)
		if !ok {
			t.Fatalf("unexpected payload type %T", ev.Data)
		}
		if data.Amount.Uint64() != 5 {
			t.Fatalf("amount = %d, want 5", data.Amount.Uint64())
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestSubscribeFiltersOtherTypes(t *testing.T) {
	bus := NewBus(1)
	defer bus.Close()

	sub := bus.Subscribe(TypeTransfer)
	bus.Publish(TypeRootUpdated, RootUpdated{Root: types.HexToHash("0x01")})

	select {
	case ev := <-sub.Chan():
		t.Fatalf("subscriber for transfers received %q", ev.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscribeMultipleTypes(t *testing.T) {
	bus := NewBus(2)
	defer bus.Close()

	sub := bus.Subscribe(TypeRootUpdated, TypeOwnerChanged)
	bus.Publish(TypeRootUpdated, RootUpdated{})
	bus.Publish(TypeOwnerChanged, OwnerChanged{})

	for i := 0; i < 2; i++ {
		select {
		case <-sub.Chan():
		case <-time.After(time.Second):
			t.Fatalf("missing event %d", i)
		}
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus(0)
	defer bus.Close()

	sub := bus.Subscribe(TypeBatchCompleted)
	sub.Unsubscribe()
	sub.Unsubscribe() // idempotent

	if _, open := <-sub.Chan(); open {
		t.Fatal("channel should be closed after Unsubscribe")
	}
	if n := bus.SubscriberCount(TypeBatchCompleted); n != 0 {
		t.Fatalf("SubscriberCount = %d after unsubscribe, want 0", n)
	}
}

func TestCloseStopsDelivery(t *testing.T) {
	bus := NewBus(1)
	sub := bus.Subscribe(TypeTransfer)
	bus.Close()

	// Publishing after close is a no-op.
	bus.Publish(TypeTransfer, Transfer{})
	if _, open := <-sub.Chan(); open {
		t.Fatal("subscription channel should be closed after bus Close")
	}

	// Subscriptions created after close are born closed.
	late := bus.Subscribe(TypeTransfer)
	if _, open := <-late.Chan(); open {
		t.Fatal("subscription created after Close should be closed")
	}
}
