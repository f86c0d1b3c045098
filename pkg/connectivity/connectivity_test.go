package connectivity_test

import (
	"context"
	"testing"

	"github.com/cropsaarthi/backend/pkg/connectivity"
)

func TestCheckNotifiesOnTransition(t *testing.T) {
	t.Parallel()
	online := true
	m := connectivity.NewMonitorWithProbe(func(context.Context) bool { return online })

	var events []bool
	unsubscribe := m.Subscribe(func(state bool) { events = append(events, state) })
	defer unsubscribe()

	// Same state: no notification.
	m.Check(context.Background())
	if len(events) != 0 {
		t.Fatalf("no transition expected, got %v", events)
	}

	online = false
	m.Check(context.Background())
	online = true
	m.Check(context.Background())

	if len(events) != 2 || events[0] != false || events[1] != true {
		t.Fatalf("expected offline then online events, got %v", events)
	}
	if !m.Online() {
		t.Fatal("monitor must report online")
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	t.Parallel()
	online := true
	m := connectivity.NewMonitorWithProbe(func(context.Context) bool { return online })

	calls := 0
	unsubscribe := m.Subscribe(func(bool) { calls++ })
	unsubscribe()

	online = false
	m.Check(context.Background())
	if calls != 0 {
		t.Fatalf("unsubscribed listener must not fire, got %d calls", calls)
	}
}
