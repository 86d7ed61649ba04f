package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunningHub() *Hub {
	hub := NewHub()
	go hub.Run()
	return hub
}

func watcher(hub *Hub, cartKey string) *Client {
	return &Client{Hub: hub, CartKey: cartKey, Send: make(chan []byte, 8)}
}

func TestHub_PublishReachesEverySessionOfTheCart(t *testing.T) {
	hub := newRunningHub()
	a := watcher(hub, "user:1")
	b := watcher(hub, "user:1")
	other := watcher(hub, "user:2")
	hub.Register(a)
	hub.Register(b)
	hub.Register(other)
	require.Eventually(t, func() bool {
		return hub.Watchers("user:1") == 2 && hub.Watchers("user:2") == 1
	}, time.Second, 5*time.Millisecond)

	hub.Publish("user:1", CartEvent{Type: EventCartUpdated, CartKey: "user:1"})

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			assert.Contains(t, string(msg), EventCartUpdated)
		case <-time.After(time.Second):
			t.Fatal("session did not receive the event")
		}
	}

	select {
	case <-other.Send:
		t.Fatal("event leaked to another cart")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_DuplicateUnregisterKeepsOtherSessionsAlive(t *testing.T) {
	hub := newRunningHub()
	a := watcher(hub, "user:1")
	b := watcher(hub, "user:1")
	hub.Register(a)
	hub.Register(b)
	require.Eventually(t, func() bool { return hub.Watchers("user:1") == 2 }, time.Second, 5*time.Millisecond)

	// a slow session can be dropped by the fan-out loop and then again by
	// its own read pump teardown; the second removal must not close Send
	// a second time
	hub.Unregister(a)
	hub.Unregister(a)
	require.Eventually(t, func() bool { return hub.Watchers("user:1") == 1 }, time.Second, 5*time.Millisecond)

	hub.Publish("user:1", CartEvent{Type: EventCartCleared, CartKey: "user:1"})
	select {
	case msg := <-b.Send:
		assert.Contains(t, string(msg), EventCartCleared)
	case <-time.After(time.Second):
		t.Fatal("surviving session did not receive the event")
	}
}
