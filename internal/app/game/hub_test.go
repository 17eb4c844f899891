package game

import "testing"

func TestHubRegisterSendUnregister(t *testing.T) {
	hub := NewHub()
	c := NewClient(nil, nil, hub)

	hub.Register(c)
	if hub.Len() != 1 {
		t.Fatalf("expected 1 client, got %d", hub.Len())
	}

	if !hub.Send(c.ID(), []byte("hello")) {
		t.Fatal("expected send to registered client to succeed")
	}
	if got := <-c.send; string(got) != "hello" {
		t.Fatalf("unexpected queued message: %q", got)
	}

	hub.Unregister(c.ID())
	if hub.Len() != 0 {
		t.Fatalf("expected 0 clients, got %d", hub.Len())
	}
	if hub.Send(c.ID(), []byte("late")) {
		t.Fatal("expected send to unregistered client to fail")
	}
}

func TestHubSendExcept(t *testing.T) {
	hub := NewHub()
	a := NewClient(nil, nil, hub)
	b := NewClient(nil, nil, hub)
	hub.Register(a)
	hub.Register(b)

	hub.SendExcept(a.ID(), []byte("update"))

	select {
	case <-a.send:
		t.Fatal("sender must not receive its own broadcast")
	default:
	}

	if got := <-b.send; string(got) != "update" {
		t.Fatalf("unexpected message for b: %q", got)
	}
}

func TestHubSendAfterCloseDoesNotPanic(t *testing.T) {
	hub := NewHub()
	c := NewClient(nil, nil, hub)
	hub.Register(c)

	c.closeSend()

	// A broadcast racing with connection teardown lands on a closed queue;
	// it must be dropped, not panic.
	if hub.Send(c.ID(), []byte("late")) {
		t.Fatal("expected send to closed client to fail")
	}
}

func TestHubSendFullQueueDrops(t *testing.T) {
	hub := NewHub()
	c := NewClient(nil, nil, hub)
	hub.Register(c)

	for i := 0; i < sendQueueSize; i++ {
		if !c.enqueue([]byte("fill")) {
			t.Fatalf("queue filled early at %d", i)
		}
	}

	if hub.Send(c.ID(), []byte("overflow")) {
		t.Fatal("expected overflow send to be dropped")
	}
}
