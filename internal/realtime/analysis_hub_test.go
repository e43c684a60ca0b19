package realtime

import (
	"testing"
)

func TestSlowClientEvictionThenUnregister(t *testing.T) {
	ah := &AnalysisHub{
		clients: make(map[*Client]bool),
	}

	client := &Client{
		send:       make(chan []byte, 1),
		analysisID: "65f000000000000000000001",
	}
	ah.clients[client] = true

	// fill the send channel so the broadcast takes the slow-consumer path
	client.send <- []byte("first")

	ah.broadcastMessage([]byte("update"))

	if _, exists := ah.clients[client]; exists {
		t.Fatal("slow client should have been evicted by the broadcast")
	}

	// the connection unwinds later and the client is unregistered again;
	// its channel is already closed and must not be closed twice
	ah.removeClient(client)
}

func TestRemoveClientClosesSendOnce(t *testing.T) {
	ah := &AnalysisHub{
		clients: make(map[*Client]bool),
	}

	client := &Client{
		send:       make(chan []byte, 1),
		analysisID: "65f000000000000000000002",
	}
	ah.clients[client] = true

	ah.removeClient(client)

	if _, exists := ah.clients[client]; exists {
		t.Error("client should have been removed")
	}

	select {
	case _, open := <-client.send:
		if open {
			t.Error("send channel should be closed after removal")
		}
	default:
		t.Error("send channel should be closed, not empty and open")
	}

	// removing the same client again is a no-op
	ah.removeClient(client)
}

func TestBroadcastDeliversToHealthyClient(t *testing.T) {
	ah := &AnalysisHub{
		clients: make(map[*Client]bool),
	}

	client := &Client{
		send:       make(chan []byte, 4),
		analysisID: "65f000000000000000000003",
	}
	ah.clients[client] = true

	ah.broadcastMessage([]byte("progress"))

	select {
	case msg := <-client.send:
		if string(msg) != "progress" {
			t.Errorf("unexpected message: %s", msg)
		}
	default:
		t.Fatal("healthy client should have received the broadcast")
	}

	if _, exists := ah.clients[client]; !exists {
		t.Error("healthy client should still be registered")
	}
}
