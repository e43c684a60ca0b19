package realtime

import (
	"log"
)

func (ah *AnalysisHub) run() {
	for {
		select {
		case client := <-ah.register:
			ah.mutex.Lock();
			ah.clients[client] = true;
			ah.mutex.Unlock();

		case client := <-ah.unregister:
			ah.removeClient(client);

		case message := <-ah.broadcast:
			ah.broadcastMessage(message);
		}
	}
}

// removeClient drops a client and closes its send channel. Closing is
// owned here: a client already evicted by the slow-consumer path in
// broadcastMessage is absent from the map and must not be closed twice.
func (ah *AnalysisHub) removeClient(client *Client) {
	ah.mutex.Lock();
	defer ah.mutex.Unlock();

	if _, exists := ah.clients[client]; exists {
		delete(ah.clients, client);
		close(client.send);
	}
}

func (ah *AnalysisHub) broadcastMessage(message []byte) {
	ah.mutex.Lock();
	defer ah.mutex.Unlock();

	for client := range ah.clients {
		select {
		case client.send <- message:
			// message successfully sent to client channel.

		default:
			close(client.send);
			delete(ah.clients, client);
			log.Printf("Client disconnected (slow) : %s", client.analysisID);
		}
	}
}
