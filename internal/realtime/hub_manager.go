package realtime

import (
	"log"
)

func (h *Hub) Run() {
	log.Println("WebSocket Hub started running...");

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastToAnalysis(message.AnalysisID, message.Data);
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock();
	defer h.mutex.Unlock();

	// create analysis hub on first watcher.
	analysisHub, exists := h.analyses[client.analysisID];
	if !exists {
		analysisHub = &AnalysisHub{
			clients: make(map[*Client]bool),
			broadcast: make(chan []byte, 256),
			register: make(chan *Client),
			unregister: make(chan *Client),
		}

		h.analyses[client.analysisID] = analysisHub;
		go analysisHub.run();
	}

	analysisHub.register <- client

	log.Printf("Client registered: analysis=%s, user=%s", client.analysisID, client.userID)
}


func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock();
	defer h.mutex.Unlock();

	if analysisHub, exists := h.analyses[client.analysisID]; exists {
		// the analysis hub owns closing client.send
		analysisHub.unregister <- client;

		if len(analysisHub.clients) == 0 {
			delete(h.analyses, client.analysisID);
			log.Printf("Analysis hub cleaned up: %s", client.analysisID);
		}
	}

	log.Printf("Client unregistered: analysis=%s", client.analysisID);
}

func (h *Hub) broadcastToAnalysis(analysisID string, message []byte) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if analysisHub, exists := h.analyses[analysisID]; exists {
		analysisHub.broadcast <- message
	}
}
