package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"SurveyPulse/internal/repository"
)

func (h *Hub) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	analysisID := r.URL.Query().Get("analysisId")
	userID := r.URL.Query().Get("userId")

	// Validate required parameters
	if analysisID == "" {
		http.Error(w, "analysisId is required", http.StatusBadRequest)
		return
	}
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil);
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return;
	}

	client := &Client {
		hub: h,
		conn : conn,
		send: make(chan []byte, 256),
		analysisID: analysisID,
		userID: userID,
	}

	// register client
	h.register <- client;
	log.Printf("WebSocket connection established: analysis=%s, userID=%s", analysisID, userID)

	// Start goroutines for handling connection
	go client.writePump()
	go client.readPump()

}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close();
		log.Printf("Read pump stopped: analysis=%s", c.analysisID)
	}()

	// configure connection.
	c.conn.SetReadLimit(512);
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second));
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil;
	})


	for {
		_, message , err := c.conn.ReadMessage();
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		c.handleMessage(message);
	}
}


func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second) // ping interval.
	defer func(){
		ticker.Stop();
		c.conn.Close();
		log.Printf("Write pump stopped: analysis=%s", c.analysisID);
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second));


			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{});
				return;
			}


			// write message to websocket.
			writer, err := c.conn.NextWriter(websocket.TextMessage);
			if err != nil {
				return;
			}

			writer.Write(message);


			// close the writer.
			if err := writer.Close(); err != nil {
				return;
			}

		case <-ticker.C :
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second));
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}


func (c *Client) handleMessage(message []byte) {
	var msg map[string]interface{};
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("Failed to unmarshal WebSocket message: %v", err)
		return
	}

	messageType, ok := msg["type"].(string);
	if !ok {
		log.Printf("Message missing type field")
		return
	}


	switch messageType {
	case "ping":
		response := map[string]string{"type":"pong"}
		responseJSON,_ := json.Marshal(response);

		c.send <- responseJSON
		log.Printf("Responded to ping: analysis=%s", c.analysisID)

	case "subscribe":
		response := map[string]interface{}{
			"type":"subscribed",
			"analysisId":c.analysisID,
			"timestamp":time.Now(),
		}

		responseJSON, _ := json.Marshal(response);
		c.send <- responseJSON;
		log.Printf("Client subscribed: analysis=%s, userID=%s", c.analysisID, c.userID)


	case "get_status":
		c.handleGetStatus();

	default:
		log.Printf("Unknown message type: %s", messageType)
		// Send error response
		errorMsg := map[string]interface{}{
			"type": "error",
			"message": "Unknown message type",
		}
		errorJSON, _ := json.Marshal(errorMsg)
		c.send <- errorJSON
	}
}


// handleGetStatus sends the current job snapshot to the client.
func (c *Client) handleGetStatus() {
	analysisHexID, err := primitive.ObjectIDFromHex(c.analysisID);
	if err != nil {
		errorMsg := map[string]interface{}{
			"type": "error",
			"message": "Invalid analysisId format",
		}
		errorJSON, _ := json.Marshal(errorMsg)
		c.send <- errorJSON
		return
	}

	analysis, err := repository.FindAnalysisByID(analysisHexID);
	if err != nil {
		errorMsg := map[string]interface{}{
			"type": "error",
			"message": "Analysis not found",
			"analysisId": c.analysisID,
		}
		errorJSON, _ := json.Marshal(errorMsg)
		c.send <- errorJSON
		return
	}

	response := map[string]interface{}{
		"type": "analysis_status",
		"analysisId": c.analysisID,
		"status": analysis.Status,
		"progress": analysis.Progress,
	}
	responseJSON, _ := json.Marshal(response)
	c.send <- responseJSON
}

// BroadcastToAnalysis sends a message to all clients watching an analysis job.
func (h *Hub) BroadcastToAnalysis(analysisID string, message []byte) {
	broadcastMsg := &BroadcastMessage{
		AnalysisID: analysisID,
		Data:      message,
	}
	h.broadcast <- broadcastMsg
}

// GetAnalysisStats returns statistics about a job's connections
func (h *Hub) GetAnalysisStats(analysisID string) map[string]interface{} {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	analysisHub, exists := h.analyses[analysisID]
	if !exists {
		return map[string]interface{}{
			"analysisId": analysisID,
			"activeConnections": 0,
			"exists": false,
		}
	}

	analysisHub.mutex.RLock()
	defer analysisHub.mutex.RUnlock()

	return map[string]interface{}{
		"analysisId": analysisID,
		"activeConnections": len(analysisHub.clients),
		"exists": true,
	}
}
