package realtime

import (
    "sync"
	"net/http"
    "github.com/gorilla/websocket"
)


var (
	upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true;
		},
	}
)

// Hub fans analysis progress updates out to the clients watching each job.
type Hub struct {
	analyses map[string]*AnalysisHub;
	register chan *Client;
	unregister chan *Client;
	broadcast chan *BroadcastMessage;
	mutex sync.RWMutex;
}

// AnalysisHub groups the clients watching one analysis job.
type AnalysisHub struct {
	clients map[*Client]bool;
	broadcast chan []byte;
	register chan *Client;
	unregister chan *Client;
	mutex sync.RWMutex;
}

type Client struct {
	hub *Hub;
	conn *websocket.Conn;
	send chan []byte;
	analysisID string;
	userID string;
}


type BroadcastMessage struct {
	AnalysisID string;
	Data []byte;
}

func NewHub() *Hub {
	return &Hub{
		analyses: make(map[string]*AnalysisHub),
		register: make(chan *Client),
		unregister: make(chan *Client),
		broadcast: make(chan *BroadcastMessage),
	}
}
