package kafkaImpl

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
	"github.com/segmentio/kafka-go"

	"SurveyPulse/internal/ai"
	"SurveyPulse/internal/realtime"
	"SurveyPulse/internal/utils"
)

// StartProgressBroadcaster consumes analysis.progress events and pushes
// them to websocket watchers of the job.
func StartProgressBroadcaster(hub *realtime.Hub) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{utils.KAFKA_CONNECTION},
		Topic: utils.ANALYSIS_PROGRESS_TOPIC,
		GroupID: utils.KAFKA_PROGRESS_BROADCASTER_GROUP, // different consumer group than the worker
		MinBytes: 10e3,
		MaxBytes: 10e6,
		MaxWait: 1 * time.Second,
	})

	defer reader.Close();

	log.Println("Progress broadcaster started and listening for analysis.progress events...")

	for {
		msg, err := reader.ReadMessage(context.Background());
		if err != nil {
			log.Printf("Error reading progress message from Kafka: %v", err)
			continue
		}

		if err := processProgressMessage(hub, msg); err != nil {
			log.Printf("Failed to process progress event: %v", err)
			// Continue processing other messages
		}
	}
}

func processProgressMessage(hub *realtime.Hub, msg kafka.Message) error {
	var progressEvent AnalysisProgressEvent
	if err := json.Unmarshal(msg.Value, &progressEvent); err != nil {
		return fmt.Errorf("failed to unmarshal progress event: %v", err)
	}

	return broadcastProgressUpdate(hub, progressEvent)
}

func broadcastProgressUpdate(hub *realtime.Hub, progressEvent AnalysisProgressEvent) error {
	wsMessage := map[string]interface{}{
		"type": "analysis_progress",
		"analysisId": progressEvent.AnalysisID,
		"status": progressEvent.Status,
		"progress": progressEvent.Progress,
		"timestamp": progressEvent.Timestamp,
		"eventId": progressEvent.EventID,
	}

	messageJSON, err := json.Marshal(wsMessage);
	if err != nil {
		return fmt.Errorf("failed to marshal WebSocket message: %v", err);
	}

	hub.BroadcastToAnalysis(progressEvent.AnalysisID, messageJSON);

	log.Printf("Progress broadcasted via WebSocket: analysis=%s, progress=%d",
		progressEvent.AnalysisID, progressEvent.Progress)

	return nil
}

// StartAllConsumers boots the analysis worker and the progress
// broadcaster, each on its own goroutine.
func StartAllConsumers(hub *realtime.Hub, analyzerClient *ai.Client) {
	InitAnalyzer(analyzerClient);

	go func() {
		log.Println("Starting analysis worker consumer...")
		StartAnalysisConsumer()
	}()

	go func() {
		log.Println("Starting progress broadcaster consumer...")
		StartProgressBroadcaster(hub)
	}()
}
