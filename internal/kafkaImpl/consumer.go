package kafkaImpl

import (
	"SurveyPulse/internal/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// StartAnalysisConsumer is the worker loop executing detached analysis
// jobs. One message = one job; jobs never retry, a failure resolves the
// job record to failed and the loop moves on.
func StartAnalysisConsumer() {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{utils.KAFKA_CONNECTION},
		Topic: utils.ANALYSIS_REQUESTED_TOPIC,
		GroupID: utils.KAFKA_GROUP_ID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
		MaxWait: 1 * time.Second,
	});

	defer reader.Close();

	log.Println("Analysis Consumer started...");

	for {
		msg, err := reader.ReadMessage(context.Background());
		if err != nil {
			log.Printf("Error reading message: %v", err)
			continue
		}

		log.Printf("Received analysis message: topic=%s partition=%d offset=%d",
			msg.Topic, msg.Partition, msg.Offset);

		if err := processAnalysisMessage(msg); err != nil {
			// the job state is already failed at this point, nothing to re-throw
			log.Printf("Failed to process analysis message: %v", err)
		}
	}
}

func processAnalysisMessage(msg kafka.Message) error {
	var analysisEvent AnalysisRequestedEvent;
	if err := json.Unmarshal(msg.Value, &analysisEvent); err != nil {
		return fmt.Errorf("failed to unmarshal analysis event: %v", err);
	}

	log.Printf("Processing analysis: eventId=%s, analysisId=%s", analysisEvent.EventID, analysisEvent.AnalysisID);

	runAnalysis(analysisEvent);
	return nil
}
