package kafkaImpl

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
	"github.com/segmentio/kafka-go"
)


var (
	writer *kafka.Writer;
)


func InitKafka(brokers []string) error {
	writer = &kafka.Writer{
		Addr: kafka.TCP(brokers...),
		Balancer: &kafka.Hash{}, // hash partition by key
		RequiredAcks: kafka.RequireOne,
		Async: false,
	}

	log.Printf("Kafka initialized with brokers: %v", brokers)
	return nil
}


func CloseKafka() {
	if writer != nil {
		writer.Close();
	}
}

func Produce(topic string, key string, value interface{}) error {
	if writer == nil {
		return fmt.Errorf("kafka writer not initialized");
	}

	//serialize the value to json
	jsonValue, err := json.Marshal(value);
	if err != nil {
		return fmt.Errorf("failed to marshal message: %v", err);
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key), // partition by analysisID so per-job events stay ordered
		Value: jsonValue,
		Time:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5 * time.Second);
	defer cancel();

	err = writer.WriteMessages(ctx, message);
	if err != nil {
		return fmt.Errorf("failed to write message to Kafka: %v", err)
	}

	log.Printf("Produced message to topic %s with key %s", topic, key)
	return nil
}
