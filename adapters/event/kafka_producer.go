package event

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/hinderhq/hinder/internal/config"
)

const (
	TopicProfileEvents = "profile.events"

	EventTypeProcess = "profile.process"
)

// ProfileEventPayload is the message carried on profile.events. Messages are
// keyed by profile id so runs for the same profile land on one partition and
// never interleave.
type ProfileEventPayload struct {
	EventType string    `json:"event_type"`
	ProfileID uuid.UUID `json:"profile_id"`
}

type KafkaProducerClient struct {
	ProfileEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	profileWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProfileEvents,
		Balancer: &kafka.Hash{},
	}

	return &KafkaProducerClient{ProfileEventsWriter: profileWriter}, nil
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		c.ProfileEventsWriter.Close()
	}
}
