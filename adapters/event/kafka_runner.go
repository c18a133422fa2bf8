package event

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/pkg/apperror"
)

type kafkaRunner struct {
	producer *KafkaProducerClient
}

// NewKafkaRunner schedules pipeline runs by publishing to profile.events;
// a worker process consumes the topic and executes the run. The returned
// channel resolves when the broker accepts the message. Terminal pipeline
// state is observed through the profile status and the progress stream, not
// through the channel.
func NewKafkaRunner(producer *KafkaProducerClient) service.PipelineRunner {
	return &kafkaRunner{producer: producer}
}

func (r *kafkaRunner) Enqueue(ctx context.Context, profileID uuid.UUID) (<-chan error, error) {
	payload, err := json.Marshal(ProfileEventPayload{
		EventType: EventTypeProcess,
		ProfileID: profileID,
	})
	if err != nil {
		return nil, apperror.NewInternal("failed to marshal profile event", err)
	}

	err = r.producer.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(profileID.String()),
		Value: payload,
	})
	if err != nil {
		return nil, apperror.NewInternal("failed to publish profile event", err)
	}

	done := make(chan error, 1)
	done <- nil
	close(done)
	return done, nil
}
