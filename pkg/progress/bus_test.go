package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_FanOutToAllSubscribers(t *testing.T) {
	bus := NewBus()

	q1 := bus.Subscribe("p_1")
	q2 := bus.Subscribe("p_1")

	bus.Publish("p_1", Event{Status: "parsing"})
	bus.Publish("p_1", Event{Status: "embedding"})

	for _, q := range []<-chan Event{q1, q2} {
		assert.Equal(t, "parsing", (<-q).Status)
		assert.Equal(t, "embedding", (<-q).Status)
	}
}

func TestBus_PublishWithoutSubscribersIsNoOp(t *testing.T) {
	bus := NewBus()

	assert.NotPanics(t, func() {
		bus.Publish("p_none", Event{Status: "ready"})
	})
}

func TestBus_SubscribersAreIndependent(t *testing.T) {
	bus := NewBus()

	q1 := bus.Subscribe("p_1")
	q2 := bus.Subscribe("p_1")
	other := bus.Subscribe("p_2")

	bus.Unsubscribe("p_1", q2)
	bus.Publish("p_1", Event{Status: "ready"})

	assert.Equal(t, "ready", (<-q1).Status)
	assert.Empty(t, q2)
	assert.Empty(t, other)
}

func TestBus_UnsubscribeIsIdempotent(t *testing.T) {
	bus := NewBus()

	q := bus.Subscribe("p_1")
	bus.Unsubscribe("p_1", q)

	assert.NotPanics(t, func() {
		bus.Unsubscribe("p_1", q)
	})

	// Key slot was reclaimed; publishing afterwards must still be safe.
	bus.Publish("p_1", Event{Status: "ready"})
	assert.Empty(t, q)
}

func TestBus_PublisherNeverBlocksOnSlowSubscriber(t *testing.T) {
	bus := NewBus()

	q := bus.Subscribe("p_1")

	// Never drain q; overflow must evict oldest entries instead of stalling.
	for i := 0; i < subscriberBuffer*3; i++ {
		bus.Publish("p_1", Event{Status: "parsing"})
	}
	bus.Publish("p_1", Event{Status: "ready"})

	assert.Len(t, q, subscriberBuffer)
}
