package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumeDecodesEvents(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{Persistent: true}, watermill.NopLogger{})
	defer pubSub.Close()

	require.NoError(t, pubSub.Publish("question-events", message.NewMessage(watermill.NewUUID(), []byte("not json"))))
	publisher := NewWatermillEventPublisher(pubSub, "question-events", nil)
	sent := NewQuestionEvent(EventCacheEntryDeleted, CacheEntryDeletedEvent{Key: "parsed:exam.pdf"})
	require.NoError(t, publisher.Publish(context.Background(), sent))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan *QuestionEvent, 1)
	done := make(chan error, 1)
	go func() {
		done <- Consume(ctx, pubSub, "question-events", func(_ context.Context, e *QuestionEvent) error {
			received <- e
			return nil
		}, nil)
	}()

	select {
	case e := <-received:
		assert.Equal(t, sent.ID, e.ID)
		assert.Equal(t, EventCacheEntryDeleted, e.Type)
		assert.Equal(t, "parsed:exam.pdf", e.Data.(map[string]any)["key"])
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Consume did not return after cancel")
	}
}

func TestConsumeRedeliversOnHandlerError(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{Persistent: true}, watermill.NopLogger{})
	defer pubSub.Close()

	publisher := NewWatermillEventPublisher(pubSub, "question-events", nil)
	require.NoError(t, publisher.Publish(context.Background(), NewQuestionEvent(EventQuestionsParsed, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	handled := make(chan struct{})
	go func() {
		_ = Consume(ctx, pubSub, "question-events", func(context.Context, *QuestionEvent) error {
			if calls.Add(1) == 1 {
				return errors.New("downstream unavailable")
			}
			close(handled)
			return nil
		}, nil)
	}()

	select {
	case <-handled:
		assert.Equal(t, int32(2), calls.Load())
	case <-time.After(2 * time.Second):
		t.Fatal("event was not redelivered")
	}
}
