package pubsub

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Handler consumes the encoded data of one message.
type Handler func(ctx context.Context, data []byte) error

// Local delivers messages in process, synchronously, to the handlers
// subscribed to the topic. It is used when no GCP project is configured and
// keeps the same MessagePack encoding as the real client.
type Local struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

var _ PubSubClient = (*Local)(nil)

func NewLocal() *Local {
	return &Local{handlers: make(map[EventType][]Handler)}
}

// Subscribe registers h for every message sent to topic.
func (l *Local) Subscribe(topic EventType, h Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers[topic] = append(l.handlers[topic], h)
}

func (l *Local) SendMessage(ctx context.Context, topic EventType, data any) error {
	encoded, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}

	l.mu.RLock()
	handlers := append([]Handler(nil), l.handlers[topic]...)
	l.mu.RUnlock()

	if len(handlers) == 0 {
		log.Debug("No local subscribers for topic", "topic", topic)
		return nil
	}
	var errs []error
	for _, h := range handlers {
		if err := h(ctx, encoded); err != nil {
			log.Error("Local subscriber failed", "topic", topic, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (l *Local) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (l *Local) Close() error {
	return nil
}
