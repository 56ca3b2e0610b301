package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Google Cloud Pub/Sub in projectID.
func New(ctx context.Context, projectID string) (PubSubClient, error) {
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	return &client{client: pubSubC}, nil
}

func (c *client) SendMessage(ctx context.Context, topic EventType, data any) error {
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	message := &pubsub.Message{
		Data:       msgpackData,
		Attributes: map[string]string{"event": string(topic)},
	}
	result := c.client.Topic(string(topic)).Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return err
	}
	log.Info("Published message", "topic", topic, "serverID", serverID)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (c *client) Close() error {
	return c.client.Close()
}

// decode unmarshals MessagePack data into the provided pointer.
func decode(data []byte, returnValue any) error {
	if err := msgpack.Unmarshal(data, returnValue); err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}

// DecodePush reads a push delivery body and returns the raw message data.
func DecodePush(body io.Reader) ([]byte, error) {
	var envelope PushEnvelope
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if envelope.Message.Data == "" {
		return nil, fmt.Errorf("%w: empty message data", ErrInvalidEnvelope)
	}
	raw, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	log.Debug("Decoded push message", "subscription", envelope.Subscription, "messageId", envelope.Message.ID)
	return raw, nil
}
