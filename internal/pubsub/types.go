package pubsub

import (
	"errors"

	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/padel-ratings/internal/match"
)

type client struct {
	client *pubsub.Client
}

// EventType represents the type of event/message sent via pubsub. It doubles as the topic name.
type EventType string

const (
	EventMatchRecorded EventType = "match-recorded"
)

// MatchRecorded is published after a match is added to the history.
// Notify is false for backfilled matches that should not be announced.
type MatchRecorded struct {
	Match  match.Record `msgpack:"match"`
	Notify bool         `msgpack:"notify"`
}

// ErrInvalidEnvelope is returned for push requests that are not a Pub/Sub envelope.
var ErrInvalidEnvelope = errors.New("invalid pubsub push envelope")

// PushEnvelope is the JSON body of a Pub/Sub push delivery.
type PushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID         string            `json:"messageId"`
		Data       string            `json:"data"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
}
