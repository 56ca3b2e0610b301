package pubsub

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/padel-ratings/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func recorded() MatchRecorded {
	return MatchRecorded{
		Match: match.Record{
			ID:     "m1",
			Source: match.SourceManual,
			Date:   time.Date(2024, time.August, 3, 0, 0, 0, 0, time.UTC),
			Team1:  match.Team{A: "Ana", B: "Bea"},
			Team2:  match.Team{A: "Cris", B: "Dani"},
			Sets:   []match.SetScore{{Team1: 6, Team2: 4}, {Team1: 3, Team2: 6}, {Team1: 7, Team2: 6}},
			Winner: match.Team1,
		},
		Notify: true,
	}
}

func TestLocalDeliversToSubscribers(t *testing.T) {
	local := NewLocal()
	var got []MatchRecorded
	local.Subscribe(EventMatchRecorded, func(ctx context.Context, data []byte) error {
		var event MatchRecorded
		if err := local.ProcessMessage(data, &event); err != nil {
			return err
		}
		got = append(got, event)
		return nil
	})

	require.NoError(t, local.SendMessage(context.Background(), EventMatchRecorded, recorded()))
	require.Len(t, got, 1)
	assert.Equal(t, "m1", got[0].Match.ID)
	assert.True(t, got[0].Match.Date.Equal(recorded().Match.Date))
	assert.Equal(t, recorded().Match.Sets, got[0].Match.Sets)
	assert.True(t, got[0].Notify)
}

func TestLocalWithoutSubscribers(t *testing.T) {
	assert.NoError(t, NewLocal().SendMessage(context.Background(), EventMatchRecorded, recorded()))
}

func TestLocalReturnsSubscriberErrors(t *testing.T) {
	local := NewLocal()
	boom := errors.New("boom")
	calls := 0
	local.Subscribe(EventMatchRecorded, func(context.Context, []byte) error { calls++; return boom })
	local.Subscribe(EventMatchRecorded, func(context.Context, []byte) error { calls++; return nil })

	err := local.SendMessage(context.Background(), EventMatchRecorded, recorded())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls, "a failing subscriber does not stop the others")
}

func TestDecodePush(t *testing.T) {
	payload, err := msgpack.Marshal(recorded())
	require.NoError(t, err)
	body := `{"subscription":"projects/p/subscriptions/s","message":{"messageId":"1","data":"` +
		base64.StdEncoding.EncodeToString(payload) + `"}}`

	raw, err := DecodePush(strings.NewReader(body))
	require.NoError(t, err)

	var event MatchRecorded
	require.NoError(t, NewMock().ProcessMessage(raw, &event))
	assert.Equal(t, "Ana", event.Match.Team1.A)
}

func TestDecodePushRejectsBadEnvelopes(t *testing.T) {
	for name, body := range map[string]string{
		"not json":   `nope`,
		"no data":    `{"message":{}}`,
		"bad base64": `{"message":{"data":"***"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodePush(strings.NewReader(body))
			assert.ErrorIs(t, err, ErrInvalidEnvelope)
		})
	}
}
