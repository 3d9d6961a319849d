package lineupgateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lineupevents "github.com/hnaspl/woltk-calendar/app/modules/lineup/events"
	"github.com/hnaspl/woltk-calendar/app/realtime"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// FakeTransport records publishes and lets tests inject room traffic.
type FakeTransport struct {
	published []publishCall
	handlers  map[string]func(data []byte)
	unsubs    int
}

type publishCall struct {
	Subject string
	Data    []byte
}

func NewFakeTransport() *FakeTransport {
	return &FakeTransport{handlers: make(map[string]func(data []byte))}
}

func (f *FakeTransport) Publish(subject string, data []byte) error {
	f.published = append(f.published, publishCall{Subject: subject, Data: data})
	return nil
}

func (f *FakeTransport) Subscribe(subject string, cb func(data []byte)) (realtime.Unsubscribe, error) {
	f.handlers[subject] = cb
	return func() error {
		delete(f.handlers, subject)
		f.unsubs++
		return nil
	}, nil
}

func (f *FakeTransport) IsConnected() bool { return true }

func (f *FakeTransport) NotifyStatus(cb func(connected bool)) {}

// Inject delivers raw bytes to the wildcard room subscription.
func (f *FakeTransport) Inject(t *testing.T, data []byte) {
	t.Helper()
	cb, ok := f.handlers["raids.event.>"]
	require.True(t, ok, "ingress is not subscribed")
	cb(data)
}

var _ realtime.Transport = (*FakeTransport)(nil)

// FakeBus records messages the ingress lifts onto the bus.
type FakeBus struct {
	published []busCall
	err       error
}

type busCall struct {
	Topic string
	Msg   *message.Message
}

func (f *FakeBus) Publish(ctx context.Context, topic string, msg *message.Message) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, busCall{Topic: topic, Msg: msg})
	return nil
}

func envelope(t *testing.T, name string, payload any) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	env, err := json.Marshal(realtime.Message{Name: name, EventID: 100, Data: data})
	require.NoError(t, err)
	return env
}

func newTestIngress(t *testing.T) (*Ingress, *FakeTransport, *FakeBus) {
	t.Helper()
	transport := NewFakeTransport()
	bus := &FakeBus{}
	ingress := NewIngress(transport, bus, slog.New(slog.DiscardHandler))
	require.NoError(t, ingress.Start(context.Background()))
	return ingress, transport, bus
}

func TestIngressLiftsRequestToBusTopic(t *testing.T) {
	_, transport, bus := newTestIngress(t)

	request := lineupevents.AssignRequestedPayloadV1{
		RequestID:   "req-1",
		EventID:     100,
		GuildID:     7,
		RequestedBy: 42,
		SignupID:    3,
		Slot:        "tank-0",
	}
	transport.Inject(t, envelope(t, lineupevents.MsgAssignRequest, request))

	require.Len(t, bus.published, 1)
	assert.Equal(t, lineupevents.LineupAssignRequestedV1, bus.published[0].Topic)
	assert.NotEmpty(t, middleware.MessageCorrelationID(bus.published[0].Msg))

	var lifted lineupevents.AssignRequestedPayloadV1
	require.NoError(t, json.Unmarshal(bus.published[0].Msg.Payload, &lifted))
	assert.Equal(t, request, lifted)
}

func TestIngressIgnoresFanOutNames(t *testing.T) {
	_, transport, bus := newTestIngress(t)

	transport.Inject(t, envelope(t, lineupevents.MsgLineupChanged, lineupevents.ChangedPayloadV1{EventID: 100}))
	transport.Inject(t, envelope(t, lineupevents.MsgStatusChanged, nil))

	assert.Empty(t, bus.published, "fan-out traffic must not loop back onto the bus")
}

func TestIngressDropsUnparseableEnvelope(t *testing.T) {
	_, transport, bus := newTestIngress(t)

	transport.Inject(t, []byte("not json"))

	assert.Empty(t, bus.published)
}

func TestIngressStopUnsubscribes(t *testing.T) {
	ingress, transport, _ := newTestIngress(t)

	require.NoError(t, ingress.Stop())
	assert.Equal(t, 1, transport.unsubs)
	assert.NoError(t, ingress.Stop(), "second stop is a no-op")
	assert.Equal(t, 1, transport.unsubs)
}

func TestBroadcasterToEventWrapsEnvelope(t *testing.T) {
	transport := NewFakeTransport()
	b := NewBroadcaster(transport, slog.New(slog.DiscardHandler))

	payload := &lineupevents.ChangedPayloadV1{EventID: 100, GuildID: 7, Version: "v2"}
	require.NoError(t, b.ToEvent(context.Background(), 100, lineupevents.MsgLineupChanged, payload))

	require.Len(t, transport.published, 1)
	assert.Equal(t, "raids.event.100.lineup_changed", transport.published[0].Subject)

	var env realtime.Message
	require.NoError(t, json.Unmarshal(transport.published[0].Data, &env))
	assert.Equal(t, lineupevents.MsgLineupChanged, env.Name)
	assert.Equal(t, sharedtypes.EventID(100), env.EventID)

	var decoded lineupevents.ChangedPayloadV1
	require.NoError(t, json.Unmarshal(env.Data, &decoded))
	assert.Equal(t, "v2", decoded.Version)
}

func TestBroadcasterToGuildUsesGuildSubject(t *testing.T) {
	transport := NewFakeTransport()
	b := NewBroadcaster(transport, slog.New(slog.DiscardHandler))

	require.NoError(t, b.ToGuild(context.Background(), 7, lineupevents.MsgStatusChanged, map[string]any{"to": "locked"}))

	require.Len(t, transport.published, 1)
	assert.Equal(t, "raids.guild.7.event_status_changed", transport.published[0].Subject)
}
