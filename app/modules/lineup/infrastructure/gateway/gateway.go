// Package lineupgateway bridges the realtime rooms and the event bus.
// Clients publish request envelopes into their event room; the ingress
// lifts them onto durable bus topics for the module handlers, and the
// broadcaster pushes handler results back into the rooms.
package lineupgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	lineupevents "github.com/hnaspl/woltk-calendar/app/modules/lineup/events"
	"github.com/hnaspl/woltk-calendar/app/realtime"
	"github.com/hnaspl/woltk-calendar/app/shared/attr"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Publisher is the outbound half of the event bus the ingress needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, msg *message.Message) error
}

// requestTopics maps realtime request names to their bus topics. Names
// not listed here are fan-out traffic and ignored by the ingress.
var requestTopics = map[string]string{
	lineupevents.MsgAssignRequest:       lineupevents.LineupAssignRequestedV1,
	lineupevents.MsgUnassignRequest:     lineupevents.LineupUnassignRequestedV1,
	lineupevents.MsgBenchReorderRequest: lineupevents.LineupBenchReorderRequestedV1,
	lineupevents.MsgReplaceRequest:      lineupevents.LineupReplaceRequestedV1,
	lineupevents.MsgConfirmRequest:      lineupevents.LineupConfirmRequestedV1,
}

// Ingress lifts room request envelopes onto the event bus.
type Ingress struct {
	transport realtime.Transport
	bus       Publisher
	logger    *slog.Logger
	unsub     realtime.Unsubscribe
}

func NewIngress(transport realtime.Transport, bus Publisher, logger *slog.Logger) *Ingress {
	return &Ingress{transport: transport, bus: bus, logger: logger}
}

// Start subscribes to every event room. Safe to call once.
func (i *Ingress) Start(ctx context.Context) error {
	unsub, err := i.transport.Subscribe("raids.event.>", func(data []byte) {
		i.handle(ctx, data)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe event rooms: %w", err)
	}
	i.unsub = unsub
	return nil
}

// Stop drops the room subscription.
func (i *Ingress) Stop() error {
	if i.unsub == nil {
		return nil
	}
	unsub := i.unsub
	i.unsub = nil
	return unsub()
}

func (i *Ingress) handle(ctx context.Context, data []byte) {
	var env realtime.Message
	if err := json.Unmarshal(data, &env); err != nil {
		i.logger.WarnContext(ctx, "Dropping unparseable room message", attr.Error(err))
		return
	}

	topic, ok := requestTopics[env.Name]
	if !ok {
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), []byte(env.Data))
	middleware.SetCorrelationID(watermill.NewUUID(), msg)
	if err := i.bus.Publish(ctx, topic, msg); err != nil {
		i.logger.ErrorContext(ctx, "Failed to lift room request onto bus",
			attr.String("name", env.Name),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}

// Broadcaster pushes payloads into realtime rooms as Message envelopes.
type Broadcaster struct {
	transport realtime.Transport
	logger    *slog.Logger
}

func NewBroadcaster(transport realtime.Transport, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{transport: transport, logger: logger}
}

// ToEvent fans a payload out to everyone joined to the event room.
func (b *Broadcaster) ToEvent(ctx context.Context, eventID sharedtypes.EventID, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", name, err)
	}
	env, err := json.Marshal(realtime.Message{Name: name, EventID: eventID, Data: data})
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", name, err)
	}
	if err := b.transport.Publish(lineupevents.EventSubject(eventID, name), env); err != nil {
		return fmt.Errorf("broadcast %s: %w", name, err)
	}
	return nil
}

// ToGuild fans a payload out to the guild room.
func (b *Broadcaster) ToGuild(ctx context.Context, guildID sharedtypes.GuildID, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", name, err)
	}
	env, err := json.Marshal(realtime.Message{Name: name, GuildID: guildID, Data: data})
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", name, err)
	}
	if err := b.transport.Publish(lineupevents.GuildSubject(guildID, name), env); err != nil {
		return fmt.Errorf("broadcast %s: %w", name, err)
	}
	return nil
}
