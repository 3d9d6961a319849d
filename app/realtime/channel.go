// Package realtime implements the shared live-update channel raid views
// subscribe to. One channel exists per process; views acquire and release
// it, and a reference count keeps the room subscriptions alive while any
// view still needs them.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hnaspl/woltk-calendar/app/shared/attr"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Message is the envelope carried on room subjects. Name is deliberately
// free-form: deployments define their own application message names, and
// the channel never interprets them.
type Message struct {
	Name    string              `json:"name"`
	EventID sharedtypes.EventID `json:"event_id,omitempty"`
	GuildID sharedtypes.GuildID `json:"guild_id,omitempty"`
	Data    json.RawMessage     `json:"data,omitempty"`
}

// Handler receives a decoded room message.
type Handler func(ctx context.Context, msg Message)

// StateHandler observes connected/disconnected transitions.
type StateHandler func(connected bool)

// Unsubscribe tears down a transport subscription.
type Unsubscribe func() error

// Transport abstracts the wire. The production implementation rides the
// process-wide NATS connection; tests use an in-memory loopback.
type Transport interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, cb func(data []byte)) (Unsubscribe, error)
	IsConnected() bool
	NotifyStatus(cb func(connected bool))
}

// Outbound presence names, matching the wire contract.
const (
	nameJoinEvent  = "join_event"
	nameLeaveEvent = "leave_event"
	nameJoinGuild  = "join_guild"
	nameLeaveGuild = "leave_guild"
)

const (
	presenceSubject    = "raids.presence"
	eventSubjectPrefix = "raids.event"
	guildSubjectPrefix = "raids.guild"
)

type room struct {
	subject string
	unsub   Unsubscribe
}

type listener struct {
	id      uint64
	handler Handler
}

// Channel is the shared realtime connection surface.
type Channel struct {
	transport Transport
	logger    *slog.Logger

	mu       sync.Mutex
	refs     int
	nextID   uint64
	rooms    map[string]*room
	handlers map[string][]listener
	state    []StateHandler

	// dispatchMu serializes handler invocation so delivery matches
	// arrival order even when rooms are backed by separate subscriptions.
	dispatchMu sync.Mutex
}

// NewChannel builds a channel on the given transport. The channel starts
// with a zero reference count; callers must Acquire before joining rooms.
func NewChannel(transport Transport, logger *slog.Logger) *Channel {
	c := &Channel{
		transport: transport,
		logger:    logger,
		rooms:     make(map[string]*room),
		handlers:  make(map[string][]listener),
	}
	transport.NotifyStatus(c.onStatusChange)
	return c
}

// Acquire increments the reference count. Every view that uses the channel
// holds one reference for its lifetime.
func (c *Channel) Acquire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refs++
}

// Release decrements the reference count. When the last reference is
// dropped all room subscriptions are torn down; the underlying transport
// connection stays open for the process owner to close.
func (c *Channel) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.refs > 0 {
		c.refs--
	}
	if c.refs == 0 {
		for key, r := range c.rooms {
			if err := r.unsub(); err != nil {
				c.logger.Warn("Failed to unsubscribe room",
					slog.String("room", key),
					slog.Any("error", err),
				)
			}
			delete(c.rooms, key)
		}
	}
}

// Connected reports the current transport state.
func (c *Channel) Connected() bool {
	return c.transport.IsConnected()
}

// NotifyStatus registers a connection-state observer. Observers run on the
// transport's status goroutine and must not block.
func (c *Channel) NotifyStatus(h StateHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = append(c.state, h)
}

// JoinEvent subscribes to the room for one raid event. Idempotent.
func (c *Channel) JoinEvent(ctx context.Context, eventID sharedtypes.EventID) error {
	subject := fmt.Sprintf("%s.%d.>", eventSubjectPrefix, eventID)
	if err := c.join(ctx, eventRoomKey(eventID), subject); err != nil {
		return err
	}
	c.sendPresence(ctx, Message{Name: nameJoinEvent, EventID: eventID})
	return nil
}

// LeaveEvent drops the room subscription for one raid event. Idempotent.
func (c *Channel) LeaveEvent(ctx context.Context, eventID sharedtypes.EventID) error {
	c.sendPresence(ctx, Message{Name: nameLeaveEvent, EventID: eventID})
	return c.leave(eventRoomKey(eventID))
}

// JoinGuild subscribes to guild-level updates (calendar, roster). Idempotent.
func (c *Channel) JoinGuild(ctx context.Context, guildID sharedtypes.GuildID) error {
	subject := fmt.Sprintf("%s.%d.>", guildSubjectPrefix, guildID)
	if err := c.join(ctx, guildRoomKey(guildID), subject); err != nil {
		return err
	}
	c.sendPresence(ctx, Message{Name: nameJoinGuild, GuildID: guildID})
	return nil
}

// LeaveGuild drops the guild room subscription. Idempotent.
func (c *Channel) LeaveGuild(ctx context.Context, guildID sharedtypes.GuildID) error {
	c.sendPresence(ctx, Message{Name: nameLeaveGuild, GuildID: guildID})
	return c.leave(guildRoomKey(guildID))
}

// On registers a handler for messages with the given name. Handlers for
// the same name run in registration order. The returned token removes
// exactly this registration when passed to Off.
func (c *Channel) On(name string, h Handler) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.handlers[name] = append(c.handlers[name], listener{id: c.nextID, handler: h})
	return c.nextID
}

// Off removes a handler registration by token. Unknown tokens are ignored.
func (c *Channel) Off(name string, token uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ls := c.handlers[name]
	for i, l := range ls {
		if l.id == token {
			c.handlers[name] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Send publishes a local mutation to the message's room, fire and forget.
// Returns ErrChannelDisconnected while the transport is down.
func (c *Channel) Send(ctx context.Context, msg Message) error {
	if !c.transport.IsConnected() {
		return ErrChannelDisconnected
	}
	subject, err := roomSubject(msg)
	if err != nil {
		return err
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal realtime message: %w", err)
	}
	if err := c.transport.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", msg.Name, err)
	}
	return nil
}

func (c *Channel) join(ctx context.Context, key, subject string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.rooms[key]; ok {
		return nil
	}
	unsub, err := c.transport.Subscribe(subject, c.dispatch)
	if err != nil {
		return fmt.Errorf("failed to join room %s: %w", key, err)
	}
	c.rooms[key] = &room{subject: subject, unsub: unsub}
	c.logger.DebugContext(ctx, "Joined room", attr.String("room", key))
	return nil
}

func (c *Channel) leave(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.rooms[key]
	if !ok {
		return nil
	}
	delete(c.rooms, key)
	if err := r.unsub(); err != nil {
		return fmt.Errorf("failed to leave room %s: %w", key, err)
	}
	return nil
}

// dispatch decodes an inbound payload and runs registered handlers.
// dispatchMu keeps delivery order equal to arrival order across rooms.
func (c *Channel) dispatch(data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Warn("Dropping undecodable realtime message", slog.Any("error", err))
		return
	}

	c.mu.Lock()
	ls := make([]listener, len(c.handlers[msg.Name]))
	copy(ls, c.handlers[msg.Name])
	c.mu.Unlock()

	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()
	ctx := context.Background()
	for _, l := range ls {
		l.handler(ctx, msg)
	}
}

func (c *Channel) onStatusChange(connected bool) {
	c.mu.Lock()
	hs := make([]StateHandler, len(c.state))
	copy(hs, c.state)
	c.mu.Unlock()
	for _, h := range hs {
		h(connected)
	}
}

func (c *Channel) sendPresence(ctx context.Context, msg Message) {
	if !c.transport.IsConnected() {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := c.transport.Publish(presenceSubject, data); err != nil {
		c.logger.DebugContext(ctx, "Presence publish failed",
			attr.String("name", msg.Name),
			attr.Error(err),
		)
	}
}

func eventRoomKey(id sharedtypes.EventID) string { return fmt.Sprintf("event:%d", id) }
func guildRoomKey(id sharedtypes.GuildID) string { return fmt.Sprintf("guild:%d", id) }

func roomSubject(msg Message) (string, error) {
	switch {
	case msg.EventID != 0:
		return fmt.Sprintf("%s.%d.%s", eventSubjectPrefix, msg.EventID, msg.Name), nil
	case msg.GuildID != 0:
		return fmt.Sprintf("%s.%d.%s", guildSubjectPrefix, msg.GuildID, msg.Name), nil
	default:
		return "", fmt.Errorf("realtime message %q has no room id", msg.Name)
	}
}
