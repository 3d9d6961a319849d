package realtime

import (
	"errors"
	"sync"

	nc "github.com/nats-io/nats.go"
)

// ErrChannelDisconnected is returned by Send while the transport is down.
// Callers fall back to the HTTP path and refetch a snapshot on reconnect.
var ErrChannelDisconnected = errors.New("realtime channel disconnected")

// natsTransport adapts the shared NATS connection to the Transport interface.
type natsTransport struct {
	conn *nc.Conn

	mu        sync.Mutex
	observers []func(connected bool)
}

// NewNATSTransport wraps an existing NATS connection. The transport does not
// own the connection; closing it is the caller's responsibility.
func NewNATSTransport(conn *nc.Conn) Transport {
	t := &natsTransport{conn: conn}

	conn.SetDisconnectErrHandler(func(*nc.Conn, error) {
		t.notify(false)
	})
	conn.SetReconnectHandler(func(*nc.Conn) {
		t.notify(true)
	})

	return t
}

func (t *natsTransport) Publish(subject string, data []byte) error {
	return t.conn.Publish(subject, data)
}

func (t *natsTransport) Subscribe(subject string, cb func(data []byte)) (Unsubscribe, error) {
	sub, err := t.conn.Subscribe(subject, func(m *nc.Msg) {
		cb(m.Data)
	})
	if err != nil {
		return nil, err
	}
	return sub.Unsubscribe, nil
}

func (t *natsTransport) IsConnected() bool {
	return t.conn.IsConnected()
}

func (t *natsTransport) NotifyStatus(cb func(connected bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, cb)
}

func (t *natsTransport) notify(connected bool) {
	t.mu.Lock()
	obs := make([]func(bool), len(t.observers))
	copy(obs, t.observers)
	t.mu.Unlock()
	for _, cb := range obs {
		cb(connected)
	}
}
