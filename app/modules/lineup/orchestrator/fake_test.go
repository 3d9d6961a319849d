package lineuporch

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	"github.com/hnaspl/woltk-calendar/app/realtime"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// FakeChannel implements Channel for tests. Handlers registered via On can
// be driven with Deliver; Send records every outgoing message and can be
// made to fail.
type FakeChannel struct {
	mu        sync.Mutex
	acquires  int
	releases  int
	joins     []sharedtypes.EventID
	leaves    []sharedtypes.EventID
	sent      []realtime.Message
	sendErr   error
	nextToken uint64
	handlers  map[string]map[uint64]realtime.Handler
	state     []realtime.StateHandler
}

func NewFakeChannel() *FakeChannel {
	return &FakeChannel{handlers: map[string]map[uint64]realtime.Handler{}}
}

func (f *FakeChannel) Acquire() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acquires++
}

func (f *FakeChannel) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releases++
}

func (f *FakeChannel) Connected() bool { return true }

func (f *FakeChannel) JoinEvent(_ context.Context, id sharedtypes.EventID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joins = append(f.joins, id)
	return nil
}

func (f *FakeChannel) LeaveEvent(_ context.Context, id sharedtypes.EventID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leaves = append(f.leaves, id)
	return nil
}

func (f *FakeChannel) On(name string, h realtime.Handler) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextToken++
	if f.handlers[name] == nil {
		f.handlers[name] = map[uint64]realtime.Handler{}
	}
	f.handlers[name][f.nextToken] = h
	return f.nextToken
}

func (f *FakeChannel) Off(name string, token uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.handlers[name], token)
}

func (f *FakeChannel) NotifyStatus(h realtime.StateHandler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = append(f.state, h)
}

func (f *FakeChannel) Send(_ context.Context, msg realtime.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

// Sent returns a copy of everything sent so far.
func (f *FakeChannel) Sent() []realtime.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]realtime.Message, len(f.sent))
	copy(out, f.sent)
	return out
}

// LastSent decodes the most recent outgoing payload into dst and returns
// the message, failing the test when nothing was sent.
func (f *FakeChannel) LastSent(t *testing.T, dst any) realtime.Message {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		t.Fatal("no message sent")
	}
	msg := f.sent[len(f.sent)-1]
	if dst != nil {
		if err := json.Unmarshal(msg.Data, dst); err != nil {
			t.Fatalf("decode sent payload: %v", err)
		}
	}
	return msg
}

// Deliver synchronously invokes every handler registered for the message
// name, mimicking the channel's fan-in dispatch.
func (f *FakeChannel) Deliver(ctx context.Context, name string, payload any) {
	data, _ := json.Marshal(payload)
	f.mu.Lock()
	hs := make([]realtime.Handler, 0, len(f.handlers[name]))
	for _, h := range f.handlers[name] {
		hs = append(hs, h)
	}
	f.mu.Unlock()
	for _, h := range hs {
		h(ctx, realtime.Message{Name: name, Data: data})
	}
}

// SetConnected drives every registered status handler.
func (f *FakeChannel) SetConnected(connected bool) {
	f.mu.Lock()
	hs := make([]realtime.StateHandler, len(f.state))
	copy(hs, f.state)
	f.mu.Unlock()
	for _, h := range hs {
		h(connected)
	}
}

// HandlerCount reports registered handlers for a name, for teardown checks.
func (f *FakeChannel) HandlerCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.handlers[name])
}

// FakeFetcher serves a programmable snapshot and counts fetches. With
// SetBlocking, every fetch parks until ReleaseFetch lets it through, so
// tests can interleave events with an in-flight fetch.
type FakeFetcher struct {
	mu       sync.Mutex
	snapshot lineupdomain.Snapshot
	err      error
	calls    int
	gate     chan struct{}
	fetched  chan struct{}
}

func NewFakeFetcher(snapshot lineupdomain.Snapshot) *FakeFetcher {
	return &FakeFetcher{snapshot: snapshot, fetched: make(chan struct{}, 16)}
}

func (f *FakeFetcher) FetchSnapshot(_ context.Context, _ sharedtypes.EventID) (lineupdomain.Snapshot, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	snap, err := f.snapshot, f.err
	f.mu.Unlock()
	f.fetched <- struct{}{}
	return snap, err
}

// SetBlocking makes every subsequent fetch wait for a ReleaseFetch call.
func (f *FakeFetcher) SetBlocking() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = make(chan struct{})
}

// ReleaseFetch unblocks exactly one parked fetch.
func (f *FakeFetcher) ReleaseFetch() {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	gate <- struct{}{}
}

func (f *FakeFetcher) SetSnapshot(snapshot lineupdomain.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshot = snapshot
}

func (f *FakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// WaitFetch blocks until one FetchSnapshot call completes.
func (f *FakeFetcher) WaitFetch(t *testing.T) {
	t.Helper()
	select {
	case <-f.fetched:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot fetch")
	}
}

// ExpectNoFetch fails the test when a further fetch happens within the
// window.
func (f *FakeFetcher) ExpectNoFetch(t *testing.T) {
	t.Helper()
	before := f.Calls()
	time.Sleep(50 * time.Millisecond)
	if got := f.Calls(); got != before {
		t.Fatalf("unexpected snapshot fetch: calls went from %d to %d", before, got)
	}
}
