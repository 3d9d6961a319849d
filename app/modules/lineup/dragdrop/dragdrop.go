// Package dragdrop implements the pointer-drag state machine that turns
// raw drag gestures into reorder/reassign intents for the lineup
// orchestrator. It is UI-toolkit agnostic: callers feed it item ids,
// zone keys, pointer coordinates, and target rectangles.
package dragdrop

import (
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// BenchKey is the source/target key for the bench zone. Slot zones use
// their slot key string, e.g. "tank-1".
const BenchKey = "bench"

// Intent is the single output of a completed drag: what moved, from
// where, to where.
type Intent struct {
	ItemID      sharedtypes.SignupID
	SourceKey   string
	SourceIndex int
	TargetKey   string
	TargetIndex int
}

// Point is a pointer position in the same coordinate space as Rect.
type Point struct {
	X, Y float64
}

// Rect is a drop zone's bounding box.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// State is the controller's drag state.
type State int

const (
	StateIdle State = iota
	StateDragging
)

// Controller tracks one drag gesture at a time. It is not safe for
// concurrent use; drive it from the UI event goroutine.
type Controller struct {
	state       State
	itemID      sharedtypes.SignupID
	sourceKey   string
	sourceIndex int
	hoverTarget string

	// onIntent receives the drop intent. Never nil after NewController.
	onIntent func(Intent)
	// onChange, when set, observes state transitions for rendering.
	onChange func()
}

// NewController builds a controller that emits drop intents to sink.
func NewController(sink func(Intent)) *Controller {
	if sink == nil {
		sink = func(Intent) {}
	}
	return &Controller{onIntent: sink}
}

// NotifyChange registers an observer invoked after every state change.
func (c *Controller) NotifyChange(fn func()) {
	c.onChange = fn
}

// State returns the current drag state.
func (c *Controller) State() State { return c.state }

// Dragging reports whether a drag is active.
func (c *Controller) Dragging() bool { return c.state == StateDragging }

// DraggedItem returns the active drag's item id, or 0 when idle.
func (c *Controller) DraggedItem() sharedtypes.SignupID { return c.itemID }

// SourceKey returns the active drag's source zone, or "" when idle.
func (c *Controller) SourceKey() string { return c.sourceKey }

// SourceIndex returns the index within the source zone (-1 for slot zones).
func (c *Controller) SourceIndex() int { return c.sourceIndex }

// HoverTarget returns the zone currently hovered, or "".
func (c *Controller) HoverTarget() string { return c.hoverTarget }

// Start begins a drag. The source is recorded before any observer runs:
// platform drag APIs cancel the gesture if observable state changes
// precede the drag being fully initialized, so the ordering here is a
// contract, not a style choice. Starting while a drag is already active
// is a programming error and is ignored.
func (c *Controller) Start(itemID sharedtypes.SignupID, sourceKey string, sourceIndex int) {
	if c.state == StateDragging {
		return
	}
	c.itemID = itemID
	c.sourceKey = sourceKey
	c.sourceIndex = sourceIndex
	c.state = StateDragging
	c.notify()
}

// Hover marks a drop zone as the current target. No-op when idle.
func (c *Controller) Hover(targetKey string) {
	if c.state != StateDragging {
		return
	}
	if c.hoverTarget == targetKey {
		return
	}
	c.hoverTarget = targetKey
	c.notify()
}

// Leave clears the hover target, but only when the pointer has actually
// left the target's bounding box. Browsers bubble leave events from child
// elements while the pointer is still inside the zone; comparing
// coordinates against the rectangle filters those out, which event
// source identity cannot.
func (c *Controller) Leave(targetKey string, pointer Point, target Rect) {
	if c.state != StateDragging || c.hoverTarget != targetKey {
		return
	}
	if target.Contains(pointer) {
		return
	}
	c.hoverTarget = ""
	c.notify()
}

// Drop completes the drag, emitting exactly one intent, and returns to
// idle. No-op when idle.
func (c *Controller) Drop(targetKey string, targetIndex int) {
	if c.state != StateDragging {
		return
	}
	intent := Intent{
		ItemID:      c.itemID,
		SourceKey:   c.sourceKey,
		SourceIndex: c.sourceIndex,
		TargetKey:   targetKey,
		TargetIndex: targetIndex,
	}
	c.reset()
	c.onIntent(intent)
}

// Cancel abandons the drag with no intent, e.g. a drop outside any valid
// target. No-op when idle.
func (c *Controller) Cancel() {
	if c.state != StateDragging {
		return
	}
	c.reset()
}

func (c *Controller) reset() {
	c.state = StateIdle
	c.itemID = 0
	c.sourceKey = ""
	c.sourceIndex = -1
	c.hoverTarget = ""
	c.notify()
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}
