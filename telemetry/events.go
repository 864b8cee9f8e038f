// Package telemetry provides animation stats windows, milestone bookmarks,
// timing and CSV output.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventDodge EventType = iota
	EventCelebrate
	EventResize
	EventSnapshot
)

func (t EventType) String() string {
	switch t {
	case EventDodge:
		return "dodge"
	case EventCelebrate:
		return "celebrate"
	case EventResize:
		return "resize"
	case EventSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// Event represents a single discrete occurrence between ticks.
type Event struct {
	Type EventType
	Tick int32

	// Optional fields depending on event type
	W, H int // viewport size for resize events
}

// NewDodgeEvent creates an event for the No button running away.
func NewDodgeEvent(tick int32) Event {
	return Event{Type: EventDodge, Tick: tick}
}

// NewCelebrateEvent creates an event for the proposal being accepted.
func NewCelebrateEvent(tick int32) Event {
	return Event{Type: EventCelebrate, Tick: tick}
}

// NewResizeEvent creates an event for a drawing surface size change.
func NewResizeEvent(tick int32, w, h int) Event {
	return Event{Type: EventResize, Tick: tick, W: w, H: h}
}

// NewSnapshotEvent creates an event for a frame written to disk.
func NewSnapshotEvent(tick int32) Event {
	return Event{Type: EventSnapshot, Tick: tick}
}
