// Package events carries scene graph structure notifications.
//
// The graph never talks to a global dispatcher: a Sink is injected on the
// scene root and every structural change below it is reported there.
package events

// Channel names used for scene events.
const (
	ChannelNodeAdded   = "node_added"
	ChannelNodeRemoved = "node_removed"
)

type Type int

const (
	NodeAdded Type = iota
	NodeRemoved
)

func (t Type) String() string {
	switch t {
	case NodeAdded:
		return "NodeAdded"
	case NodeRemoved:
		return "NodeRemoved"
	default:
		return "Unknown"
	}
}

// Channel returns the dispatch channel for the event type.
func (t Type) Channel() string {
	if t == NodeRemoved {
		return ChannelNodeRemoved
	}
	return ChannelNodeAdded
}

// Event reports a structural change. Node is the object that was attached
// or detached; Parent is the node it was attached to or detached from.
type Event struct {
	Type   Type
	Node   any
	Parent any
}

// Sink receives scene events.
type Sink interface {
	Dispatch(channel string, ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(channel string, ev Event)

func (f SinkFunc) Dispatch(channel string, ev Event) { f(channel, ev) }
