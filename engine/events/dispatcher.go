package events

type Handler func(Event)

type subscription struct {
	id int
	fn Handler
}

// Dispatcher fans events out to subscribers of a channel, synchronously and
// in subscription order. It is meant to be used from the update thread only.
type Dispatcher struct {
	subs   map[string][]subscription
	nextID int
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{subs: map[string][]subscription{}}
}

// Subscribe registers fn on channel and returns a func that removes it.
func (d *Dispatcher) Subscribe(channel string, fn Handler) (unsubscribe func()) {
	d.nextID++
	id := d.nextID
	d.subs[channel] = append(d.subs[channel], subscription{id: id, fn: fn})
	return func() {
		list := d.subs[channel]
		for i, s := range list {
			if s.id == id {
				d.subs[channel] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

func (d *Dispatcher) Dispatch(channel string, ev Event) {
	// Copy so handlers may unsubscribe while we iterate.
	list := append([]subscription(nil), d.subs[channel]...)
	for _, s := range list {
		s.fn(ev)
	}
}

// Recorder is a Sink that keeps every event it receives.
type Recorder struct {
	Channels []string
	Events   []Event
}

func (r *Recorder) Dispatch(channel string, ev Event) {
	r.Channels = append(r.Channels, channel)
	r.Events = append(r.Events, ev)
}

func (r *Recorder) Reset() {
	r.Channels = r.Channels[:0]
	r.Events = r.Events[:0]
}
