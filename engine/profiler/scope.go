// Package profiler times named scopes of the frame. Timing is compiled in
// only with the "profile" build tag.
package profiler

import "time"

// Scope accumulates the timings of one named scope.
type Scope struct {
	Name  string
	Calls int
	Total time.Duration
	Max   time.Duration
}

func (s Scope) Average() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Calls)
}
