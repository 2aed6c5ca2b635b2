//go:build profile

package profiler

import (
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hubastard/grove3d/engine/logger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const Enabled = true

var (
	mu     sync.Mutex
	scopes = map[string]*Scope{}

	events ring
	frames frameTable
)

// Init enables the event trace with room for capacity open/close events.
// Without it only the aggregated scope stats are kept.
//
//	profiler.Init(1 << 20)
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	events.init(capacity)
}

// Start begins a named scope and returns the func that ends it.
//
//	defer profiler.Start("Draw")()
func Start(name string) func() {
	begin := time.Now()
	trace := events.ready.Load()
	var frame int
	if trace {
		frame = frames.intern(name)
		events.push(event{AtNS: begin.UnixNano(), Frame: frame, Open: true})
	}
	return func() {
		end := time.Now()
		d := end.Sub(begin)
		if trace {
			events.push(event{AtNS: max(end.UnixNano(), begin.UnixNano()), Frame: frame})
		}
		mu.Lock()
		s, ok := scopes[name]
		if !ok {
			s = &Scope{Name: name}
			scopes[name] = s
		}
		s.Calls++
		s.Total += d
		s.Max = max(s.Max, d)
		mu.Unlock()
	}
}

// Stats returns a copy of every scope, sorted by name.
func Stats() []Scope {
	mu.Lock()
	out := make([]Scope, 0, len(scopes))
	for _, s := range scopes {
		out = append(out, *s)
	}
	mu.Unlock()
	slices.SortFunc(out, func(a, b Scope) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func Reset() {
	mu.Lock()
	clear(scopes)
	mu.Unlock()
}

// LogReport writes one info record per scope to log, or the engine logger.
func LogReport(log logrus.FieldLogger) {
	log = logger.Or(log)
	for _, s := range Stats() {
		log.WithFields(logrus.Fields{
			"scope": s.Name,
			"calls": s.Calls,
			"avg":   s.Average(),
			"max":   s.Max,
		}).Info("Profile")
	}
}

// WriteProfile saves the event trace to path in speedscope format.
func WriteProfile(path string) error {
	if !events.ready.Load() {
		return errors.Wrap(ErrNoEvents, "profiler not initialized")
	}
	return saveSpeedscope(path, events.snapshot(), frames.snapshot())
}

// OpenProfilerGraph writes the trace to a temporary file and opens it with
// the speedscope viewer when one is installed.
func OpenProfilerGraph() (string, error) {
	path := filepath.Join(os.TempDir(), "grove3d.profile.speedscope.json")
	if err := WriteProfile(path); err != nil {
		return "", err
	}
	if err := exec.Command("speedscope", path).Start(); err != nil {
		logger.Get().WithError(err).WithField("path", path).Warn("Could not launch speedscope")
	}
	return path, nil
}
