// Package loader decodes meshes off the update thread and attaches them to
// the scene graph from it.
//
// Decoding runs on its own goroutine. Results are queued and only touch the
// graph inside Poll, which the engine calls once per frame before updates,
// so the graph is never mutated concurrently with a traversal.
package loader

import (
	"context"
	"sync"

	"github.com/hubastard/grove3d/engine/logger"
	"github.com/hubastard/grove3d/engine/scene"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	// ErrCancelled is delivered when the task or its context was cancelled
	// before the result reached the graph.
	ErrCancelled = errors.New("loader: load cancelled")
	// ErrTargetDetached is delivered when the target node was disposed or
	// removed from its scene while the load was in flight.
	ErrTargetDetached = errors.New("loader: target detached from scene")
)

// DecodeFunc produces a mesh from path. It runs off the update thread and
// must not touch any attached node.
type DecodeFunc func(ctx context.Context, path string) (*scene.Mesh, error)

// DoneFunc receives the attached mesh, or nil and the reason nothing was
// attached. It runs inside Poll.
type DoneFunc func(mesh *scene.Mesh, err error)

type Loader struct {
	decode DecodeFunc
	log    logrus.FieldLogger

	wg      sync.WaitGroup
	mu      sync.Mutex
	ready   []completion
	pending map[*Task]struct{}
}

type completion struct {
	task *Task
	mesh *scene.Mesh
	err  error
}

// New creates a loader. A nil decode makes every load fail.
func New(decode DecodeFunc, log logrus.FieldLogger) *Loader {
	if decode == nil {
		decode = func(context.Context, string) (*scene.Mesh, error) {
			return nil, errors.New("no decoder configured")
		}
	}
	return &Loader{
		decode:  decode,
		log:     log,
		pending: make(map[*Task]struct{}),
	}
}

// LoadAsync starts decoding path. Once decoded, the mesh is added as a child
// of target during a later Poll, provided the target is still live.
func (l *Loader) LoadAsync(ctx context.Context, path string, target scene.Object, done DoneFunc) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{path: path, target: target, done: done, ctx: ctx, cancel: cancel}

	l.mu.Lock()
	l.pending[t] = struct{}{}
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		mesh, err := l.decode(ctx, path)
		l.mu.Lock()
		l.ready = append(l.ready, completion{task: t, mesh: mesh, err: err})
		l.mu.Unlock()
	}()
	return t
}

// Poll delivers finished loads and returns how many were delivered. It must
// be called from the update thread.
func (l *Loader) Poll() int {
	l.mu.Lock()
	ready := l.ready
	l.ready = nil
	for _, c := range ready {
		delete(l.pending, c.task)
	}
	l.mu.Unlock()

	for _, c := range ready {
		l.deliver(c)
	}
	return len(ready)
}

func (l *Loader) deliver(c completion) {
	t := c.task
	defer t.cancel()
	t.delivered = true

	err := c.err
	switch {
	case err != nil:
		if t.ctx.Err() != nil {
			err = ErrCancelled
		} else {
			err = errors.Wrapf(err, "load %s", t.path)
		}
	case c.mesh == nil:
		err = errors.Errorf("load %s: decoder returned no mesh", t.path)
	case t.ctx.Err() != nil:
		err = ErrCancelled
	case !live(t.target):
		err = ErrTargetDetached
	}

	if err != nil {
		if c.mesh != nil && c.mesh.Geometry() != nil {
			c.mesh.Geometry().Dispose()
		}
		l.logger().WithField("path", t.path).WithError(err).Warn("Load not attached")
		t.finish(nil, err)
		return
	}

	t.target.GetNode().Add(c.mesh)
	l.logger().WithField("path", t.path).WithField("node", c.mesh.ID()).Debug("Load attached")
	t.finish(c.mesh, nil)
}

func live(target scene.Object) bool {
	if target == nil {
		return false
	}
	n := target.GetNode()
	return !n.Disposed() && n.Attached()
}

// Pending reports loads that have not been delivered yet.
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Wait blocks until every started decode has finished. Results still need
// a Poll to be delivered.
func (l *Loader) Wait() { l.wg.Wait() }

// Close cancels every outstanding load, waits for the decoders and delivers
// their results, which all report ErrCancelled.
func (l *Loader) Close() {
	l.mu.Lock()
	for t := range l.pending {
		t.cancel()
	}
	l.mu.Unlock()
	l.wg.Wait()
	l.Poll()
}

func (l *Loader) logger() logrus.FieldLogger { return logger.Or(l.log) }

// Task is one in-flight load.
type Task struct {
	path   string
	target scene.Object
	done   DoneFunc

	ctx    context.Context
	cancel context.CancelFunc

	delivered bool
}

func (t *Task) Path() string { return t.path }

// Cancel abandons the load. The mesh is never attached and the done callback
// receives ErrCancelled on the next Poll.
func (t *Task) Cancel() { t.cancel() }

// Delivered reports whether the done callback has run. Only meaningful on
// the update thread.
func (t *Task) Delivered() bool { return t.delivered }

func (t *Task) finish(mesh *scene.Mesh, err error) {
	if t.done != nil {
		t.done(mesh, err)
	}
}
