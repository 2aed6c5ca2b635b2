// Package buffers tracks the GPU buffers backing each geometry.
package buffers

import (
	"runtime"
	"sync"
	"weak"

	"github.com/google/uuid"
	"github.com/hubastard/grove3d/engine/geometry"
	"github.com/hubastard/grove3d/engine/logger"
	"github.com/sirupsen/logrus"
)

// State is the device-side binding of one geometry.
type State struct {
	VAO uint32
	VBO uint32
	EBO uint32
	// Count is the number of indices, or vertices when EBO is zero.
	Count int32
}

// Indexed reports whether draws should use the element buffer.
func (s State) Indexed() bool { return s.EBO != 0 }

// Device creates and destroys buffers. Calls are made on the render thread.
type Device interface {
	CreateBuffers(geo *geometry.Geometry) State
	BindVertexArray(vao uint32)
	DeleteBuffers(s State)
}

type entry struct {
	state State
	geo   weak.Pointer[geometry.Geometry]
}

// Manager creates buffers lazily and releases them when their geometry is
// disposed. Geometries are held weakly; one collected without Dispose is
// released on the next Sweep.
type Manager struct {
	device  Device
	log     logrus.FieldLogger
	entries map[uuid.UUID]*entry
	active  uint32

	mu      sync.Mutex
	orphans []uuid.UUID
}

func NewManager(device Device, log logrus.FieldLogger) *Manager {
	return &Manager{
		device:  device,
		log:     log,
		entries: make(map[uuid.UUID]*entry),
	}
}

// Bind makes geo's buffers the active binding, creating them on first use.
// Binding the already active geometry does nothing. It returns false for a
// nil or disposed geometry.
func (m *Manager) Bind(geo *geometry.Geometry) (State, bool) {
	if geo == nil || geo.Disposed() {
		return State{}, false
	}

	e, ok := m.entries[geo.ID()]
	if !ok {
		e = m.track(geo)
	}
	if m.active != e.state.VAO {
		m.device.BindVertexArray(e.state.VAO)
		m.active = e.state.VAO
	}
	return e.state, true
}

func (m *Manager) track(geo *geometry.Geometry) *entry {
	e := &entry{
		state: m.device.CreateBuffers(geo),
		geo:   weak.Make(geo),
	}
	id := geo.ID()
	m.entries[id] = e
	geo.OnDispose(m.onDispose)
	runtime.AddCleanup(geo, m.orphan, id)
	m.logger().WithField("geometry", id).Debug("Created buffers")
	return e
}

func (m *Manager) onDispose(geo *geometry.Geometry) {
	m.release(geo.ID())
}

// orphan runs on the runtime's cleanup goroutine.
func (m *Manager) orphan(id uuid.UUID) {
	m.mu.Lock()
	m.orphans = append(m.orphans, id)
	m.mu.Unlock()
}

func (m *Manager) release(id uuid.UUID) {
	e, ok := m.entries[id]
	if !ok {
		return
	}
	delete(m.entries, id)
	if m.active == e.state.VAO {
		m.device.BindVertexArray(0)
		m.active = 0
	}
	m.device.DeleteBuffers(e.state)
	m.logger().WithField("geometry", id).Info("Released buffers")
}

// Sweep releases buffers whose geometry was garbage collected without being
// disposed.
func (m *Manager) Sweep() {
	m.mu.Lock()
	ids := m.orphans
	m.orphans = nil
	m.mu.Unlock()

	for _, id := range ids {
		m.release(id)
	}
}

// Lookup returns the buffers tracked for a geometry id.
func (m *Manager) Lookup(id uuid.UUID) (State, bool) {
	e, ok := m.entries[id]
	if !ok {
		return State{}, false
	}
	return e.state, true
}

// Unbind clears the active binding.
func (m *Manager) Unbind() {
	if m.active != 0 {
		m.device.BindVertexArray(0)
		m.active = 0
	}
}

// Len reports the number of tracked geometries.
func (m *Manager) Len() int { return len(m.entries) }

// Shutdown disposes every geometry still tracked, which releases its
// buffers through the usual disposal path.
func (m *Manager) Shutdown() {
	for id, e := range m.entries {
		if geo := e.geo.Value(); geo != nil {
			geo.Dispose()
		}
		m.release(id)
	}
	m.Sweep()
}

func (m *Manager) logger() logrus.FieldLogger { return logger.Or(m.log) }
