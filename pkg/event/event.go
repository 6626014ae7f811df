// Package event keeps listener registrations for graph models and fires
// named events to them.
//
// An [Emitter] is safe for concurrent use. Listeners run synchronously on
// the goroutine that calls [Emitter.Fire], outside the emitter's lock, in the
// order they were registered; a listener may therefore register or remove
// listeners without deadlocking.
package event

import (
	"sync"
)

// Names of the events fired by pkg/model.
const (
	BeginUpdate  = "beginUpdate"
	EndUpdate    = "endUpdate"
	Change       = "change"
	CellsAdded   = "cellsAdded"
	CellsRemoved = "cellsRemoved"
	CellsMoved   = "cellsMoved"
	CellsResized = "cellsResized"
)

// Event is one notification. Properties are event specific; "cells" holds
// the affected cells for the cells* events.
type Event struct {
	Name       string
	Properties map[string]any
}

// Property returns the named property, or nil.
func (e Event) Property(key string) any {
	return e.Properties[key]
}

// Listener handles an event.
type Listener func(Event)

// ListenerID identifies a registration for Remove.
type ListenerID uint64

type registration struct {
	id   ListenerID
	name string
	fn   Listener
	once bool
}

// Emitter dispatches events to listeners. The zero value is ready to use.
type Emitter struct {
	mu     sync.RWMutex
	nextID ListenerID
	regs   []registration
}

// NewEmitter returns an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// On registers fn for events called name.
func (e *Emitter) On(name string, fn Listener) ListenerID {
	return e.add(name, fn, false)
}

// Once registers fn for the next event called name only.
func (e *Emitter) Once(name string, fn Listener) ListenerID {
	return e.add(name, fn, true)
}

func (e *Emitter) add(name string, fn Listener, once bool) ListenerID {
	if fn == nil {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	e.regs = append(e.regs, registration{id: e.nextID, name: name, fn: fn, once: once})
	return e.nextID
}

// Off removes every listener registered for name and reports how many were
// removed.
func (e *Emitter) Off(name string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(e.regs)
	e.regs = filter(e.regs, func(r registration) bool { return r.name != name })
	return n - len(e.regs)
}

// Remove removes a single registration. It reports whether id was found.
func (e *Emitter) Remove(id ListenerID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(e.regs)
	e.regs = filter(e.regs, func(r registration) bool { return r.id != id })
	return n != len(e.regs)
}

// RemoveAll drops every registration.
func (e *Emitter) RemoveAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.regs = nil
}

// Count returns the number of listeners registered for name.
func (e *Emitter) Count(name string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	n := 0
	for _, r := range e.regs {
		if r.name == name {
			n++
		}
	}
	return n
}

// Fire delivers an event to the listeners registered for name.
func (e *Emitter) Fire(name string, props map[string]any) {
	e.mu.Lock()
	var fns []Listener
	var spent bool
	for _, r := range e.regs {
		if r.name == name {
			fns = append(fns, r.fn)
			spent = spent || r.once
		}
	}
	if spent {
		e.regs = filter(e.regs, func(r registration) bool { return !(r.once && r.name == name) })
	}
	e.mu.Unlock()

	ev := Event{Name: name, Properties: props}
	for _, fn := range fns {
		fn(ev)
	}
}

func filter(regs []registration, keep func(registration) bool) []registration {
	out := regs[:0:0]
	for _, r := range regs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
