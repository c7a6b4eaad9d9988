// Package trace records how a vector's size and capacity evolve across
// appends and persists those traces on disk.
package trace

import (
	"github.com/san-kum/veclib/internal/vector"
)

// Event is the state of a vector right after one append.
type Event struct {
	Step int  `json:"step"`
	Size int  `json:"size"`
	Cap  int  `json:"cap"`
	Grew bool `json:"grew"`
}

// Recorder appends through a vector and keeps one Event per append.
type Recorder[T any] struct {
	v      *vector.Vector[T]
	events *vector.Vector[Event]
}

func NewRecorder[T any](v *vector.Vector[T]) (*Recorder[T], error) {
	events, err := vector.New[Event]()
	if err != nil {
		return nil, err
	}
	return &Recorder[T]{v: v, events: events}, nil
}

// Append appends x to the wrapped vector and records the outcome. Failed
// appends are not recorded.
func (r *Recorder[T]) Append(x T) error {
	before := r.v.Cap()
	if err := r.v.Append(x); err != nil {
		return err
	}
	return r.events.Append(Event{
		Step: r.events.Len() + 1,
		Size: r.v.Len(),
		Cap:  r.v.Cap(),
		Grew: r.v.Cap() != before,
	})
}

func (r *Recorder[T]) Vector() *vector.Vector[T] { return r.v }

// Events returns a copy of the recorded events.
func (r *Recorder[T]) Events() []Event {
	return append([]Event(nil), r.events.Slice()...)
}

// Growths returns the number of appends that reallocated.
func (r *Recorder[T]) Growths() int {
	n := 0
	for e := range r.events.Values() {
		if e.Grew {
			n++
		}
	}
	return n
}
