package state

import (
	"context"
	"sync"
)

// Patch is one state update: a replacement value or a function of the
// previous state.
type Patch[S any] struct {
	value   S
	compute func(prev S) S
}

// Replace returns a patch that sets the state to v.
func Replace[S any](v S) Patch[S] {
	return Patch[S]{value: v}
}

// Compute returns a patch that derives the state from its previous value.
func Compute[S any](fn func(prev S) S) Patch[S] {
	return Patch[S]{compute: fn}
}

func (p Patch[S]) apply(prev S) S {
	if p.compute != nil {
		return p.compute(prev)
	}
	return p.value
}

// Action produces the patches of one state transition.
type Action[S any] func(ctx context.Context) ([]Patch[S], error)

// Store owns a state value of type S.
type Store[S any] struct {
	mu    sync.Mutex
	state S

	subsMu sync.Mutex
	subs   map[int]func(S)
	nextID int
}

func NewStore[S any](initial S) *Store[S] {
	return &Store[S]{state: initial, subs: make(map[int]func(S))}
}

// State returns the current state.
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Apply runs patches in order under the store lock and notifies
// subscribers once with the result. An empty batch changes nothing and
// notifies no one.
func (s *Store[S]) Apply(patches ...Patch[S]) S {
	s.mu.Lock()
	if len(patches) == 0 {
		defer s.mu.Unlock()
		return s.state
	}
	for _, p := range patches {
		s.state = p.apply(s.state)
	}
	next := s.state
	s.mu.Unlock()

	s.notify(next)
	return next
}

// Dispatch runs action and applies its patches. Nothing is applied when the
// action fails.
func (s *Store[S]) Dispatch(ctx context.Context, action Action[S]) error {
	patches, err := action(ctx)
	if err != nil {
		return err
	}
	s.Apply(patches...)
	return nil
}

// Subscribe registers fn for every applied batch and returns a function that
// removes it.
func (s *Store[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *Store[S]) notify(state S) {
	s.subsMu.Lock()
	subs := make([]func(S), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
