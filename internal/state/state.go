// Package state holds the shared request context mutated by concurrent
// agent branches, the merge reducer that combines partial updates, and
// the sqlite-backed conversation store.
package state

import (
	"sync"

	"github.com/ShayCichocki/atlas/pkg/models"
)

// State is the shared context for one request. The conversation is
// append-only; profile, calendar and tasks are treated as immutable for
// the duration of a run; results is the concurrently-written field.
//
// Safety for results rests on the static partition into disjoint
// namespaces: every producer owns a unique top-level key and no two
// concurrently active branches target the same key within one fan-out
// step. The mutex serializes the merges themselves so application order
// is arrival order at the join point.
type State struct {
	mu       sync.RWMutex
	messages []models.Message
	profile  map[string]any
	calendar map[string]any
	tasks    map[string]any
	results  map[string]any
}

// New creates a State from the pre-filtered collaborator data and the
// accumulated conversation. Nil maps are normalized to empty maps so
// zero available signal never reads as an error.
func New(messages []models.Message, profile, calendar, tasks map[string]any) *State {
	if profile == nil {
		profile = map[string]any{}
	}
	if calendar == nil {
		calendar = map[string]any{}
	}
	if tasks == nil {
		tasks = map[string]any{}
	}
	return &State{
		messages: append([]models.Message(nil), messages...),
		profile:  profile,
		calendar: calendar,
		tasks:    tasks,
		results:  map[string]any{},
	}
}

// AppendMessage appends a turn to the conversation.
func (s *State) AppendMessage(m models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
}

// Messages returns a copy of the conversation in chronological order.
func (s *State) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Message(nil), s.messages...)
}

// LastMessage returns the most recent turn and true, or a zero message
// and false if the conversation is empty.
func (s *State) LastMessage() (models.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.messages) == 0 {
		return models.Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// Profile returns the student profile map. Callers must not modify it.
func (s *State) Profile() map[string]any {
	return s.profile
}

// Calendar returns the calendar map. Callers must not modify it.
func (s *State) Calendar() map[string]any {
	return s.calendar
}

// Tasks returns the tasks map. Callers must not modify it.
func (s *State) Tasks() map[string]any {
	return s.tasks
}

// ApplyResults merges a namespaced partial update into results under
// the lock. Concurrent branches each call this with their own top-level
// namespace; the merge order is the order calls arrive.
func (s *State) ApplyResults(partial map[string]any) {
	if len(partial) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = Merge(s.results, partial)
}

// Results returns a snapshot of the top level of the results map.
// Nested values are shared; producers never mutate a namespace after
// publishing it.
func (s *State) Results() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make(map[string]any, len(s.results))
	for k, v := range s.results {
		snapshot[k] = v
	}
	return snapshot
}

// Result returns the value stored under the given top-level namespace,
// or nil if absent.
func (s *State) Result(namespace string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results[namespace]
}

// ResultMap returns the map stored under the given namespace, or an
// empty map if the namespace is absent or holds a non-map value.
func (s *State) ResultMap(namespace string) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.results[namespace].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}
