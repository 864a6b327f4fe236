// Package workflow wires the coordinator, router, agents, and executor
// into a single request/response engine over the shared context.
package workflow

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/ShayCichocki/atlas/internal/router"
	"github.com/ShayCichocki/atlas/pkg/models"
)

// EventType represents the type of workflow event.
type EventType string

const (
	// EventPlanDecided indicates the coordinator produced a dispatch plan.
	EventPlanDecided EventType = "plan_decided"
	// EventProfileAnalyzed indicates the profile analysis completed.
	EventProfileAnalyzed EventType = "profile_analyzed"
	// EventBranchStarted indicates an agent pipeline branch has started.
	EventBranchStarted EventType = "branch_started"
	// EventBranchCompleted indicates an agent pipeline branch completed.
	EventBranchCompleted EventType = "branch_completed"
	// EventBranchFailed indicates an agent pipeline branch failed.
	EventBranchFailed EventType = "branch_failed"
	// EventExecutionStarted indicates the grouped execution pass has started.
	EventExecutionStarted EventType = "execution_started"
	// EventExecutionCompleted indicates the grouped execution pass completed.
	EventExecutionCompleted EventType = "execution_completed"
	// EventResponseReady indicates the final response has been assembled.
	EventResponseReady EventType = "response_ready"
)

// Event represents a progress event emitted while a request is being
// processed. These events are used to update the TUI.
type Event struct {
	// Type is the kind of event.
	Type EventType
	// Agent is the ID of the related agent, if applicable.
	Agent models.AgentID
	// Entry is the pipeline entry point for branch events.
	Entry router.EntryPoint
	// Message provides additional context about the event.
	Message string
	// Error contains error details for failure events.
	Error error
	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// EventEmitter provides a thread-safe way to publish workflow events to
// a subscriber such as the TUI.
type EventEmitter struct {
	events       chan Event
	droppedCount atomic.Uint64
}

// NewEventEmitter creates an EventEmitter with the given buffer size.
func NewEventEmitter(bufferSize int) *EventEmitter {
	return &EventEmitter{
		events: make(chan Event, bufferSize),
	}
}

// Emit sends an event to the events channel.
// If the channel is full, it tries with a timeout before dropping the event.
func (e *EventEmitter) Emit(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case e.events <- event:
		return
	default:
	}

	// Give the receiver a chance to drain before dropping.
	select {
	case e.events <- event:
	case <-time.After(100 * time.Millisecond):
		count := e.droppedCount.Add(1)
		if count%10 == 1 {
			log.Printf("[workflow] WARNING: event channel full, dropped event (total dropped: %d): type=%s", count, event.Type)
		}
	}
}

// DroppedCount returns the total number of events that have been dropped.
func (e *EventEmitter) DroppedCount() uint64 {
	return e.droppedCount.Load()
}

// Events returns a read-only channel of events for subscribers.
func (e *EventEmitter) Events() <-chan Event {
	return e.events
}

// Close closes the events channel. Call once processing is finished.
func (e *EventEmitter) Close() {
	close(e.events)
}
