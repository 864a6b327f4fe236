// Package data loads and filters the student profile, calendar, and
// task collections supplied to the engine. It is the context-data
// collaborator: it pre-filters events and tasks to upcoming/active so
// the core never re-validates them.
package data

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// DefaultLookaheadDays is the default upcoming-events window.
const DefaultLookaheadDays = 7

// Manager holds the parsed data sources. All accessors are safe for
// concurrent use; Load and Reload swap the parsed maps atomically under
// the lock.
type Manager struct {
	mu       sync.RWMutex
	profiles map[string]any
	calendar map[string]any
	tasks    map[string]any

	profilePath  string
	calendarPath string
	tasksPath    string
}

// NewManager creates an empty Manager. Data sources start empty until
// loaded.
func NewManager() *Manager {
	return &Manager{}
}

// Load parses the three JSON documents. Any parse error propagates;
// partially loaded data is not installed.
func (m *Manager) Load(profileJSON, calendarJSON, tasksJSON []byte) error {
	var profiles, calendar, tasks map[string]any

	if err := json.Unmarshal(profileJSON, &profiles); err != nil {
		return fmt.Errorf("parse profile data: %w", err)
	}
	if err := json.Unmarshal(calendarJSON, &calendar); err != nil {
		return fmt.Errorf("parse calendar data: %w", err)
	}
	if err := json.Unmarshal(tasksJSON, &tasks); err != nil {
		return fmt.Errorf("parse task data: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = profiles
	m.calendar = calendar
	m.tasks = tasks
	return nil
}

// LoadFiles reads and parses the three JSON files, remembering their
// paths for Reload.
func (m *Manager) LoadFiles(profilePath, calendarPath, tasksPath string) error {
	profileJSON, err := os.ReadFile(profilePath)
	if err != nil {
		return fmt.Errorf("read profile file: %w", err)
	}
	calendarJSON, err := os.ReadFile(calendarPath)
	if err != nil {
		return fmt.Errorf("read calendar file: %w", err)
	}
	tasksJSON, err := os.ReadFile(tasksPath)
	if err != nil {
		return fmt.Errorf("read tasks file: %w", err)
	}

	if err := m.Load(profileJSON, calendarJSON, tasksJSON); err != nil {
		return err
	}

	m.mu.Lock()
	m.profilePath = profilePath
	m.calendarPath = calendarPath
	m.tasksPath = tasksPath
	m.mu.Unlock()
	return nil
}

// Reload re-reads the files from the paths given to LoadFiles.
func (m *Manager) Reload() error {
	m.mu.RLock()
	profilePath, calendarPath, tasksPath := m.profilePath, m.calendarPath, m.tasksPath
	m.mu.RUnlock()

	if profilePath == "" {
		return fmt.Errorf("no file paths to reload from")
	}
	return m.LoadFiles(profilePath, calendarPath, tasksPath)
}

// Paths returns the file paths this manager loads from, if any.
func (m *Manager) Paths() (profile, calendar, tasks string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profilePath, m.calendarPath, m.tasksPath
}

// Calendar returns the parsed calendar document, or nil when unloaded.
func (m *Manager) Calendar() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calendar
}

// Tasks returns the parsed task document, or nil when unloaded.
func (m *Manager) Tasks() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tasks
}

// StudentProfile returns the profile for the given student ID, or nil
// if not found or no profile data is loaded.
func (m *Manager) StudentProfile(studentID string) map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.profiles == nil {
		return nil
	}
	profiles, _ := m.profiles["profiles"].([]any)
	for _, p := range profiles {
		profile, ok := p.(map[string]any)
		if !ok {
			continue
		}
		if profile["id"] == studentID {
			return profile
		}
	}
	return nil
}

// UpcomingEvents returns calendar events starting within the given
// number of days from now, skipping malformed records with a warning.
func (m *Manager) UpcomingEvents(days int) []any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.calendar == nil {
		return nil
	}

	now := time.Now().UTC()
	horizon := now.Add(time.Duration(days) * 24 * time.Hour)

	var upcoming []any
	events, _ := m.calendar["events"].([]any)
	for _, e := range events {
		event, ok := e.(map[string]any)
		if !ok {
			continue
		}
		start, ok := event["start"].(map[string]any)
		if !ok {
			log.Printf("[data] warning: event missing start, skipping")
			continue
		}
		startRaw, _ := start["dateTime"].(string)
		startTime, err := ParseTime(startRaw)
		if err != nil {
			log.Printf("[data] warning: could not parse event start %q: %v", startRaw, err)
			continue
		}
		if !startTime.Before(now) && !startTime.After(horizon) {
			upcoming = append(upcoming, event)
		}
	}
	return upcoming
}

// ActiveTasks returns tasks that still need action and are due in the
// future, skipping malformed records with a warning.
func (m *Manager) ActiveTasks() []any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.tasks == nil {
		return nil
	}

	now := time.Now().UTC()

	var active []any
	tasks, _ := m.tasks["tasks"].([]any)
	for _, t := range tasks {
		task, ok := t.(map[string]any)
		if !ok {
			continue
		}
		dueRaw, _ := task["due"].(string)
		due, err := ParseTime(dueRaw)
		if err != nil {
			log.Printf("[data] warning: could not parse task due %q: %v", dueRaw, err)
			continue
		}
		if task["status"] == "needsAction" && due.After(now) {
			active = append(active, task)
		}
	}
	return active
}

// ParseTime parses an ISO-8601 timestamp, tolerating a trailing Z and
// missing timezone (assumed UTC). The result is always in UTC.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	normalized := strings.Replace(s, "Z", "+00:00", 1)
	layouts := []string{
		"2006-01-02T15:04:05-07:00",
		"2006-01-02T15:04:05.999999999-07:00",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t.UTC(), nil
		}
	}

	// No timezone: assume UTC.
	naive := []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05.999999999",
		"2006-01-02",
	}
	for _, layout := range naive {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
