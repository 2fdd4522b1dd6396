package services

import (
	"time"

	"opdash/internal/domain"
	"opdash/internal/repository"
)

// IDGenerator issues identifiers for new tasks and notifications
type IDGenerator interface {
	NewID() string
}

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// Timer is a pending scheduled callback
type Timer interface {
	// Stop cancels the callback. It reports false when the callback
	// already ran or was stopped.
	Stop() bool
}

// Scheduler runs a callback once after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// State is a snapshot of both task collections
type State struct {
	Active  []domain.Task `json:"active"`
	History []domain.Task `json:"history"`
}

// Outcome is the result of applying one intent to a State
type Outcome struct {
	// Next is the state to swap in. It equals the input when nothing changed.
	Next State

	// Changed lists the collections that must be persisted.
	Changed repository.Collections

	// Event is the notification to publish, nil for silent no-ops.
	Event *domain.Event

	// Task is the task the intent acted on, when there was one.
	Task *domain.Task
}

// StatusCounts counts tasks per lifecycle status
type StatusCounts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`
}

// SeriesPoint is one bar of a chart series
type SeriesPoint struct {
	Label    string `json:"label"`
	Tasks    int    `json:"tasks"`
	Assigned int    `json:"assigned"`
	Worked   int    `json:"worked"`
}

// Series groups a collection along each chart dimension
type Series struct {
	ByCountry  []SeriesPoint `json:"byCountry"`
	ByPriority []SeriesPoint `json:"byPriority"`
	ByOwner    []SeriesPoint `json:"byOwner"`
}

// Metrics is the derived view model behind the summary cards and charts
type Metrics struct {
	Status            StatusCounts `json:"status"`
	ActiveCount       int          `json:"activeCount"`
	AssignedTotal     int          `json:"assignedTotal"`
	WorkedTotal       int          `json:"workedTotal"`
	CompletionPercent float64      `json:"completionPercent"`
	RemainingUnits    int          `json:"remainingUnits"`
	HistoryCount      int          `json:"historyCount"`
	HistoryWorked     int          `json:"historyWorked"`
	ActiveSeries      Series       `json:"activeSeries"`
	HistorySeries     Series       `json:"historySeries"`
}

// TransitionService computes the next dashboard state for each intent.
// Implementations never mutate the State they are given.
type TransitionService interface {
	RequestStatusChange(state State, taskID string, newStatus domain.Status) Outcome
	DeleteTask(state State, taskID string) Outcome
	SaveTask(state State, task domain.Task) Outcome
	ClearHistory(state State) Outcome
	ClearActiveTasks(state State) Outcome
	ResetToDefaults(state State) Outcome
}

// ReportingService derives metrics from a state snapshot
type ReportingService interface {
	Compute(state State) Metrics
}

// NotificationService keeps the list of live notifications
type NotificationService interface {
	Publish(event domain.Event) domain.Notification
	Dismiss(id string) bool
	List() []domain.Notification
	Close()
}
