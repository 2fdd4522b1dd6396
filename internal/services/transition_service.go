package services

import (
	"fmt"

	"opdash/internal/domain"
	"opdash/internal/logging"
	"opdash/internal/repository"
	"opdash/internal/validation"
)

// transitionServiceImpl implements the TransitionService interface
type transitionServiceImpl struct {
	ids           IDGenerator
	taskValidator *validation.TaskValidator
}

// NewTransitionService creates a new TransitionService instance
func NewTransitionService(ids IDGenerator) TransitionService {
	return &transitionServiceImpl{
		ids:           ids,
		taskValidator: validation.NewTaskValidator(),
	}
}

// unchanged returns an outcome that leaves state as it is
func unchanged(state State, event *domain.Event) Outcome {
	return Outcome{Next: state, Changed: repository.CollectionNone, Event: event}
}

func indexOf(tasks []domain.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// without returns a copy of tasks minus position i
func without(tasks []domain.Task, i int) []domain.Task {
	out := make([]domain.Task, 0, len(tasks)-1)
	out = append(out, tasks[:i]...)
	return append(out, tasks[i+1:]...)
}

// appended returns a copy of tasks with task added at the end
func appended(tasks []domain.Task, task domain.Task) []domain.Task {
	out := make([]domain.Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	return append(out, task)
}

// RequestStatusChange moves a task between statuses. Reaching Done moves the
// task from Active to History.
func (s *transitionServiceImpl) RequestStatusChange(state State, taskID string, newStatus domain.Status) Outcome {
	i := indexOf(state.Active, taskID)
	if i == -1 {
		logging.Debugf("status change ignored, task %s is not active", taskID)
		return unchanged(state, nil)
	}

	current := state.Active[i]
	if err := s.taskValidator.ValidateStatusChange(current, newStatus); err != nil {
		message := err.Error()
		if ve, ok := err.(*validation.ValidationError); ok {
			message = ve.GetUserFriendlyMessage()
		}
		return unchanged(state, domain.NewEvent(domain.SeverityError, message))
	}

	moved := current.WithStatus(newStatus)

	if newStatus.IsTerminal() {
		return Outcome{
			Next: State{
				Active:  without(state.Active, i),
				History: appended(state.History, moved),
			},
			Changed: repository.CollectionBoth,
			Event:   domain.NewEvent(domain.SeveritySuccess, fmt.Sprintf("Task %q completed and moved to history", moved.Name)),
			Task:    &moved,
		}
	}

	active := make([]domain.Task, len(state.Active))
	copy(active, state.Active)
	active[i] = moved

	return Outcome{
		Next:    State{Active: active, History: state.History},
		Changed: repository.CollectionActive,
		Event:   domain.NewEvent(domain.SeverityInfo, fmt.Sprintf("Task %q is now %s", moved.Name, newStatus)),
		Task:    &moved,
	}
}

// DeleteTask removes an active task. Callers gate it behind confirmation.
func (s *transitionServiceImpl) DeleteTask(state State, taskID string) Outcome {
	i := indexOf(state.Active, taskID)
	if i == -1 {
		return unchanged(state, nil)
	}

	removed := state.Active[i]
	return Outcome{
		Next:    State{Active: without(state.Active, i), History: state.History},
		Changed: repository.CollectionActive,
		Event:   domain.NewEvent(domain.SeverityWarning, fmt.Sprintf("Task %q deleted", removed.Name)),
		Task:    &removed,
	}
}

// SaveTask creates or edits a task from form data. The worked-units rule of
// RequestStatusChange is not applied here.
func (s *transitionServiceImpl) SaveTask(state State, task domain.Task) Outcome {
	if task.HasID() {
		return s.editTask(state, task)
	}
	return s.createTask(state, task)
}

func (s *transitionServiceImpl) editTask(state State, task domain.Task) Outcome {
	if task.Status.IsTerminal() {
		active := state.Active
		if i := indexOf(active, task.ID); i != -1 {
			active = without(active, i)
		} else {
			active = append([]domain.Task(nil), active...)
		}
		return Outcome{
			Next:    State{Active: active, History: appended(state.History, task)},
			Changed: repository.CollectionBoth,
			Event:   domain.NewEvent(domain.SeveritySuccess, fmt.Sprintf("Task %q finished and archived", task.Name)),
			Task:    &task,
		}
	}

	active := make([]domain.Task, len(state.Active))
	copy(active, state.Active)
	// An id missing from Active is a silent no-op that still reports success.
	if i := indexOf(active, task.ID); i != -1 {
		active[i] = task
	} else {
		logging.Debugf("edit of %s matched no active task", task.ID)
	}

	return Outcome{
		Next:    State{Active: active, History: state.History},
		Changed: repository.CollectionActive,
		Event:   domain.NewEvent(domain.SeveritySuccess, fmt.Sprintf("Task %q updated", task.Name)),
		Task:    &task,
	}
}

func (s *transitionServiceImpl) createTask(state State, task domain.Task) Outcome {
	task.ID = s.ids.NewID()

	if task.Status.IsTerminal() {
		return Outcome{
			Next:    State{Active: state.Active, History: appended(state.History, task)},
			Changed: repository.CollectionHistory,
			Event:   domain.NewEvent(domain.SeveritySuccess, fmt.Sprintf("Task %q created and archived", task.Name)),
			Task:    &task,
		}
	}

	return Outcome{
		Next:    State{Active: appended(state.Active, task), History: state.History},
		Changed: repository.CollectionActive,
		Event:   domain.NewEvent(domain.SeveritySuccess, fmt.Sprintf("New task %q created", task.Name)),
		Task:    &task,
	}
}

// ClearHistory empties History
func (s *transitionServiceImpl) ClearHistory(state State) Outcome {
	return Outcome{
		Next:    State{Active: state.Active, History: []domain.Task{}},
		Changed: repository.CollectionHistory,
		Event:   domain.NewEvent(domain.SeveritySuccess, "History cleared"),
	}
}

// ClearActiveTasks discards every active task without archiving it
func (s *transitionServiceImpl) ClearActiveTasks(state State) Outcome {
	return Outcome{
		Next:    State{Active: []domain.Task{}, History: state.History},
		Changed: repository.CollectionActive,
		Event:   domain.NewEvent(domain.SeverityWarning, "Active tasks cleared"),
	}
}

// ResetToDefaults replaces both collections with the demo dataset
func (s *transitionServiceImpl) ResetToDefaults(state State) Outcome {
	return Outcome{
		Next:    State{Active: domain.SeedTasks(), History: domain.SeedHistory()},
		Changed: repository.CollectionBoth,
		Event:   domain.NewEvent(domain.SeverityInfo, "Dashboard reset to demo data"),
	}
}
