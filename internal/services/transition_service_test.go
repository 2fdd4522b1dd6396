package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opdash/internal/domain"
	"opdash/internal/repository"
	"opdash/internal/validation"
)

func setupTransitionService() TransitionService {
	return NewTransitionService(NewSequenceGenerator("t"))
}

func task(id string, worked int, status domain.Status) domain.Task {
	return domain.Task{
		ID:            id,
		Name:          "Task " + id,
		Owner:         "Steven Díaz",
		AssignedCount: 10,
		WorkedCount:   worked,
		Country:       domain.CountrySV,
		Priority:      domain.PriorityMedium,
		StartDate:     "2024-02-01",
		DueDate:       "2024-02-10",
		Status:        status,
	}
}

// withID returns t as the engine stores it once an id is assigned
func withID(t domain.Task, id string) domain.Task {
	t.ID = id
	return t
}

func TestTransitionService_RequestStatusChange(t *testing.T) {
	tests := []struct {
		name            string
		state           State
		taskID          string
		newStatus       domain.Status
		expectedActive  []domain.Task
		expectedHistory []domain.Task
		expectedChanged repository.Collections
		expectedEvent   *domain.Event
	}{
		{
			name:            "should reject leaving pending without worked units",
			state:           State{Active: []domain.Task{task("1", 0, domain.StatusPending)}, History: []domain.Task{}},
			taskID:          "1",
			newStatus:       domain.StatusInProgress,
			expectedActive:  []domain.Task{task("1", 0, domain.StatusPending)},
			expectedHistory: []domain.Task{},
			expectedChanged: repository.CollectionNone,
			expectedEvent:   domain.NewEvent(domain.SeverityError, validation.WorkedUnitsRequiredMessage),
		},
		{
			name:            "should reject done without worked units",
			state:           State{Active: []domain.Task{task("1", 0, domain.StatusInProgress)}},
			taskID:          "1",
			newStatus:       domain.StatusDone,
			expectedActive:  []domain.Task{task("1", 0, domain.StatusInProgress)},
			expectedChanged: repository.CollectionNone,
			expectedEvent:   domain.NewEvent(domain.SeverityError, validation.WorkedUnitsRequiredMessage),
		},
		{
			name:            "should allow returning to pending without worked units",
			state:           State{Active: []domain.Task{task("1", 0, domain.StatusInProgress)}},
			taskID:          "1",
			newStatus:       domain.StatusPending,
			expectedActive:  []domain.Task{task("1", 0, domain.StatusPending)},
			expectedChanged: repository.CollectionActive,
			expectedEvent:   domain.NewEvent(domain.SeverityInfo, `Task "Task 1" is now Pendiente`),
		},
		{
			name:            "should move done task to history",
			state:           State{Active: []domain.Task{task("1", 5, domain.StatusInProgress)}, History: []domain.Task{}},
			taskID:          "1",
			newStatus:       domain.StatusDone,
			expectedActive:  []domain.Task{},
			expectedHistory: []domain.Task{task("1", 5, domain.StatusDone)},
			expectedChanged: repository.CollectionBoth,
			expectedEvent:   domain.NewEvent(domain.SeveritySuccess, `Task "Task 1" completed and moved to history`),
		},
		{
			name: "should update status in place keeping position",
			state: State{Active: []domain.Task{
				task("1", 0, domain.StatusPending),
				task("2", 3, domain.StatusPending),
				task("3", 0, domain.StatusPending),
			}},
			taskID:    "2",
			newStatus: domain.StatusInProgress,
			expectedActive: []domain.Task{
				task("1", 0, domain.StatusPending),
				task("2", 3, domain.StatusInProgress),
				task("3", 0, domain.StatusPending),
			},
			expectedChanged: repository.CollectionActive,
			expectedEvent:   domain.NewEvent(domain.SeverityInfo, `Task "Task 2" is now En Proceso`),
		},
		{
			name:            "should ignore unknown task",
			state:           State{Active: []domain.Task{task("1", 5, domain.StatusPending)}},
			taskID:          "missing",
			newStatus:       domain.StatusDone,
			expectedActive:  []domain.Task{task("1", 5, domain.StatusPending)},
			expectedChanged: repository.CollectionNone,
		},
		{
			name:            "should ignore history tasks",
			state:           State{Active: []domain.Task{}, History: []domain.Task{task("h1", 5, domain.StatusDone)}},
			taskID:          "h1",
			newStatus:       domain.StatusPending,
			expectedActive:  []domain.Task{},
			expectedHistory: []domain.Task{task("h1", 5, domain.StatusDone)},
			expectedChanged: repository.CollectionNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := setupTransitionService()

			outcome := service.RequestStatusChange(tt.state, tt.taskID, tt.newStatus)

			assert.Equal(t, tt.expectedActive, outcome.Next.Active)
			assert.Equal(t, tt.expectedHistory, outcome.Next.History)
			assert.Equal(t, tt.expectedChanged, outcome.Changed)
			assert.Equal(t, tt.expectedEvent, outcome.Event)
		})
	}
}

func TestTransitionService_RequestStatusChangeDoesNotMutateInput(t *testing.T) {
	service := setupTransitionService()
	active := []domain.Task{task("1", 5, domain.StatusPending), task("2", 5, domain.StatusPending)}
	state := State{Active: active, History: []domain.Task{}}

	service.RequestStatusChange(state, "1", domain.StatusInProgress)
	service.RequestStatusChange(state, "2", domain.StatusDone)

	assert.Equal(t, domain.StatusPending, active[0].Status)
	assert.Equal(t, domain.StatusPending, active[1].Status)
	assert.Len(t, state.History, 0)
}

func TestTransitionService_RequestStatusChangeInvalidStatus(t *testing.T) {
	service := setupTransitionService()
	state := State{Active: []domain.Task{task("1", 5, domain.StatusPending)}}

	outcome := service.RequestStatusChange(state, "1", domain.Status("Archivado"))

	require.NotNil(t, outcome.Event)
	assert.Equal(t, domain.SeverityError, outcome.Event.Severity)
	assert.Equal(t, repository.CollectionNone, outcome.Changed)
}

func TestTransitionService_DeleteTask(t *testing.T) {
	service := setupTransitionService()
	history := []domain.Task{task("h1", 5, domain.StatusDone)}
	state := State{
		Active:  []domain.Task{task("1", 0, domain.StatusPending), task("2", 0, domain.StatusPending)},
		History: history,
	}

	outcome := service.DeleteTask(state, "1")
	assert.Equal(t, []domain.Task{task("2", 0, domain.StatusPending)}, outcome.Next.Active)
	assert.Equal(t, history, outcome.Next.History)
	assert.Equal(t, repository.CollectionActive, outcome.Changed)
	assert.Equal(t, domain.NewEvent(domain.SeverityWarning, `Task "Task 1" deleted`), outcome.Event)

	outcome = service.DeleteTask(state, "missing")
	assert.Len(t, outcome.Next.Active, 2)
	assert.Nil(t, outcome.Event)
	assert.Equal(t, repository.CollectionNone, outcome.Changed)

	// History ids are not deletable one by one.
	outcome = service.DeleteTask(state, "h1")
	assert.Equal(t, history, outcome.Next.History)
	assert.Nil(t, outcome.Event)
}

func TestTransitionService_SaveTask(t *testing.T) {
	tests := []struct {
		name            string
		state           State
		input           domain.Task
		expectedActive  []domain.Task
		expectedHistory []domain.Task
		expectedChanged repository.Collections
		expectedMessage string
	}{
		{
			name:            "should create active task with generated id",
			state:           State{Active: []domain.Task{task("1", 0, domain.StatusPending)}},
			input:           task("", 0, domain.StatusPending),
			expectedActive:  []domain.Task{task("1", 0, domain.StatusPending), withID(task("", 0, domain.StatusPending), "t1")},
			expectedChanged: repository.CollectionActive,
			expectedMessage: `New task "Task " created`,
		},
		{
			name:            "should create done task straight into history",
			state:           State{Active: []domain.Task{}, History: []domain.Task{}},
			input:           task("", 10, domain.StatusDone),
			expectedActive:  []domain.Task{},
			expectedHistory: []domain.Task{withID(task("", 10, domain.StatusDone), "t1")},
			expectedChanged: repository.CollectionHistory,
			expectedMessage: `Task "Task " created and archived`,
		},
		{
			name:            "should create in progress task without worked units",
			state:           State{Active: []domain.Task{}},
			input:           task("", 0, domain.StatusInProgress),
			expectedActive:  []domain.Task{withID(task("", 0, domain.StatusInProgress), "t1")},
			expectedChanged: repository.CollectionActive,
			expectedMessage: `New task "Task " created`,
		},
		{
			name: "should replace edited task in place",
			state: State{Active: []domain.Task{
				task("1", 0, domain.StatusPending),
				task("2", 0, domain.StatusPending),
			}},
			input: task("1", 7, domain.StatusInProgress),
			expectedActive: []domain.Task{
				task("1", 7, domain.StatusInProgress),
				task("2", 0, domain.StatusPending),
			},
			expectedChanged: repository.CollectionActive,
			expectedMessage: `Task "Task 1" updated`,
		},
		{
			name:            "should archive edited task marked done",
			state:           State{Active: []domain.Task{task("1", 4, domain.StatusInProgress)}, History: []domain.Task{}},
			input:           task("1", 4, domain.StatusDone),
			expectedActive:  []domain.Task{},
			expectedHistory: []domain.Task{task("1", 4, domain.StatusDone)},
			expectedChanged: repository.CollectionBoth,
			expectedMessage: `Task "Task 1" finished and archived`,
		},
		{
			name:            "should report success when edited id is missing",
			state:           State{Active: []domain.Task{task("1", 0, domain.StatusPending)}},
			input:           task("ghost", 3, domain.StatusInProgress),
			expectedActive:  []domain.Task{task("1", 0, domain.StatusPending)},
			expectedChanged: repository.CollectionActive,
			expectedMessage: `Task "Task ghost" updated`,
		},
		{
			name:            "should archive a done edit even when id is missing",
			state:           State{Active: []domain.Task{task("1", 0, domain.StatusPending)}, History: []domain.Task{}},
			input:           task("ghost", 3, domain.StatusDone),
			expectedActive:  []domain.Task{task("1", 0, domain.StatusPending)},
			expectedHistory: []domain.Task{task("ghost", 3, domain.StatusDone)},
			expectedChanged: repository.CollectionBoth,
			expectedMessage: `Task "Task ghost" finished and archived`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := setupTransitionService()

			outcome := service.SaveTask(tt.state, tt.input)

			assert.Equal(t, tt.expectedActive, outcome.Next.Active)
			assert.Equal(t, tt.expectedHistory, outcome.Next.History)
			assert.Equal(t, tt.expectedChanged, outcome.Changed)
			require.NotNil(t, outcome.Event)
			assert.Equal(t, domain.SeveritySuccess, outcome.Event.Severity)
			assert.Equal(t, tt.expectedMessage, outcome.Event.Message)
			require.NotNil(t, outcome.Task)
		})
	}
}

func TestTransitionService_BulkOperations(t *testing.T) {
	service := setupTransitionService()
	state := State{Active: domain.SeedTasks(), History: domain.SeedHistory()}

	t.Run("clear history keeps active", func(t *testing.T) {
		outcome := service.ClearHistory(state)
		assert.Empty(t, outcome.Next.History)
		assert.NotNil(t, outcome.Next.History)
		assert.Equal(t, state.Active, outcome.Next.Active)
		assert.Equal(t, repository.CollectionHistory, outcome.Changed)
		assert.Equal(t, domain.SeveritySuccess, outcome.Event.Severity)
	})

	t.Run("clear active discards without archiving", func(t *testing.T) {
		outcome := service.ClearActiveTasks(state)
		assert.Empty(t, outcome.Next.Active)
		assert.Equal(t, state.History, outcome.Next.History)
		assert.Equal(t, repository.CollectionActive, outcome.Changed)
		assert.Equal(t, domain.SeverityWarning, outcome.Event.Severity)
	})

	t.Run("reset restores seed data", func(t *testing.T) {
		outcome := service.ResetToDefaults(State{Active: []domain.Task{}, History: []domain.Task{}})
		assert.Equal(t, domain.SeedTasks(), outcome.Next.Active)
		assert.Equal(t, domain.SeedHistory(), outcome.Next.History)
		assert.Equal(t, repository.CollectionBoth, outcome.Changed)
		assert.Equal(t, domain.SeverityInfo, outcome.Event.Severity)
	})
}
