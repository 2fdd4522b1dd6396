package api

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"opdash/internal/domain"
	"opdash/internal/errors"
	"opdash/internal/logging"
	"opdash/internal/repository"
	"opdash/internal/services"
	"opdash/internal/store"
	"opdash/internal/validation"
)

// Result describes what an intent did
type Result struct {
	// Applied is false for declined confirmations, rejected transitions and
	// intents that matched nothing.
	Applied bool `json:"applied"`

	// Notification is the notification published for the intent, if any.
	Notification *domain.Notification `json:"notification,omitempty"`

	// Task is the task the intent acted on, if any.
	Task *domain.Task `json:"task,omitempty"`
}

// EditSession is the open create/edit form. Task is nil when creating.
type EditSession struct {
	Open bool         `json:"open"`
	Task *domain.Task `json:"task,omitempty"`
}

// Snapshot bundles every view the presentation layer renders
type Snapshot struct {
	Active        []domain.Task         `json:"active"`
	History       []domain.Task         `json:"history"`
	Metrics       services.Metrics      `json:"metrics"`
	Notifications []domain.Notification `json:"notifications"`
	Session       EditSession           `json:"session"`
	Theme         domain.Theme          `json:"theme"`
}

// DashboardAPI is the single entry point for dashboard intents and views
type DashboardAPI interface {
	// ========== Lifecycle Intents ==========

	// ChangeStatus moves an active task to another status
	ChangeStatus(ctx context.Context, taskID string, status domain.Status) (*Result, error)

	// DeleteTask removes an active task after confirmation
	DeleteTask(ctx context.Context, taskID string, confirm Confirmer) (*Result, error)

	// SaveTask creates (no id) or edits (id set) a task from form data
	SaveTask(ctx context.Context, task domain.Task) (*Result, error)

	// QuickAdd creates a pending task with default fields
	QuickAdd(ctx context.Context, name string, owner string) (*Result, error)

	// ClearHistory empties History after confirmation
	ClearHistory(ctx context.Context, confirm Confirmer) (*Result, error)

	// ClearActiveTasks empties Active after confirmation
	ClearActiveTasks(ctx context.Context, confirm Confirmer) (*Result, error)

	// ResetToDefaults restores the demo dataset after confirmation
	ResetToDefaults(ctx context.Context, confirm Confirmer) (*Result, error)

	// ========== Edit Session ==========

	OpenCreate() EditSession
	OpenEdit(taskID string) (EditSession, error)
	CloseSession()

	// DraftTask returns the defaults a new task starts from, dated today
	DraftTask() domain.Task

	// ResolveTaskID expands ref to the id of the active task it names. An
	// exact id wins over a prefix; a prefix must match exactly one task.
	ResolveTaskID(ref string) (string, error)

	// ========== Notifications and Theme ==========

	DismissNotification(id string) bool
	ToggleTheme(ctx context.Context) (domain.Theme, error)
	SetTheme(ctx context.Context, theme domain.Theme) error

	// ========== Views ==========

	Active() []domain.Task
	History() []domain.Task
	Metrics() services.Metrics
	Notifications() []domain.Notification
	Session() EditSession
	Theme() domain.Theme
	Snapshot() Snapshot

	// Close stops pending notification timers and releases the gateway
	Close() error
}

// Options configures a dashboard. Zero values select production defaults.
type Options struct {
	IDs               services.IDGenerator
	NotificationIDs   services.IDGenerator
	Clock             services.Clock
	Scheduler         services.Scheduler
	NotificationLimit int
	NotificationTTL   time.Duration
	StorageTimeout    time.Duration
	FallbackTheme     func() domain.Theme
	Validator         *validation.TaskValidator
}

// dashboardImpl implements the DashboardAPI interface. Every intent holds mu
// from start to finish, so intents never interleave.
type dashboardImpl struct {
	mu            sync.Mutex
	gateway       repository.Gateway
	repo          *repository.StateRepository
	store         *store.Store
	engine        services.TransitionService
	reporting     services.ReportingService
	notifications services.NotificationService
	taskValidator *validation.TaskValidator
	clock         services.Clock
	timeout       time.Duration
	session       EditSession
	theme         domain.Theme
}

// New loads dashboard state from gateway and returns the controller
func New(ctx context.Context, gateway repository.Gateway, opts Options) (DashboardAPI, error) {
	if opts.IDs == nil {
		opts.IDs = services.UUIDGenerator{}
	}
	if opts.NotificationIDs == nil {
		opts.NotificationIDs = opts.IDs
	}
	if opts.Clock == nil {
		opts.Clock = services.SystemClock{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = services.TimerScheduler{}
	}
	if opts.Validator == nil {
		opts.Validator = validation.NewTaskValidator()
	}

	d := &dashboardImpl{
		gateway:       gateway,
		repo:          repository.NewStateRepository(gateway, opts.FallbackTheme),
		engine:        services.NewTransitionService(opts.IDs),
		reporting:     services.NewReportingService(),
		notifications: services.NewNotificationService(opts.NotificationIDs, opts.Scheduler, opts.NotificationLimit, opts.NotificationTTL),
		taskValidator: opts.Validator,
		clock:         opts.Clock,
		timeout:       opts.StorageTimeout,
	}

	loadCtx, cancel := d.storageContext(ctx)
	defer cancel()

	active, history, err := d.repo.LoadState(loadCtx)
	if err != nil {
		return nil, err
	}
	theme, err := d.repo.LoadTheme(loadCtx)
	if err != nil {
		return nil, err
	}

	d.store = store.New(active, history)
	d.theme = theme
	logging.Debugf("dashboard loaded: %d active, %d history, theme %s", len(active), len(history), theme)
	return d, nil
}

func (d *dashboardImpl) storageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout > 0 {
		return context.WithTimeout(ctx, d.timeout)
	}
	return context.WithCancel(ctx)
}

func (d *dashboardImpl) state() services.State {
	return services.State{Active: d.store.Active(), History: d.store.History()}
}

// apply persists the changed collections, swaps them into the store and
// publishes the outcome's notification. A failed save leaves the store and
// the notification list untouched.
func (d *dashboardImpl) apply(ctx context.Context, intent string, outcome services.Outcome) (*Result, error) {
	if outcome.Changed != repository.CollectionNone {
		saveCtx, cancel := d.storageContext(ctx)
		defer cancel()

		if err := d.repo.SaveCollections(saveCtx, outcome.Next.Active, outcome.Next.History, outcome.Changed); err != nil {
			if errors.ShouldLogError(err) {
				logging.Logger().Error("intent failed", "intent", intent, "error", err)
			}
			return nil, err
		}

		if outcome.Changed.Has(repository.CollectionActive) {
			d.store.ReplaceActive(outcome.Next.Active)
		}
		if outcome.Changed.Has(repository.CollectionHistory) {
			d.store.ReplaceHistory(outcome.Next.History)
		}
	}

	result := &Result{
		Applied: outcome.Changed != repository.CollectionNone,
		Task:    outcome.Task,
	}
	if outcome.Event != nil {
		note := d.notifications.Publish(*outcome.Event)
		result.Notification = &note
	}

	logging.Debugf("intent %s applied=%t", intent, result.Applied)
	return result, nil
}

// confirmed asks confirm before the lock is taken, since a prompt may block
func confirmed(ctx context.Context, confirm Confirmer, prompt string) (bool, error) {
	if confirm == nil {
		return false, nil
	}
	return confirm.Confirm(ctx, prompt)
}

// ========== Lifecycle Intents ==========

func (d *dashboardImpl) ChangeStatus(ctx context.Context, taskID string, status domain.Status) (*Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.apply(ctx, "change-status", d.engine.RequestStatusChange(d.state(), taskID, status))
}

func (d *dashboardImpl) DeleteTask(ctx context.Context, taskID string, confirm Confirmer) (*Result, error) {
	ok, err := confirmed(ctx, confirm, PromptDeleteTask)
	if err != nil || !ok {
		return &Result{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return d.apply(ctx, "delete", d.engine.DeleteTask(d.state(), taskID))
}

func (d *dashboardImpl) SaveTask(ctx context.Context, task domain.Task) (*Result, error) {
	task.Name = strings.TrimSpace(task.Name)
	task.Owner = strings.TrimSpace(task.Owner)
	if err := d.taskValidator.ValidateTaskInput(task); err != nil {
		return nil, errors.NewValidationError(userMessage(err), err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	result, err := d.apply(ctx, "save", d.engine.SaveTask(d.state(), task))
	if err != nil {
		return nil, err
	}
	d.session = EditSession{}
	return result, nil
}

func (d *dashboardImpl) QuickAdd(ctx context.Context, name string, owner string) (*Result, error) {
	task := d.DraftTask()
	task.Name = name
	task.Owner = owner
	return d.SaveTask(ctx, task)
}

func (d *dashboardImpl) ClearHistory(ctx context.Context, confirm Confirmer) (*Result, error) {
	ok, err := confirmed(ctx, confirm, PromptClearHist)
	if err != nil || !ok {
		return &Result{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return d.apply(ctx, "clear-history", d.engine.ClearHistory(d.state()))
}

func (d *dashboardImpl) ClearActiveTasks(ctx context.Context, confirm Confirmer) (*Result, error) {
	ok, err := confirmed(ctx, confirm, PromptClearActive)
	if err != nil || !ok {
		return &Result{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return d.apply(ctx, "clear-active", d.engine.ClearActiveTasks(d.state()))
}

func (d *dashboardImpl) ResetToDefaults(ctx context.Context, confirm Confirmer) (*Result, error) {
	ok, err := confirmed(ctx, confirm, PromptReset)
	if err != nil || !ok {
		return &Result{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return d.apply(ctx, "reset", d.engine.ResetToDefaults(d.state()))
}

// ========== Edit Session ==========

func (d *dashboardImpl) OpenCreate() EditSession {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.session = EditSession{Open: true}
	return d.session
}

func (d *dashboardImpl) OpenEdit(taskID string) (EditSession, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	task, ok := d.store.FindActive(taskID)
	if !ok {
		d.session = EditSession{}
		return d.session, errors.NewNotFoundError("task", taskID)
	}
	d.session = EditSession{Open: true, Task: &task}
	return d.session, nil
}

func (d *dashboardImpl) CloseSession() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.session = EditSession{}
}

func (d *dashboardImpl) DraftTask() domain.Task {
	today := d.clock.Now().Format(validation.DateLayout)
	return domain.Task{
		Country:   domain.CountryRegional,
		Priority:  domain.PriorityMedium,
		StartDate: today,
		DueDate:   today,
		Status:    domain.StatusPending,
	}
}

func (d *dashboardImpl) ResolveTaskID(ref string) (string, error) {
	if err := d.taskValidator.ValidateTaskID(ref); err != nil {
		return "", errors.NewValidationError("invalid task ID", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var matches []string
	for _, task := range d.store.Active() {
		if task.ID == ref {
			return ref, nil
		}
		if strings.HasPrefix(task.ID, ref) {
			matches = append(matches, task.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", errors.NewNotFoundError("active task", ref)
	case 1:
		return matches[0], nil
	default:
		return "", errors.NewInvalidInputError("task ID", ref,
			fmt.Sprintf("prefix matches %d active tasks, use more characters", len(matches)))
	}
}

// ========== Notifications and Theme ==========

func (d *dashboardImpl) DismissNotification(id string) bool {
	return d.notifications.Dismiss(id)
}

func (d *dashboardImpl) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := d.theme.Toggle()
	if err := d.saveTheme(ctx, next); err != nil {
		return d.theme, err
	}
	return next, nil
}

func (d *dashboardImpl) SetTheme(ctx context.Context, theme domain.Theme) error {
	if _, err := domain.ParseTheme(string(theme)); err != nil {
		return errors.NewInvalidInputError("theme", theme, "must be light or dark")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return d.saveTheme(ctx, theme)
}

func (d *dashboardImpl) saveTheme(ctx context.Context, theme domain.Theme) error {
	saveCtx, cancel := d.storageContext(ctx)
	defer cancel()

	if err := d.repo.SaveTheme(saveCtx, theme); err != nil {
		return err
	}
	d.theme = theme
	return nil
}

// ========== Views ==========

func (d *dashboardImpl) Active() []domain.Task {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.Active()
}

func (d *dashboardImpl) History() []domain.Task {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.History()
}

func (d *dashboardImpl) Metrics() services.Metrics {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reporting.Compute(d.state())
}

func (d *dashboardImpl) Notifications() []domain.Notification {
	return d.notifications.List()
}

func (d *dashboardImpl) Session() EditSession {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session
}

func (d *dashboardImpl) Theme() domain.Theme {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.theme
}

func (d *dashboardImpl) Snapshot() Snapshot {
	d.mu.Lock()
	state := d.state()
	snap := Snapshot{
		Active:  state.Active,
		History: state.History,
		Metrics: d.reporting.Compute(state),
		Session: d.session,
		Theme:   d.theme,
	}
	d.mu.Unlock()

	snap.Notifications = d.notifications.List()
	return snap
}

func (d *dashboardImpl) Close() error {
	d.notifications.Close()
	return d.gateway.Close()
}

func userMessage(err error) string {
	if ve, ok := err.(*validation.ValidationError); ok {
		return ve.GetUserFriendlyMessage()
	}
	return err.Error()
}
