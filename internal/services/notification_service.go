package services

import (
	"sync"
	"time"

	"opdash/internal/domain"
	"opdash/internal/logging"
)

const (
	// DefaultNotificationLimit is the number of notifications kept visible
	DefaultNotificationLimit = 5

	// DefaultNotificationTTL is how long a notification stays visible
	DefaultNotificationTTL = 5 * time.Second
)

// notificationServiceImpl implements the NotificationService interface.
// Expiry callbacks run on scheduler goroutines, hence the mutex.
type notificationServiceImpl struct {
	mu        sync.Mutex
	items     []domain.Notification
	timers    map[string]Timer
	ids       IDGenerator
	scheduler Scheduler
	limit     int
	ttl       time.Duration
}

// NewNotificationService creates a notification center keeping at most limit
// entries, each expiring after ttl. Non-positive values use the defaults.
func NewNotificationService(ids IDGenerator, scheduler Scheduler, limit int, ttl time.Duration) NotificationService {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &notificationServiceImpl{
		timers:    make(map[string]Timer),
		ids:       ids,
		scheduler: scheduler,
		limit:     limit,
		ttl:       ttl,
	}
}

// Publish adds a notification at the front of the list and schedules its
// removal
func (n *notificationServiceImpl) Publish(event domain.Event) domain.Notification {
	note := domain.Notification{
		ID:       n.ids.NewID(),
		Message:  event.Message,
		Severity: event.Severity,
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.items = append([]domain.Notification{note}, n.items...)
	for len(n.items) > n.limit {
		dropped := n.items[len(n.items)-1]
		n.items = n.items[:len(n.items)-1]
		n.cancelLocked(dropped.ID)
	}

	id := note.ID
	n.timers[id] = n.scheduler.AfterFunc(n.ttl, func() { n.expire(id) })

	logging.Debugf("notification %s [%s] %s", id, note.Severity, note.Message)
	return note
}

// Dismiss removes a notification and cancels its expiry. It reports whether
// the notification was still live.
func (n *notificationServiceImpl) Dismiss(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.cancelLocked(id)
	return n.removeLocked(id)
}

// List returns the live notifications, newest first
func (n *notificationServiceImpl) List() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]domain.Notification, len(n.items))
	copy(out, n.items)
	return out
}

// Close cancels every pending expiry
func (n *notificationServiceImpl) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id := range n.timers {
		n.cancelLocked(id)
	}
}

// expire is the scheduled removal. Removing an id that is already gone is a
// no-op.
func (n *notificationServiceImpl) expire(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.timers, id)
	n.removeLocked(id)
}

func (n *notificationServiceImpl) cancelLocked(id string) {
	if timer, ok := n.timers[id]; ok {
		timer.Stop()
		delete(n.timers, id)
	}
}

func (n *notificationServiceImpl) removeLocked(id string) bool {
	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i:i], n.items[i+1:]...)
			return true
		}
	}
	return false
}
