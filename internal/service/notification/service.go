package notification

import (
	"sync"
	"time"

	"crm-client/internal/domain/notification"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Broadcaster pushes notification changes to connected consoles. It is
// called with the service lock held and must not block or call back.
type Broadcaster interface {
	BroadcastNotification(n *notification.Notification)
	BroadcastNotificationHidden(id string)
}

// NotificationService holds the one notification currently on screen. A new
// notification replaces the old one; there is no queue.
type NotificationService struct {
	mu              sync.Mutex
	current         *notification.Notification
	timer           *time.Timer
	defaultDuration time.Duration
	broadcaster     Broadcaster
	logger          *zap.Logger
}

func NewNotificationService(defaultDuration time.Duration, broadcaster Broadcaster, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		defaultDuration: defaultDuration,
		broadcaster:     broadcaster,
		logger:          logger,
	}
}

// Show replaces the current notification and arms its auto-dismiss timer.
func (s *NotificationService) Show(message string, severity notification.Severity, opts notification.Options) notification.Notification {
	duration := opts.Duration
	if duration <= 0 {
		duration = s.defaultDuration
	}
	n := &notification.Notification{
		ID:        ulid.Make().String(),
		Message:   message,
		Type:      severity,
		Title:     opts.Title,
		Duration:  duration.Milliseconds(),
		AutoHide:  !opts.KeepOpen,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.current = n
	if n.AutoHide {
		id := n.ID
		s.timer = time.AfterFunc(duration, func() { s.expire(id) })
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastNotification(n)
	}
	s.mu.Unlock()

	s.logger.Debug("notification shown",
		zap.String("id", n.ID),
		zap.String("type", string(n.Type)),
		zap.String("message", n.Message),
	)
	return *n
}

func (s *NotificationService) Success(message string) notification.Notification {
	return s.Show(message, notification.SeveritySuccess, notification.Options{})
}

func (s *NotificationService) Error(message string) notification.Notification {
	return s.Show(message, notification.SeverityError, notification.Options{})
}

func (s *NotificationService) Warning(message string) notification.Notification {
	return s.Show(message, notification.SeverityWarning, notification.Options{})
}

func (s *NotificationService) Info(message string) notification.Notification {
	return s.Show(message, notification.SeverityInfo, notification.Options{})
}

// Hide clears the current notification, if any.
func (s *NotificationService) Hide() {
	s.Dismiss("")
}

// Dismiss hides the notification with the given id. An empty id dismisses
// whatever is showing. It reports whether anything was hidden.
func (s *NotificationService) Dismiss(id string) bool {
	s.mu.Lock()
	if s.current == nil || (id != "" && s.current.ID != id) {
		s.mu.Unlock()
		return false
	}
	id = s.current.ID
	s.current = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastNotificationHidden(id)
	}
	s.mu.Unlock()
	return true
}

// expire hides the notification only if it is still the one on screen.
func (s *NotificationService) expire(id string) {
	s.mu.Lock()
	if s.current == nil || s.current.ID != id {
		s.mu.Unlock()
		return
	}
	s.current = nil
	s.timer = nil
	if s.broadcaster != nil {
		s.broadcaster.BroadcastNotificationHidden(id)
	}
	s.mu.Unlock()
}

func (s *NotificationService) Current() (notification.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return notification.Notification{}, false
	}
	return *s.current, true
}
