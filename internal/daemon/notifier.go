package daemon

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/bezel/internal/dbus"
)

// NotificationLevel indicates the urgency/severity of a notification.
type NotificationLevel int

const (
	// NotificationLevelInfo is for informational messages (low urgency).
	NotificationLevelInfo NotificationLevel = iota
	// NotificationLevelWarning is for warning messages (normal urgency).
	NotificationLevelWarning
	// NotificationLevelError is for error messages (critical urgency).
	NotificationLevelError
)

// Sender delivers a desktop notification.
type Sender interface {
	Send(n *dbus.Notification) (uint32, error)
}

// Notifier sends desktop notifications about bezeld events, rate limited per
// key so a flapping config file cannot flood the desktop.
type Notifier struct {
	mu     sync.Mutex
	logger *slog.Logger
	sender Sender
	now    func() time.Time

	// Rate limiting
	lastNotifyTime map[string]time.Time // key -> last notification time
	minInterval    time.Duration        // minimum time between same notifications

	enabled bool
}

// NewNotifier creates a Notifier. A nil sender only logs.
func NewNotifier(sender Sender, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		logger:         logger,
		sender:         sender,
		now:            time.Now,
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    5 * time.Second,
		enabled:        true,
	}
}

// SetEnabled enables or disables notifications.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// SetMinInterval sets the minimum interval between notifications with the
// same key.
func (n *Notifier) SetMinInterval(interval time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minInterval = interval
}

// Notify sends a notification unless one with the same key went out within
// the minimum interval. It reports whether anything was sent.
func (n *Notifier) Notify(key, summary, body string, level NotificationLevel) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.enabled {
		return false
	}
	if n.sender == nil {
		n.logger.Debug("notification skipped: no sender", "summary", summary)
		return false
	}

	now := n.now()
	if last, ok := n.lastNotifyTime[key]; ok && now.Sub(last) < n.minInterval {
		n.logger.Debug("notification rate-limited", "key", key, "summary", summary)
		return false
	}
	n.lastNotifyTime[key] = now

	notification := &dbus.Notification{
		AppName:       "bezel",
		Summary:       summary,
		Body:          body,
		AppIcon:       levelIcon(level),
		ExpireTimeout: 5000,
	}
	notification.SetHint("urgency", levelUrgency(level))
	notification.SetHint("transient", level == NotificationLevelInfo)
	notification.SetHint("desktop-entry", "bezeld")

	n.logger.Debug("sending notification", "key", key, "summary", summary, "level", level)
	if _, err := n.sender.Send(notification); err != nil {
		n.logger.Warn("failed to send notification", "key", key, "error", err)
		return false
	}
	return true
}

func levelUrgency(level NotificationLevel) byte {
	switch level {
	case NotificationLevelInfo:
		return dbus.UrgencyLow
	case NotificationLevelError:
		return dbus.UrgencyCritical
	default:
		return dbus.UrgencyNormal
	}
}

func levelIcon(level NotificationLevel) string {
	switch level {
	case NotificationLevelWarning:
		return "dialog-warning"
	case NotificationLevelError:
		return "dialog-error"
	default:
		return "dialog-information"
	}
}

// NotifySessionComplete announces the end of a countdown session.
func (n *Notifier) NotifySessionComplete(minutes int) {
	n.Notify(
		"session-complete",
		"Focus session complete",
		fmt.Sprintf("Your %d minute session has finished.", minutes),
		NotificationLevelInfo,
	)
}

// NotifyConfigReloaded sends a notification about config being reloaded.
func (n *Notifier) NotifyConfigReloaded() {
	n.Notify(
		"config-reload",
		"Configuration Reloaded",
		"bezel configuration has been successfully reloaded.",
		NotificationLevelInfo,
	)
}

// NotifyConfigError sends a notification about config validation error.
func (n *Notifier) NotifyConfigError(err error) {
	n.Notify(
		"config-error",
		"Configuration Error",
		"Failed to reload configuration: "+err.Error(),
		NotificationLevelWarning,
	)
}

// NotifyAudioError sends a notification about chime playback error.
func (n *Notifier) NotifyAudioError(err error) {
	n.Notify(
		"audio-error",
		"Audio Error",
		"Failed to play chime: "+err.Error(),
		NotificationLevelWarning,
	)
}

