package platform

import "time"

// AppName is reported to the host notification service.
const AppName = "Easel"

// DefaultTimeout is how long a notification stays visible when Options does
// not say otherwise.
const DefaultTimeout = 5 * time.Second

// Urgency follows the freedesktop urgency levels.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath points to an image shown with the notification where supported.
	IconPath string
	// Timeout overrides DefaultTimeout where the platform supports it.
	Timeout time.Duration
	// Tag groups notifications. A new notification replaces the previous one
	// with the same tag on hosts that can do so.
	Tag     string
	Urgency Urgency
}

func (o Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return DefaultTimeout
}
