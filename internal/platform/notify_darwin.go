//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify posts to Notification Center through osascript. Critical
// notifications play the default sound.
func Notify(title, body string, opts Options) error {
	script := fmt.Sprintf("display notification %q with title %q subtitle %q", body, AppName, title)
	if opts.Urgency == UrgencyCritical {
		script += ` sound name "default"`
	}
	return exec.Command("osascript", "-e", script).Run()
}
