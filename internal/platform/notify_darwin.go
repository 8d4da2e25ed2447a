//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify displays a notification through Notification Center.
func Notify(title, body string, _ Options) error {
	script := fmt.Sprintf("display notification %q with title %q subtitle %q", body, title, AppName)
	if out, err := exec.Command("osascript", "-e", script).CombinedOutput(); err != nil {
		return fmt.Errorf("osascript: %w: %s", err, out)
	}
	return nil
}
