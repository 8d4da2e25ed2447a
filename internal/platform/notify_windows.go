//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// toastScript builds a PowerShell snippet that raises a toast. The image
// template is used when an icon is available.
func toastScript(title, body, icon string) string {
	tmpl := "ToastText02"
	if icon != "" {
		tmpl = "ToastImageAndText02"
	}
	var b strings.Builder
	b.WriteString(`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null; `)
	fmt.Fprintf(&b, `$t = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::%s); `, tmpl)
	b.WriteString(`$x = $t.GetElementsByTagName("text"); `)
	fmt.Fprintf(&b, `$x.Item(0).AppendChild($t.CreateTextNode(%s)) > $null; `, psQuote(title))
	fmt.Fprintf(&b, `$x.Item(1).AppendChild($t.CreateTextNode(%s)) > $null; `, psQuote(body))
	if icon != "" {
		fmt.Fprintf(&b, `$t.GetElementsByTagName("image").Item(0).SetAttribute("src", %s); `, psQuote(icon))
	}
	fmt.Fprintf(&b, `[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s).Show([Windows.UI.Notifications.ToastNotification]::new($t));`, psQuote(AppName))
	return b.String()
}

// Notify displays a toast through the Windows notification center.
func Notify(title, body string, opts Options) error {
	script := toastScript(title, body, strings.TrimSpace(opts.IconPath))
	if err := exec.Command("powershell.exe", "-NoProfile", "-Command", script).Run(); err != nil {
		return fmt.Errorf("powershell toast: %w", err)
	}
	return nil
}
