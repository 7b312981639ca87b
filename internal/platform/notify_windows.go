//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

const toastScript = `[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null; ` +
	`$xml = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::%s); ` +
	`$texts = $xml.GetElementsByTagName("text"); ` +
	`$texts.Item(0).AppendChild($xml.CreateTextNode(%s)) > $null; ` +
	`$texts.Item(1).AppendChild($xml.CreateTextNode(%s)) > $null; ` +
	`%s` +
	`$toast = [Windows.UI.Notifications.ToastNotification]::new($xml); ` +
	`%s` +
	`[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s).Show($toast);`

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Notify shows a toast through PowerShell. Tagged toasts replace each other.
func Notify(title, body string, opts Options) error {
	layout, image, tag := "ToastText02", "", ""
	if icon := strings.TrimSpace(opts.IconPath); icon != "" {
		layout = "ToastImageAndText02"
		image = fmt.Sprintf(`$xml.GetElementsByTagName("image").Item(0).SetAttribute("src", %s); `, psQuote(icon))
	}
	if opts.Tag != "" {
		tag = fmt.Sprintf("$toast.Tag = %s; ", psQuote(opts.Tag))
	}
	script := fmt.Sprintf(toastScript, layout, psQuote(title), psQuote(body), image, tag, psQuote(AppName))
	return exec.Command("powershell.exe", "-NoProfile", "-Command", script).Run()
}
