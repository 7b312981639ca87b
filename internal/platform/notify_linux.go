//go:build linux

package platform

import (
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest  = "org.freedesktop.Notifications"
	notifyPath  = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyShow  = notifyDest + ".Notify"
	imagePathHi = "image-path"
)

var (
	replaceMu  sync.Mutex
	replaceIDs = map[string]uint32{}
)

// Notify sends a freedesktop notification over the session bus. Tagged
// notifications reuse the server id of the last one with the same tag.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{"urgency": dbus.MakeVariant(byte(opts.Urgency))}
	if opts.IconPath != "" {
		hints[imagePathHi] = dbus.MakeVariant(opts.IconPath)
	}
	replaceMu.Lock()
	replaces := replaceIDs[opts.Tag]
	replaceMu.Unlock()

	var id uint32
	err = conn.Object(notifyDest, notifyPath).Call(notifyShow, 0,
		AppName, replaces, opts.IconPath, title, body, []string{}, hints,
		int32(opts.timeout().Milliseconds())).Store(&id)
	if err != nil {
		return err
	}
	if opts.Tag != "" {
		replaceMu.Lock()
		replaceIDs[opts.Tag] = id
		replaceMu.Unlock()
	}
	return nil
}
