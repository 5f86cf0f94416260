//go:build linux

package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// dbusNotifier talks to the session's org.freedesktop.Notifications server.
type dbusNotifier struct {
	obj  dbus.BusObject
	opts Options
}

// New connects to the notification server on the session bus.
// It fails when there is no session bus, so callers can disable
// notifications instead of sending into the void.
func New(opts Options) (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("session bus: %w", err)
	}
	return &dbusNotifier{
		obj:  conn.Object(busName, objectPath),
		opts: opts.withDefaults(),
	}, nil
}

func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	var id uint32
	err := n.obj.Call(busName+".Notify", 0, notifyArgs(n.opts, notif)...).Store(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (n *dbusNotifier) Close(id uint32) error {
	return n.obj.Call(busName+".CloseNotification", 0, id).Err
}
