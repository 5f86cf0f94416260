package notify

import "github.com/godbus/dbus/v5"

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = "/org/freedesktop/Notifications"
)

// notifyArgs builds the arguments of the Notify method:
// app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout.
func notifyArgs(opts Options, n Notification) []any {
	icon := n.Icon
	if icon == "" {
		icon = opts.Icon
	}
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(opts.DesktopEntry),
	}
	return []any{
		opts.AppName,
		n.ReplacesID,
		icon,
		n.Title,
		n.Body,
		[]string{},
		hints,
		n.Timeout,
	}
}
