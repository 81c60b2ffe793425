package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsName      = "org.freedesktop.Notifications"
	notificationsPath      = "/org/freedesktop/Notifications"
	notificationsInterface = "org.freedesktop.Notifications"
)

// busObject is the subset of dbus.BusObject used here
type busObject interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// DBusNotifier talks to the freedesktop notification daemon directly so the
// expire timeout is honored.
type DBusNotifier struct {
	appName string
	obj     busObject

	mu     sync.Mutex
	lastID uint32 // replaced by the next notification
}

// NewDBusNotifier connects to the session bus
func NewDBusNotifier(appName string) (*DBusNotifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}

	obj := conn.Object(notificationsName, notificationsPath)
	if err := obj.Call("org.freedesktop.DBus.Peer.Ping", 0).Err; err != nil {
		conn.Close()
		return nil, fmt.Errorf("notification daemon not running: %w", err)
	}

	return &DBusNotifier{appName: appName, obj: obj}, nil
}

func (n *DBusNotifier) Notify(title, message string, timeout time.Duration) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	call := n.obj.Call(notificationsInterface+".Notify", 0,
		n.appName,
		n.lastID,
		"alarm-symbolic",
		title,
		message,
		[]string{},
		map[string]dbus.Variant{
			"urgency":  dbus.MakeVariant(byte(2)),
			"category": dbus.MakeVariant("alarm"),
		},
		int32(timeout/time.Millisecond),
	)
	if call.Err != nil {
		return fmt.Errorf("dbus notify: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("dbus notify reply: %w", err)
	}
	n.lastID = id
	return nil
}
