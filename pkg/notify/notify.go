package notify

import (
	"log"
	"runtime"
	"time"

	"fyne.io/fyne/v2"

	"github.com/borgmon/flip-alarm/pkg/alarm"
)

// New returns the freedesktop notifier when a session bus is reachable and
// falls back to Fyne's notification API otherwise.
func New(app fyne.App) alarm.Notifier {
	if runtime.GOOS == "linux" {
		n, err := NewDBusNotifier(app.Metadata().Name)
		if err == nil {
			return n
		}
		log.Printf("D-Bus notifications unavailable, using Fyne: %v", err)
	}
	return &FyneNotifier{app: app}
}

// FyneNotifier sends notifications through the Fyne driver. The driver
// decides how long the toast stays visible.
type FyneNotifier struct {
	app fyne.App
}

func NewFyneNotifier(app fyne.App) *FyneNotifier {
	return &FyneNotifier{app: app}
}

func (n *FyneNotifier) Notify(title, message string, timeout time.Duration) error {
	n.app.SendNotification(fyne.NewNotification(title, message))
	return nil
}
