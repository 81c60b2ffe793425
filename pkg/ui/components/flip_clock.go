package components

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
)

// FlipClock is a minutes:seconds pair of flip cards. It satisfies
// alarm.Display and may be updated from any goroutine.
type FlipClock struct {
	Minutes *FlipCard
	Seconds *FlipCard
	colon   *canvas.Text

	content *fyne.Container
}

// NewFlipClock creates a clock showing 00:00
func NewFlipClock(colors CardColors, divider color.Color) *FlipClock {
	fc := &FlipClock{
		Minutes: NewFlipCard("00", colors),
		Seconds: NewFlipCard("00", colors),
		colon:   canvas.NewText(":", divider),
	}
	fc.colon.TextSize = 80
	fc.colon.TextStyle = fyne.TextStyle{Bold: true}

	fc.content = container.NewHBox(
		layout.NewSpacer(),
		fc.Minutes,
		container.NewCenter(fc.colon),
		fc.Seconds,
		layout.NewSpacer(),
	)
	return fc
}

// Content returns the canvas object to place in a window
func (fc *FlipClock) Content() fyne.CanvasObject {
	return fc.content
}

// SetTime implements alarm.Display. The update is queued on the UI thread.
func (fc *FlipClock) SetTime(minutes, seconds int, alert bool) {
	fyne.Do(func() {
		fc.set(minutes, seconds, alert)
	})
}

func (fc *FlipClock) set(minutes, seconds int, alert bool) {
	fc.Minutes.SetValue(fmt.Sprintf("%02d", minutes), alert)
	fc.Seconds.SetValue(fmt.Sprintf("%02d", seconds), alert)
}

// SetColors restyles both cards and the divider
func (fc *FlipClock) SetColors(colors CardColors, divider color.Color) {
	fyne.Do(func() {
		fc.Minutes.Colors = colors
		fc.Seconds.Colors = colors
		fc.Minutes.Refresh()
		fc.Seconds.Refresh()
		fc.colon.Color = divider
		fc.colon.Refresh()
	})
}
