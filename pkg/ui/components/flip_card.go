package components

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// CardColors are the colors a FlipCard is drawn with
type CardColors struct {
	Background color.Color
	Foreground color.Color
	Alert      color.Color
	Border     color.Color
	Shadow     color.Color
}

const (
	cardWidth    = 112
	cardHeight   = 152
	shadowOffset = 8
	flipDuration = 180 * time.Millisecond
)

// FlipCard shows a two-character value on a card and slides the old value
// out when it changes.
type FlipCard struct {
	widget.BaseWidget

	Text     string
	Alert    bool
	TextSize float32
	Colors   CardColors

	previous  string
	progress  float32 // 1 when no flip is running
	animation *fyne.Animation
}

// NewFlipCard creates a card showing text
func NewFlipCard(text string, colors CardColors) *FlipCard {
	c := &FlipCard{
		Text:     text,
		TextSize: 90,
		Colors:   colors,
		progress: 1,
	}
	c.ExtendBaseWidget(c)
	return c
}

// SetValue updates the card, animating when the text changes.
// Must be called on the UI thread.
func (c *FlipCard) SetValue(text string, alert bool) {
	changed := text != c.Text
	c.Alert = alert
	if !changed {
		c.Refresh()
		return
	}

	c.previous = c.Text
	c.Text = text
	if c.animation != nil {
		c.animation.Stop()
	}

	c.progress = 0
	c.animation = fyne.NewAnimation(flipDuration, func(p float32) {
		c.progress = p
		c.Refresh()
	})
	c.animation.Curve = fyne.AnimationEaseOut
	c.animation.Start()
}

// CreateRenderer implements fyne.Widget
func (c *FlipCard) CreateRenderer() fyne.WidgetRenderer {
	shadow := canvas.NewRectangle(c.Colors.Shadow)
	card := canvas.NewRectangle(c.Colors.Background)
	card.StrokeColor = c.Colors.Border
	card.StrokeWidth = 3
	card.CornerRadius = 6

	current := canvas.NewText(c.Text, c.Colors.Foreground)
	current.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	current.Alignment = fyne.TextAlignCenter
	old := canvas.NewText("", c.Colors.Foreground)
	old.TextStyle = current.TextStyle
	old.Alignment = fyne.TextAlignCenter

	r := &flipCardRenderer{card: c, shadow: shadow, bg: card, current: current, old: old}
	r.Refresh()
	return r
}

type flipCardRenderer struct {
	card    *FlipCard
	shadow  *canvas.Rectangle
	bg      *canvas.Rectangle
	current *canvas.Text
	old     *canvas.Text
}

func (r *flipCardRenderer) Layout(size fyne.Size) {
	inner := fyne.NewSize(size.Width-shadowOffset, size.Height-shadowOffset)
	r.shadow.Resize(inner)
	r.shadow.Move(fyne.NewPos(shadowOffset, shadowOffset))
	r.bg.Resize(inner)
	r.bg.Move(fyne.NewPos(0, 0))

	// The outgoing value drops a third of the card while fading out and the
	// incoming one settles from above.
	travel := inner.Height / 3
	p := r.card.progress
	textSize := fyne.NewSize(inner.Width, inner.Height)
	r.old.Resize(textSize)
	r.old.Move(fyne.NewPos(0, travel*p))
	r.current.Resize(textSize)
	r.current.Move(fyne.NewPos(0, -travel*(1-p)))
}

func (r *flipCardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(cardWidth+shadowOffset, cardHeight+shadowOffset)
}

func (r *flipCardRenderer) Refresh() {
	c := r.card
	fg := c.Colors.Foreground
	if c.Alert {
		fg = c.Colors.Alert
	}

	r.shadow.FillColor = c.Colors.Shadow
	r.bg.FillColor = c.Colors.Background
	r.bg.StrokeColor = c.Colors.Border

	r.current.Text = c.Text
	r.current.TextSize = c.TextSize
	r.current.Color = withAlpha(fg, c.progress)

	r.old.Text = c.previous
	r.old.TextSize = c.TextSize
	r.old.Color = withAlpha(fg, 1-c.progress)
	r.old.Hidden = c.progress >= 1

	r.Layout(c.Size())
	r.shadow.Refresh()
	r.bg.Refresh()
	r.old.Refresh()
	r.current.Refresh()
}

func (r *flipCardRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.shadow, r.bg, r.old, r.current}
}

func (r *flipCardRenderer) Destroy() {
	if r.card.animation != nil {
		r.card.animation.Stop()
	}
}

func withAlpha(c color.Color, a float32) color.Color {
	if a >= 1 {
		return c
	}
	if a < 0 {
		a = 0
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float32(n.A) * a)
	return n
}
