package components

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColors = CardColors{
	Background: color.NRGBA{R: 0x22, G: 0x23, B: 0x25, A: 0xff},
	Foreground: color.White,
	Alert:      color.NRGBA{R: 0xff, G: 0xd6, A: 0xff},
	Border:     color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff},
	Shadow:     color.Black,
}

func TestFlipClockSet(t *testing.T) {
	test.NewTempApp(t)

	fc := NewFlipClock(testColors, color.White)
	w := test.NewWindow(fc.Content())
	defer w.Close()

	fc.set(14, 30, false)
	assert.Equal(t, "14", fc.Minutes.Text)
	assert.Equal(t, "30", fc.Seconds.Text)
	assert.False(t, fc.Minutes.Alert)

	fc.set(0, 0, true)
	assert.Equal(t, "00", fc.Minutes.Text)
	assert.Equal(t, "00", fc.Seconds.Text)
	assert.True(t, fc.Seconds.Alert)
}

func TestFlipCardKeepsPreviousValueForAnimation(t *testing.T) {
	test.NewTempApp(t)

	c := NewFlipCard("05", testColors)
	w := test.NewWindow(c)
	defer w.Close()

	c.SetValue("04", false)
	assert.Equal(t, "04", c.Text)
	assert.Equal(t, "05", c.previous)

	// Same text only restyles
	c.SetValue("04", true)
	assert.Equal(t, "05", c.previous)
	assert.True(t, c.Alert)
}

func TestFlipCardMinSize(t *testing.T) {
	test.NewTempApp(t)

	c := NewFlipCard("00", testColors)
	size := c.MinSize()
	assert.Equal(t, float32(cardWidth+shadowOffset), size.Width)
	assert.Equal(t, float32(cardHeight+shadowOffset), size.Height)
}

func TestWithAlpha(t *testing.T) {
	assert.Equal(t, color.White, withAlpha(color.White, 1))

	half := withAlpha(color.White, 0.5).(color.NRGBA)
	assert.Equal(t, uint8(127), half.A)
	assert.Equal(t, uint8(0), withAlpha(color.White, -1).(color.NRGBA).A)
}

func TestMinuteList(t *testing.T) {
	test.NewTempApp(t)

	var changes [][]int
	ml, content := NewMinuteList([]int{30, 0, 30, 75}, func(m []int) {
		changes = append(changes, m)
	})
	w := test.NewWindow(content)
	defer w.Close()

	assert.Equal(t, []int{0, 30}, ml.Minutes())

	ml.Add(15)
	ml.Add(15)
	ml.Add(60)
	assert.Equal(t, []int{0, 15, 30}, ml.Minutes())
	require.Len(t, changes, 1)

	ml.Select(1)
	ml.RemoveSelected()
	assert.Equal(t, []int{0, 30}, ml.Minutes())
	require.Len(t, changes, 2)
	assert.Equal(t, []int{0, 30}, changes[1])

	// Nothing selected any more
	ml.RemoveSelected()
	assert.Len(t, changes, 2)
}

func TestParseMinute(t *testing.T) {
	m, err := ParseMinute(":05")
	require.NoError(t, err)
	assert.Equal(t, 5, m)
	assert.Equal(t, ":05", FormatMinute(5))

	_, err = ParseMinute(":75")
	assert.Error(t, err)
	_, err = ParseMinute("half")
	assert.Error(t, err)
}
