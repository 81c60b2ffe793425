package components

import (
	"fmt"
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// MinuteList edits a set of minutes of the hour (0-59) with a picker to
// add entries and a button to remove the selected one.
type MinuteList struct {
	list        *widget.List
	picker      *widget.Select
	data        []int
	selectedIdx int
	onChange    func([]int)
}

// NewMinuteList creates a list holding minutes. onChange is called with the
// sorted minutes after every edit.
func NewMinuteList(minutes []int, onChange func([]int)) (*MinuteList, *fyne.Container) {
	ml := &MinuteList{
		data:        normalizeMinutes(minutes),
		selectedIdx: -1,
		onChange:    onChange,
	}

	ml.list = widget.NewList(
		func() int {
			return len(ml.data)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i < len(ml.data) {
				o.(*widget.Label).SetText(FormatMinute(ml.data[i]))
			}
		})

	ml.list.OnSelected = func(id widget.ListItemID) {
		ml.selectedIdx = id
	}

	options := make([]string, 0, 12)
	for m := 0; m < 60; m += 5 {
		options = append(options, FormatMinute(m))
	}
	ml.picker = widget.NewSelect(options, nil)
	ml.picker.PlaceHolder = "Add minute..."

	plusButton := widget.NewButton("", func() {
		if ml.picker.Selected == "" {
			return
		}
		if m, err := ParseMinute(ml.picker.Selected); err == nil {
			ml.Add(m)
		}
		ml.picker.ClearSelected()
	})
	plusButton.Icon = theme.ContentAddIcon()

	minusButton := widget.NewButton("", func() {
		ml.RemoveSelected()
	})
	minusButton.Icon = theme.ContentRemoveIcon()

	addControls := container.NewBorder(nil, nil, nil,
		container.NewHBox(plusButton, minusButton),
		ml.picker)

	listScroll := container.NewScroll(ml.list)
	listScroll.SetMinSize(fyne.NewSize(0, 120))

	listWithBorder := container.NewBorder(
		widget.NewSeparator(),
		widget.NewSeparator(),
		widget.NewSeparator(),
		widget.NewSeparator(),
		listScroll,
	)

	return ml, container.NewVBox(listWithBorder, addControls)
}

// Minutes returns the current sorted minutes
func (ml *MinuteList) Minutes() []int {
	return append([]int(nil), ml.data...)
}

// Add inserts a minute, ignoring duplicates and out of range values
func (ml *MinuteList) Add(minute int) {
	if minute < 0 || minute > 59 {
		return
	}
	for _, m := range ml.data {
		if m == minute {
			return
		}
	}
	ml.data = normalizeMinutes(append(ml.data, minute))
	ml.list.Refresh()
	ml.changed()
}

// RemoveSelected removes the currently selected minute
func (ml *MinuteList) RemoveSelected() {
	if ml.selectedIdx >= 0 && ml.selectedIdx < len(ml.data) {
		ml.data = append(ml.data[:ml.selectedIdx], ml.data[ml.selectedIdx+1:]...)
		ml.list.UnselectAll()
		ml.selectedIdx = -1
		ml.list.Refresh()
		ml.changed()
	}
}

// Select marks the entry at index i as selected
func (ml *MinuteList) Select(i int) {
	ml.list.Select(i)
}

func (ml *MinuteList) changed() {
	if ml.onChange != nil {
		ml.onChange(ml.Minutes())
	}
}

// FormatMinute renders a minute of the hour as ":MM"
func FormatMinute(m int) string {
	return fmt.Sprintf(":%02d", m)
}

// ParseMinute is the inverse of FormatMinute
func ParseMinute(s string) (int, error) {
	if len(s) > 0 && s[0] == ':' {
		s = s[1:]
	}
	m, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if m < 0 || m > 59 {
		return 0, fmt.Errorf("minute %d out of range", m)
	}
	return m, nil
}

func normalizeMinutes(minutes []int) []int {
	seen := make(map[int]bool)
	out := make([]int, 0, len(minutes))
	for _, m := range minutes {
		if m >= 0 && m <= 59 && !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Ints(out)
	return out
}
