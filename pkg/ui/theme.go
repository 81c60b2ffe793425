package ui

import (
	"image/color"

	"github.com/borgmon/flip-alarm/pkg/models"
	"github.com/borgmon/flip-alarm/pkg/ui/components"
)

// palette is a models.Theme resolved to colors
type palette struct {
	background color.Color
	divider    color.Color
	statusOn   color.Color
	statusOff  color.Color
	cards      components.CardColors
}

func newPalette(t models.Theme) palette {
	d := models.DefaultTheme()
	c := func(v, fallback string) color.Color {
		return models.ParseHexColor(v, models.ParseHexColor(fallback, color.Black))
	}

	return palette{
		background: c(t.Background, d.Background),
		divider:    c(t.Divider, d.Divider),
		statusOn:   c(t.StatusOn, d.StatusOn),
		statusOff:  c(t.StatusOff, d.StatusOff),
		cards: components.CardColors{
			Background: c(t.CardBackground, d.CardBackground),
			Foreground: c(t.CardForeground, d.CardForeground),
			Alert:      c(t.CardAlert, d.CardAlert),
			Border:     c(t.CardBorder, d.CardBorder),
			Shadow:     c(t.CardShadow, d.CardShadow),
		},
	}
}
