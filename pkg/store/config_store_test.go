package store

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/borgmon/flip-alarm/pkg/models"
)

func TestLoadDefaults(t *testing.T) {
	app := test.NewTempApp(t)

	config := NewConfigStore(app).Load()
	assert.Equal(t, models.DefaultConfig(), config)
}

func TestSaveAndLoad(t *testing.T) {
	app := test.NewTempApp(t)
	cs := NewConfigStore(app)

	config := models.DefaultConfig()
	config.Mode = "interval"
	config.IntervalMinutes = 25
	config.SoundPath = "/home/me/bell.wav"
	config.HideOnClose = true
	config.ToggleHotkey = true
	config.Theme.CardAlert = "#FF0000"
	cs.Save(config)

	assert.Equal(t, config, cs.Load())
}

func TestLoadRepairsInvalidSchedule(t *testing.T) {
	app := test.NewTempApp(t)
	prefs := app.Preferences()
	prefs.SetString("mode", "aligned")
	prefs.SetString("boundary_minutes", "99")
	prefs.SetString("title", "Stretch")

	config := NewConfigStore(app).Load()
	assert.NoError(t, config.Validate())
	assert.Equal(t, "0,30", config.BoundaryMinutes)
	assert.Equal(t, "Stretch", config.Title, "unrelated settings survive")
}

func TestLoadBadThemeJSON(t *testing.T) {
	app := test.NewTempApp(t)
	app.Preferences().SetString("theme", "{not json")

	config := NewConfigStore(app).Load()
	assert.Equal(t, models.DefaultTheme(), config.Theme)
}
