package profiles

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAppearance(t *testing.T) {
	a := DefaultAppearance()

	assert.Equal(t, "#ffffff", a.BackgroundColor)
	assert.Equal(t, "#000000", a.PageTextColor)
	assert.Equal(t, "#F3F4F6", a.ButtonColor)
	assert.Equal(t, "#000000", a.ButtonTextColor)
	assert.Equal(t, "solid", a.ButtonStyle)
	assert.Equal(t, "rounder", a.ButtonRoundness)
	assert.Equal(t, "fill", a.WallpaperStyle)
}

func TestAppearanceUnknownKeyPassthrough(t *testing.T) {
	payload := []byte(`{
		"backgroundColor": "#123456",
		"buttonStyle": "outline",
		"sparkleMode": "maximum",
		"confetti": {"density": 9}
	}`)

	var a AppearanceSettings
	require.NoError(t, json.Unmarshal(payload, &a))

	assert.Equal(t, "#123456", a.BackgroundColor)
	assert.Equal(t, "outline", a.ButtonStyle)
	assert.Equal(t, "maximum", a.Extra["sparkleMode"])
	assert.Contains(t, a.Extra, "confetti")

	// Round trip keeps both typed and unknown keys.
	out, err := json.Marshal(a)
	require.NoError(t, err)

	var roundTripped map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &roundTripped))
	assert.Equal(t, "#123456", roundTripped["backgroundColor"])
	assert.Equal(t, "maximum", roundTripped["sparkleMode"])
	assert.Contains(t, roundTripped, "confetti")
}

func TestAppearanceScan(t *testing.T) {
	t.Run("loads stored JSON", func(t *testing.T) {
		var a AppearanceSettings
		require.NoError(t, a.Scan(`{"backgroundColor":"#fafafa","custom":"x"}`))
		assert.Equal(t, "#fafafa", a.BackgroundColor)
		assert.Equal(t, "x", a.Extra["custom"])
	})

	t.Run("nil and empty values scan to zero settings", func(t *testing.T) {
		var a AppearanceSettings
		require.NoError(t, a.Scan(nil))
		assert.Empty(t, a.BackgroundColor)

		require.NoError(t, a.Scan(""))
		assert.Empty(t, a.BackgroundColor)
	})

	t.Run("malformed JSON errors", func(t *testing.T) {
		var a AppearanceSettings
		assert.Error(t, a.Scan("{not json"))
	})
}

func TestAppearanceValueRoundTrip(t *testing.T) {
	a := DefaultAppearance()
	a.Extra = map[string]interface{}{"futureOption": true}

	value, err := a.Value()
	require.NoError(t, err)

	var loaded AppearanceSettings
	require.NoError(t, loaded.Scan(value))
	assert.Equal(t, a.BackgroundColor, loaded.BackgroundColor)
	assert.Equal(t, true, loaded.Extra["futureOption"])
}
