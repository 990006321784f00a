package profiles

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// AppearanceSettings is the page presentation configuration. The recognized
// options are typed; anything else round-trips through Extra so older
// servers tolerate settings written by newer clients.
type AppearanceSettings struct {
	Layout          string                 `json:"layout,omitempty"`
	Theme           string                 `json:"theme,omitempty"`
	WallpaperStyle  string                 `json:"wallpaperStyle,omitempty"`
	BackgroundColor string                 `json:"backgroundColor,omitempty"`
	Font            string                 `json:"font,omitempty"`
	PageTextColor   string                 `json:"pageTextColor,omitempty"`
	TitleColor      string                 `json:"titleColor,omitempty"`
	ButtonStyle     string                 `json:"buttonStyle,omitempty"`
	ButtonRoundness string                 `json:"buttonRoundness,omitempty"`
	ButtonShadow    string                 `json:"buttonShadow,omitempty"`
	ButtonColor     string                 `json:"buttonColor,omitempty"`
	ButtonTextColor string                 `json:"buttonTextColor,omitempty"`
	HideFooter      *bool                  `json:"hideFooter,omitempty"`
	GoldWidget      map[string]interface{} `json:"goldWidget,omitempty"`
	MapWidget       map[string]interface{} `json:"mapWidget,omitempty"`

	// Extra carries unrecognized keys verbatim.
	Extra map[string]interface{} `json:"-"`
}

// recognizedKeys lists the documented appearance options.
var recognizedKeys = []string{
	"layout", "theme", "wallpaperStyle", "backgroundColor", "font",
	"pageTextColor", "titleColor", "buttonStyle", "buttonRoundness",
	"buttonShadow", "buttonColor", "buttonTextColor", "hideFooter",
	"goldWidget", "mapWidget",
}

// DefaultAppearance returns the palette seeded on every new profile.
func DefaultAppearance() AppearanceSettings {
	return AppearanceSettings{
		BackgroundColor: "#ffffff",
		PageTextColor:   "#000000",
		ButtonColor:     "#F3F4F6",
		ButtonTextColor: "#000000",
		ButtonStyle:     "solid",
		ButtonRoundness: "rounder",
		WallpaperStyle:  "fill",
	}
}

type appearanceAlias AppearanceSettings

// MarshalJSON merges the typed fields with the passthrough bucket. Typed
// fields win on key collision.
func (a AppearanceSettings) MarshalJSON() ([]byte, error) {
	typed, err := json.Marshal(appearanceAlias(a))
	if err != nil {
		return nil, err
	}

	merged := map[string]json.RawMessage{}
	for k, v := range a.Extra {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		merged[k] = raw
	}

	var typedMap map[string]json.RawMessage
	if err := json.Unmarshal(typed, &typedMap); err != nil {
		return nil, err
	}
	for k, v := range typedMap {
		merged[k] = v
	}

	return json.Marshal(merged)
}

// UnmarshalJSON fills the typed fields and keeps unrecognized keys in Extra.
func (a *AppearanceSettings) UnmarshalJSON(data []byte) error {
	var alias appearanceAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range recognizedKeys {
		delete(raw, k)
	}
	if len(raw) == 0 {
		raw = nil
	}

	*a = AppearanceSettings(alias)
	a.Extra = raw
	return nil
}

// Value serializes the settings for storage in a text column.
func (a AppearanceSettings) Value() (driver.Value, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan loads the settings from a text column.
func (a *AppearanceSettings) Scan(value interface{}) error {
	if value == nil {
		*a = AppearanceSettings{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported appearance settings type %T", value)
	}

	if len(data) == 0 {
		*a = AppearanceSettings{}
		return nil
	}
	if err := json.Unmarshal(data, a); err != nil {
		return errors.New("malformed appearance settings")
	}
	return nil
}
