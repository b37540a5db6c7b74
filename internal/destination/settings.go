package destination

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var validate = validator.New()

// Settings is the Adobe Analytics destination configuration delivered by the
// control plane. Field names follow the settings payload wire format.
type Settings struct {
	SSL bool `mapstructure:"ssl" json:"ssl"`
	// ProductIdentifier names the property holding the product id; "id"
	// (or empty) falls back to productId, product_id, then id.
	ProductIdentifier string `mapstructure:"productIdentifier" json:"productIdentifier" validate:"omitempty,oneof=name sku id"`
	// EventsV2 maps custom track event names to Adobe action codes.
	EventsV2 map[string]string `mapstructure:"eventsV2" json:"eventsV2" validate:"omitempty,dive,required"`
	// ContextValues maps event field paths to Adobe variable names.
	ContextValues map[string]string `mapstructure:"contextValues" json:"contextValues" validate:"omitempty,dive,required"`
	// CustomDataPrefix is prepended to untranslated extra properties.
	CustomDataPrefix string `mapstructure:"customDataPrefix" json:"customDataPrefix"`
}

// SettingsFromMap decodes and validates a raw settings payload.
func SettingsFromMap(raw map[string]interface{}) (Settings, error) {
	var settings Settings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &settings,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Settings{}, fmt.Errorf("failed to build settings decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := validate.Struct(settings); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}
