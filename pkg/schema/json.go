package schema

import (
	"encoding/json"
	"fmt"
)

type widgetEnvelope struct {
	ID     string          `json:"id"`
	Type   WidgetType      `json:"widget_type"`
	Row    int             `json:"row"`
	Col    int             `json:"col"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
	ZIndex int             `json:"z_index"`
	Config json.RawMessage `json:"config"`
}

// UnmarshalJSON decodes the envelope and then the typed config for the
// declared widget_type. An unknown type leaves Config nil so the widget
// still loads and renders as a placeholder.
func (w *Widget) UnmarshalJSON(data []byte) error {
	var env widgetEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("widget envelope: %w", err)
	}
	w.ID = env.ID
	w.Type = env.Type
	w.Row = env.Row
	w.Col = env.Col
	w.Width = env.Width
	w.Height = env.Height
	w.ZIndex = env.ZIndex

	cfg := DefaultConfig(env.Type)
	if cfg == nil {
		w.Config = nil
		return nil
	}
	if len(env.Config) > 0 {
		if err := json.Unmarshal(env.Config, cfg); err != nil {
			return fmt.Errorf("%s config: %w", env.Type, err)
		}
	}
	cfg.applyDefaults()
	w.Config = cfg
	return nil
}

func (w Widget) MarshalJSON() ([]byte, error) {
	env := widgetEnvelope{
		ID:     w.ID,
		Type:   w.Type,
		Row:    w.Row,
		Col:    w.Col,
		Width:  w.Width,
		Height: w.Height,
		ZIndex: w.ZIndex,
	}
	if w.Config != nil {
		raw, err := json.Marshal(w.Config)
		if err != nil {
			return nil, fmt.Errorf("%s config: %w", w.Type, err)
		}
		env.Config = raw
	}
	return json.Marshal(env)
}
