package logging

import (
	"encoding/json"
	"io"

	"go.uber.org/zap/zapcore"

	"github.com/slate-tools/cli/internal/media"
)

// valueEncoder is the reflected encoder handed to zapcore for fields
// logged with zap.Any. Capture-domain scalars flatten to their string
// form instead of a nested struct, and a Device flattens to the safe
// id/name subset so driver internals never reach the log.
type valueEncoder struct {
	json *json.Encoder
}

func newValueEncoder(w io.Writer) zapcore.ReflectedEncoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &valueEncoder{json: enc}
}

func (e *valueEncoder) Encode(v interface{}) error {
	switch t := v.(type) {
	case media.Resolution:
		return e.json.Encode(t.String())
	case media.FrameRate:
		return e.json.Encode(t.String())
	case media.Timecode:
		return e.json.Encode(t.String())
	case media.Profile:
		return e.json.Encode(t.String())
	case media.Device:
		return e.json.Encode(deviceRef{ID: t.ID, Name: t.Name})
	case *media.Device:
		if t == nil {
			return e.json.Encode(nil)
		}
		return e.json.Encode(deviceRef{ID: t.ID, Name: t.Name})
	}
	return e.json.Encode(v)
}

type deviceRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
