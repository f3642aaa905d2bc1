package common

import (
	"encoding/json"
	"fmt"
)

// SanitizeProperties returns a copy of props that is safe to persist as a
// flat JSON object. Nil values are dropped, scalar values pass through,
// and nested maps or lists are JSON-stringified. Values that cannot be
// marshalled fall back to their fmt representation.
func SanitizeProperties(props Properties) Properties {
	if len(props) == 0 {
		return nil
	}

	out := make(Properties, len(props))
	for key, value := range props {
		if value == nil {
			continue
		}
		switch v := value.(type) {
		case string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64:
			out[key] = v
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				out[key] = fmt.Sprintf("%v", v)
				continue
			}
			out[key] = string(encoded)
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
