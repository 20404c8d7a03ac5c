package shared

import "encoding/json"

// NullifyEmptyJSONFields rewrites top-level `""` values for the given keys
// into JSON null before decoding. Lead forms and older clients send empty
// strings for optional date and id fields, which would otherwise fail to
// unmarshal into pointer types.
func NullifyEmptyJSONFields(data []byte, keys ...string) []byte {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return data
	}
	changed := false
	for _, key := range keys {
		if raw, ok := obj[key]; ok && string(raw) == `""` {
			obj[key] = json.RawMessage("null")
			changed = true
		}
	}
	if !changed {
		return data
	}
	out, err := json.Marshal(obj)
	if err != nil {
		return data
	}
	return out
}
