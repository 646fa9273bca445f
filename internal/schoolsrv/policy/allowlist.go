package policy

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// FilterFields copies only the allowed keys out of data. The result's
// key set is always a subset of allowed; unknown keys are dropped
// silently rather than rejected.
func FilterFields(data map[string]any, allowed []string) map[string]any {
	out := make(map[string]any, len(allowed))
	for _, k := range allowed {
		if v, ok := data[k]; ok {
			out[k] = v
		}
	}
	return out
}

// FilterJSON applies the allow-list to a raw JSON object without a full
// unmarshal round-trip, preserving the original encoding of the values
// that survive. Invalid input yields an empty object.
func FilterJSON(raw []byte, allowed []string) []byte {
	out := []byte(`{}`)
	if !gjson.ValidBytes(raw) {
		return out
	}
	for _, k := range allowed {
		v := gjson.GetBytes(raw, k)
		if !v.Exists() {
			continue
		}
		var err error
		out, err = sjson.SetRawBytes(out, k, []byte(v.Raw))
		if err != nil {
			return []byte(`{}`)
		}
	}
	return out
}
