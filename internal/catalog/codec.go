package catalog

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Encode serializes vehicles as the persisted `vehicles` blob.
func Encode(vs []Vehicle) (string, error) {
	out := make([]Vehicle, len(vs))
	copy(out, vs)
	for i := range out {
		if out[i].Alternatives == nil {
			out[i].Alternatives = []string{}
		}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode reads a persisted `vehicles` blob. Malformed input yields an empty
// list; entries that are not objects are skipped. Ids written as numbers by
// older clients are kept in their string form.
func Decode(blob string) []Vehicle {
	if blob == "" || !gjson.Valid(blob) {
		return nil
	}
	res := gjson.Parse(blob)
	if !res.IsArray() {
		return nil
	}
	out := make([]Vehicle, 0, int(res.Get("#").Int()))
	res.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			return true
		}
		veh := Vehicle{
			ID:    v.Get("id").String(),
			Name:  v.Get("name").String(),
			Brand: v.Get("brand").String(),
			Model: v.Get("model").String(),
			Photo: v.Get("photoData").String(),
			Mask:  v.Get("maskData").String(),
		}
		v.Get("alternatives").ForEach(func(_, a gjson.Result) bool {
			if a.Type == gjson.String {
				veh.Alternatives = append(veh.Alternatives, a.Str)
			}
			return true
		})
		out = append(out, veh)
		return true
	})
	return out
}
