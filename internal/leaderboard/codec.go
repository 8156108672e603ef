package leaderboard

import (
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// dateLayout is ISO-8601 in UTC with millisecond precision.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

type row struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Rounds int    `json:"rounds"`
	Date   string `json:"date"`
}

// Encode serializes the records, in the given order, as the `scores` blob.
func Encode(records []Record) (string, error) {
	doc := `{"scores":[]}`
	for _, r := range records {
		var err error
		doc, err = sjson.Set(doc, "scores.-1", row{
			Name:   r.Name,
			Score:  r.Score,
			Rounds: r.Rounds,
			Date:   r.Date.UTC().Format(dateLayout),
		})
		if err != nil {
			return "", err
		}
	}
	return gjson.Get(doc, "scores").Raw, nil
}

// Decode reads a `scores` blob in stored order. Malformed input yields no
// records; rows without a name are skipped and unparseable dates become the
// zero time.
func Decode(blob string) []Record {
	if blob == "" || !gjson.Valid(blob) {
		return nil
	}
	res := gjson.Parse(blob)
	if !res.IsArray() {
		return nil
	}
	out := make([]Record, 0, int(res.Get("#").Int()))
	res.ForEach(func(_, v gjson.Result) bool {
		name := v.Get("name")
		if name.Type != gjson.String || name.Str == "" {
			return true
		}
		date, _ := time.Parse(time.RFC3339Nano, v.Get("date").String())
		out = append(out, Record{
			Name:   name.Str,
			Score:  int(v.Get("score").Int()),
			Rounds: int(v.Get("rounds").Int()),
			Date:   date,
		})
		return true
	})
	return out
}
