package salary

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a salary figure decoded leniently from untrusted JSON.
// Numbers, numeric strings and null are accepted; anything else is 0.
type Amount float64

// Value returns the amount as a finite float64.
func (a Amount) Value() float64 {
	v := float64(a)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*a = Amount(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = parseAmount(s)
	}
	return nil
}

func parseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(",", "", "_", "", "$", "", " ", "").Replace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return Amount(f)
}

// RawRange is one AI-suggested salary range before normalization.
type RawRange struct {
	Role     string `json:"role"`
	Location string `json:"location"`
	Min      Amount `json:"min"`
	Median   Amount `json:"median"`
	Max      Amount `json:"max"`
}

func (r *RawRange) UnmarshalJSON(data []byte) error {
	*r = RawRange{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// Non-object entries still count as a role with no data.
		return nil
	}
	r.Role = text(fields["role"])
	r.Location = text(fields["location"])
	_ = r.Min.UnmarshalJSON(fields["min"])
	_ = r.Median.UnmarshalJSON(fields["median"])
	_ = r.Max.UnmarshalJSON(fields["max"])
	return nil
}

func text(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// DecodeRanges decodes a JSON array of ranges. Anything that is not an
// array decodes to an empty slice.
func DecodeRanges(raw json.RawMessage) []RawRange {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []RawRange{}
	}
	out := make([]RawRange, len(items))
	for i, item := range items {
		_ = out[i].UnmarshalJSON(item)
	}
	return out
}
