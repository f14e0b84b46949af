// Package salary turns AI-suggested salary ranges into bounded, ordered
// figures suitable for display.
//
// The pipeline is pure: the same inputs always produce the same output.
// Malformed values are coerced to defaults rather than rejected, because the
// input comes straight from a model response.
package salary

import (
	"errors"
	"fmt"
	"math"
)

// Range is a normalized salary range in the target currency.
type Range struct {
	Role     string `json:"role"`
	Location string `json:"location"`
	Min      int64  `json:"min"`
	Median   int64  `json:"median"`
	Max      int64  `json:"max"`
}

// Options holds the scaling constants applied after blending.
type Options struct {
	GlobalScale float64 `json:"globalScale"`
	FXRate      float64 `json:"fxRate"`
	MinBias     float64 `json:"minBias"`
	MedianBias  float64 `json:"medianBias"`
	MaxBoost    float64 `json:"maxBoost"`
	// RepairGap is added when a repair step has to separate two values.
	RepairGap int64 `json:"repairGap"`
}

// USDToINR is the fixed conversion rate into the display currency.
const USDToINR = 83

// DefaultOptions returns the production constants.
func DefaultOptions() Options {
	return Options{
		GlobalScale: 0.6,
		FXRate:      USDToINR,
		MinBias:     0.4,
		MedianBias:  0.95,
		MaxBoost:    1.5,
		RepairGap:   1000,
	}
}

// Upper bounds accepted by Validate. Anything larger only inflates figures
// toward the int64 ceiling.
const (
	MaxFactor    = 1000.0
	MaxRepairGap = 1_000_000
)

var ErrInvalidOptions = errors.New("invalid salary options")

// Validate reports options that cannot produce sensible figures. Every
// multiplier must be in (0, MaxFactor] and RepairGap in [1, MaxRepairGap].
func (o Options) Validate() error {
	factors := []struct {
		name  string
		value float64
	}{
		{"globalScale", o.GlobalScale},
		{"fxRate", o.FXRate},
		{"minBias", o.MinBias},
		{"medianBias", o.MedianBias},
		{"maxBoost", o.MaxBoost},
	}
	for _, f := range factors {
		if math.IsNaN(f.value) || f.value <= 0 || f.value > MaxFactor {
			return fmt.Errorf("%w: %s must be in (0, %g], got %g", ErrInvalidOptions, f.name, MaxFactor, f.value)
		}
	}
	if o.RepairGap < 1 || o.RepairGap > MaxRepairGap {
		return fmt.Errorf("%w: repairGap must be in [1, %d], got %d", ErrInvalidOptions, MaxRepairGap, o.RepairGap)
	}
	return nil
}

// Triple is a (min, median, max) set of USD figures.
type Triple struct {
	Min, Median, Max float64
}

// Normalize applies the default options.
func Normalize(ranges []RawRange, experience float64, location string) []Range {
	return NormalizeWith(DefaultOptions(), ranges, experience, location)
}

// NormalizeWith normalizes ranges for a professional with the given years of
// experience in location. Output position i corresponds to input position i.
func NormalizeWith(opts Options, ranges []RawRange, experience float64, location string) []Range {
	out := make([]Range, len(ranges))
	if len(ranges) == 0 {
		return out
	}

	bracket := SelectBracket(experience)
	multiplier := LocationMultiplier(location)
	ranks := AssignRanks(ranges)

	for idx, r := range ranges {
		t := Position(ranks[idx], len(ranges))
		pre := Blend(Triple{Min: r.Min.Value(), Median: r.Median.Value(), Max: r.Max.Value()}, t, bracket)
		min, median, max := Convert(opts, pre, multiplier, Jitter(idx))

		out[idx] = Range{
			Role:     firstNonEmpty(r.Role, "Role"),
			Location: firstNonEmpty(r.Location, location, "Global"),
			Min:      min,
			Median:   median,
			Max:      max,
		}
	}
	return out
}

// Blend mixes a rank-derived baseline with the role's own (clamped) median
// and derives min/max around it. Only the original median is consulted.
func Blend(original Triple, t float64, b Bracket) Triple {
	base := lerp(b.MedMin, b.MedMax, t)
	orig := base
	if original.Median > 0 {
		orig = clamp(original.Median, b.MedMin, b.MedMax)
	}
	// Explicit conversions keep the compiler from fusing multiply-adds, so
	// results are identical on every architecture.
	median := float64(0.6*base) + float64(0.4*orig)

	min := clamp(median*0.72, b.MinMin, b.MinMax)
	max := clamp(median*1.28, b.MaxMin, b.MaxMax)
	if min > median {
		min = clamp(median*0.9, b.MinMin, b.MinMax)
	}
	if max < median {
		max = clamp(median*1.1, b.MaxMin, b.MaxMax)
	}
	return Triple{Min: min, Median: median, Max: max}
}

// Convert scales a blended USD triple into the display currency and repairs
// ordering so that min < median < max.
func Convert(opts Options, pre Triple, multiplier, jitter float64) (min, median, max int64) {
	factor := 1 + jitter
	min = round(pre.Min * multiplier * factor * opts.GlobalScale * opts.MinBias * opts.FXRate)
	median = round(pre.Median * multiplier * factor * opts.GlobalScale * opts.MedianBias * opts.FXRate)
	max = round(pre.Max * multiplier * factor * opts.GlobalScale * opts.FXRate)
	max = round(float64(max) * opts.MaxBoost)

	gap := opts.RepairGap
	if gap <= 0 {
		gap = 1
	}
	// Leave room for two gaps above min so the repairs cannot overflow.
	if gap > math.MaxInt64/4 {
		gap = math.MaxInt64 / 4
	}
	if min < 0 {
		min = 0
	}
	if ceiling := int64(math.MaxInt64) - 2*gap; min > ceiling {
		min = ceiling
	}
	if median <= min {
		median = min + gap
	}
	if ceiling := int64(math.MaxInt64) - gap; median > ceiling {
		median = ceiling
	}
	if max <= median {
		max = median + gap
	}
	return min, median, max
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func lerp(a, b, t float64) float64 {
	return a + float64((b-a)*t)
}

// round matches half-up rounding for the non-negative values produced here,
// saturating to [0, math.MaxInt64].
func round(v float64) int64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	r := math.Floor(v + 0.5)
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if r >= float64(math.MaxInt64) {
		return math.MaxInt64
	}
	return int64(r)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
