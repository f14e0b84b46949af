package salary

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertOrdered(t *testing.T, out []Range) {
	t.Helper()
	for _, r := range out {
		assert.GreaterOrEqual(t, r.Min, int64(0), r.Role)
		assert.Less(t, r.Min, r.Median, r.Role)
		assert.Less(t, r.Median, r.Max, r.Role)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	out := Normalize(nil, 3, "India")
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestNormalizeSingleZeroRole(t *testing.T) {
	out := Normalize([]RawRange{{Role: "Dev"}}, 0, "India")
	require.Len(t, out, 1)
	assert.Equal(t, Range{Role: "Dev", Location: "India", Min: 247245, Median: 815565, Max: 1648301}, out[0])
	assertOrdered(t, out)
}

func TestNormalizeKnownValues(t *testing.T) {
	in := []RawRange{
		{Role: "A", Min: 40000, Median: 50000, Max: 60000},
		{Role: "B", Min: 5000, Median: 10000, Max: 20000},
		{Role: "C", Min: 80000, Median: 90000, Max: 100000},
	}
	out := Normalize(in, 2, "Seattle")
	require.Len(t, out, 3)
	assert.Equal(t, []int64{1010173, 3332167, 6734484}, []int64{out[0].Min, out[0].Median, out[0].Max})
	assert.Equal(t, []int64{778943, 2569430, 5679792}, []int64{out[1].Min, out[1].Median, out[1].Max})
	assert.Equal(t, []int64{1499194, 4945257, 9994625}, []int64{out[2].Min, out[2].Median, out[2].Max})
	assert.Equal(t, "B", out[1].Role, "output keeps input order")
}

func TestNormalizeInvertedInput(t *testing.T) {
	out := Normalize([]RawRange{{Role: "Odd", Min: 90000, Max: 10000}}, 10, "Nowhere")
	require.Len(t, out, 1)
	assert.Equal(t, Range{Role: "Odd", Location: "Nowhere", Min: 480362, Median: 1584527, Max: 3202413}, out[0])
	assertOrdered(t, out)
}

func TestNormalizeDefaults(t *testing.T) {
	out := Normalize([]RawRange{{}, {Location: "Pune"}}, 1, "")
	require.Len(t, out, 2)
	assert.Equal(t, "Role", out[0].Role)
	assert.Equal(t, "Global", out[0].Location)
	assert.Equal(t, "Pune", out[1].Location)

	out = Normalize([]RawRange{{}}, 1, "Berlin")
	assert.Equal(t, "Berlin", out[0].Location)
}

func TestNormalizeDeterministic(t *testing.T) {
	in := []RawRange{
		{Role: "Junior", Min: 50000, Median: 70000, Max: 90000},
		{Role: "Senior", Min: 110000, Median: 140000, Max: 170000},
		{Role: "PM", Median: 130000},
	}
	assert.Equal(t, Normalize(in, 4, "Germany"), Normalize(in, 4, "Germany"))
}

func TestNormalizeOrderingAcrossInputs(t *testing.T) {
	locations := []string{"", "India", "UK", "Canada", "USA", "Mars"}
	for _, loc := range locations {
		for _, years := range []float64{0, 1, 2, 3, 5, 7, 8, 30} {
			in := []RawRange{
				{Median: 1},
				{Min: 1e9, Median: 1e9, Max: 1e9},
				{Min: -5, Median: -10, Max: -1},
				{Min: 300000, Median: 20000, Max: 100},
			}
			assertOrdered(t, Normalize(in, years, loc))
		}
	}
}

func TestConvertRepairsOrdering(t *testing.T) {
	opts := DefaultOptions()
	min, median, max := Convert(opts, Triple{Min: 100, Median: 0, Max: 0}, 1, 0)
	assert.Equal(t, int64(1992), min)
	assert.Equal(t, min+1000, median)
	assert.Equal(t, median+1000, max)

	opts.RepairGap = 0
	min, median, max = Convert(opts, Triple{}, 1, 0)
	assert.Equal(t, []int64{0, 1, 2}, []int64{min, median, max})
}

func TestConvertSaturatesHugeOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.MinBias = 10
	opts.RepairGap = math.MaxInt64
	out := NormalizeWith(opts, []RawRange{{Median: 50000}}, 2, "USA")
	assertOrdered(t, out)

	opts = DefaultOptions()
	opts.FXRate = 1e300
	opts.MaxBoost = 1e300
	min, median, max := Convert(opts, Triple{Min: 1e5, Median: 2e5, Max: 3e5}, 1, 0)
	assert.GreaterOrEqual(t, min, int64(0))
	assert.Less(t, min, median)
	assert.Less(t, median, max)
	assert.Equal(t, int64(math.MaxInt64), max)
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{2.5, 3},
		{2.49, 2},
		{0, 0},
		{-7.6, 0},
		{math.NaN(), 0},
		{math.Inf(1), math.MaxInt64},
		{1e30, math.MaxInt64},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, round(tt.in), "round(%v)", tt.in)
	}
}

func TestOptionsValidate(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())

	bad := []func(*Options){
		func(o *Options) { o.RepairGap = MaxRepairGap + 1 },
		func(o *Options) { o.RepairGap = 0 },
		func(o *Options) { o.FXRate = 1e9 },
		func(o *Options) { o.MaxBoost = 0 },
		func(o *Options) { o.MinBias = math.NaN() },
	}
	for i, mutate := range bad {
		o := DefaultOptions()
		mutate(&o)
		assert.ErrorIs(t, o.Validate(), ErrInvalidOptions, "case %d", i)
	}
}

func TestBlendOrdering(t *testing.T) {
	for _, b := range Brackets() {
		for _, tpos := range []float64{0, 0.25, 0.5, 1} {
			got := Blend(Triple{Median: 1e7}, tpos, b)
			assert.LessOrEqual(t, got.Min, got.Median)
			assert.LessOrEqual(t, got.Median, got.Max)
		}
	}
}

func TestDecodeRangesLenient(t *testing.T) {
	raw := json.RawMessage(`[
		{"role": "Dev", "min": "45,000", "median": 60000, "max": null, "location": 7},
		{"role": 12, "median": "lots"},
		"garbage"
	]`)
	got := DecodeRanges(raw)
	require.Len(t, got, 3)
	assert.Equal(t, RawRange{Role: "Dev", Min: 45000, Median: 60000}, got[0])
	assert.Equal(t, RawRange{}, got[1])
	assert.Equal(t, RawRange{}, got[2])

	assert.Empty(t, DecodeRanges(json.RawMessage(`{"role": "Dev"}`)))
	assert.Empty(t, DecodeRanges(nil))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "₹1,234,567", Format(1234567))
	r := Range{Role: "Dev", Min: 1000, Median: 2000, Max: 3000}
	assert.Equal(t, "Dev: ₹1,000 / ₹2,000 / ₹3,000", r.Summary())
}
