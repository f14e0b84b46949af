package salary

const (
	jitterMul    = 9301
	jitterInc    = 49297
	jitterMod    = 233280
	jitterSpread = 0.06
)

// Jitter returns a deterministic offset in [-0.03, 0.03] for position idx.
// It is a fixed LCG-style hash used only to keep adjacent chart bars from
// rendering identical values; it is not random and not cryptographic.
func Jitter(idx int) float64 {
	seed := ((idx+1)*jitterMul + jitterInc) % jitterMod
	if seed < 0 {
		seed += jitterMod
	}
	// The conversion stops the multiply fusing with the caller's 1+jitter.
	return float64((float64(seed)/jitterMod - 0.5) * jitterSpread)
}
