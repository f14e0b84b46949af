package salary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJitterBounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		j := Jitter(i)
		assert.GreaterOrEqual(t, j, -0.03)
		assert.LessOrEqual(t, j, 0.03)
	}
}

func TestJitterReproducible(t *testing.T) {
	assert.Equal(t, -0.01492849794238683, Jitter(0), "exact across architectures")
	assert.InDelta(t, -0.012536265432098764, Jitter(1), 1e-15)
	assert.Equal(t, Jitter(7), Jitter(7))
	assert.NotEqual(t, Jitter(0), Jitter(1))
}
