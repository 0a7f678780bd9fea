package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.56, Round2(10.555))
	assert.Equal(t, 10.55, Round2(10.554))
	assert.Equal(t, 0.0, Round2(0))
}

func TestLineSubtotal(t *testing.T) {
	assert.Equal(t, 36.0, LineSubtotal(3, 12.0))
	assert.Equal(t, 16.5, LineSubtotal(3, 5.5))
	// float-hostile case: 0.1 * 3
	assert.Equal(t, 0.3, LineSubtotal(3, 0.1))
}

func TestSum(t *testing.T) {
	assert.Equal(t, 36.5, Sum(20.0, 16.5))
	assert.Equal(t, 0.3, Sum(0.1, 0.1, 0.1))
	assert.Equal(t, 0.0, Sum())
}
