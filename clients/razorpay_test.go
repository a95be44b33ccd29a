package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInSubunits(t *testing.T) {
	assert.Equal(t, int64(9999), amountInSubunits(99.99))
	assert.Equal(t, int64(10000), amountInSubunits(100))
	assert.Equal(t, int64(5), amountInSubunits(0.05))
	// 3 * 9.99 accumulates float noise below a cent.
	assert.Equal(t, int64(2997), amountInSubunits(9.99*3))
	assert.Equal(t, int64(0), amountInSubunits(0))
}
