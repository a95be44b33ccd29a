package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCustomRate(t *testing.T) {
	cases := []struct {
		in     string
		limit  int64
		period time.Duration
	}{
		{"10-2m", 10, 2 * time.Minute},
		{"30-1m", 30, time.Minute},
		{"5-1h", 5, time.Hour},
		{"20-10s", 20, 10 * time.Second},
	}

	for _, tc := range cases {
		rate, err := ParseCustomRate(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.limit, rate.Limit, tc.in)
		assert.Equal(t, tc.period, rate.Period, tc.in)
	}
}

func TestParseCustomRateRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "10", "10-2d", "ten-2m", "10-xm", "10-2m-extra"} {
		_, err := ParseCustomRate(in)
		assert.Error(t, err, in)
	}
}
