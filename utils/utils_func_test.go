package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardFingerprint(t *testing.T) {
	a := CardFingerprint("4242424242424242")
	b := CardFingerprint("4242424242424242")
	c := CardFingerprint("4000000000000002")

	assert.Equal(t, a, b, "same card must produce the same fingerprint")
	assert.NotEqual(t, a, c)
	assert.NotContains(t, a, "4242", "fingerprint must not leak card digits")
	assert.Len(t, a, 64) // 32-byte digest, hex encoded
}
