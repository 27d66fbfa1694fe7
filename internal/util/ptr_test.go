package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtr(t *testing.T) {
	p := Ptr(0.1)
	assert.Equal(t, 0.1, *p)

	q := Ptr(0.1)
	assert.NotSame(t, p, q, "each call allocates")

	s := Ptr("")
	assert.NotNil(t, s)
	assert.Empty(t, *s)
}
