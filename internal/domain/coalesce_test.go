package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "sequential", Coalesce("", "sequential", "stride"))
	assert.Equal(t, "flag", Coalesce("flag", "config"))
	assert.Equal(t, "", Coalesce("", ""))
	assert.Equal(t, 3, Coalesce(0, 3, 5))
}

func TestValueOr(t *testing.T) {
	off := false
	assert.False(t, ValueOr(true, &off), "explicit false overrides the fallback")
	assert.True(t, ValueOr(true, nil))

	n := 0
	assert.Equal(t, 0, ValueOr(7, nil, &n))
}
