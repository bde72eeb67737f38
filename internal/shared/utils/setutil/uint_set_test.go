package setutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUintSet(t *testing.T) {
	s := NewUintSet(3, 1, 3)
	s.Add(2)

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has(2))
	assert.False(t, s.Has(9))
	assert.Equal(t, []uint{1, 2, 3}, s.Sorted())
}

func TestUintSet_Union(t *testing.T) {
	a := NewUintSet(1, 5)
	b := NewUintSet(5, 7)

	u := a.Union(b, nil)

	assert.Equal(t, []uint{1, 5, 7}, u.Sorted())
	assert.Equal(t, []uint{1, 5}, a.Sorted(), "receiver is not modified")
}

func TestUintSet_Empty(t *testing.T) {
	assert.Empty(t, NewUintSet().Sorted())
}
