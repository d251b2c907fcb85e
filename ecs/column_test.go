package ecs

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotSet(t *testing.T) {
	var s slotSet
	for _, i := range []int{0, 3, 64, 130} {
		s.set(i)
	}
	s.set(3)
	assert.Equal(t, 4, s.count)
	assert.True(t, s.has(64))
	assert.False(t, s.has(65))
	assert.False(t, s.has(-1))

	assert.True(t, s.unset(64))
	assert.False(t, s.unset(64))
	assert.False(t, s.unset(1000))
	assert.Equal(t, []int{0, 3, 130}, slices.Collect(s.all()))
}

func TestPagedColumn(t *testing.T) {
	c := &pagedColumn[int]{}
	assert.True(t, c.Put(70, 5))
	v := 9
	assert.True(t, c.Put(1, &v))
	assert.False(t, c.Put(2, "nope"))

	assert.Equal(t, 5, *c.Get(70).(*int))
	assert.Equal(t, 9, *c.Get(1).(*int))
	assert.Nil(t, c.Get(500))

	c.Clear(70)
	assert.Equal(t, 0, *c.Get(70).(*int))
}
