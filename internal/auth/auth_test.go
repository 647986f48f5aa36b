package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyListAllowsEveryone(t *testing.T) {
	a := New(nil)
	assert.True(t, a.Allowed(1))
	assert.True(t, a.Allowed(-42))
}

func TestNonEmptyListRestricts(t *testing.T) {
	a := New([]int64{100, 200})
	assert.True(t, a.Allowed(100))
	assert.True(t, a.Allowed(200))
	assert.False(t, a.Allowed(300))
}
