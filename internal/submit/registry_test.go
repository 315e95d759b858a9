package submit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeRegistry_InsertIsIdempotent(t *testing.T) {
	reg := NewNodeRegistry()
	first := reg.InsertPush("a")
	second := reg.InsertPush("a")
	assert.Equal(t, first, second)
	assert.Len(t, reg.Nodes(), 1)
}

func TestNodeRegistry_DifferentKindsDoNotCollide(t *testing.T) {
	reg := NewNodeRegistry()
	push := reg.InsertPush("a")
	create := reg.InsertCreatePr("a", "trunk", false)
	assert.NotEqual(t, push, create)
	assert.Len(t, reg.Nodes(), 2)
}

func TestNodeRegistry_ConflictingReinsertPanics(t *testing.T) {
	reg := NewNodeRegistry()
	reg.InsertCreatePr("a", "trunk", false)
	assert.Panics(t, func() {
		reg.InsertCreatePr("a", "other-base", false)
	})
}

func TestNodeRegistry_GetMissing(t *testing.T) {
	reg := NewNodeRegistry()
	_, ok := reg.Get(KindPush, "missing")
	assert.False(t, ok)
}
