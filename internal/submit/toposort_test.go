package submit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopoSort_EmptyGraph(t *testing.T) {
	reg := NewNodeRegistry()
	order, err := topoSort(reg, nil)
	require.NoError(t, err)
	assert.Empty(t, order)
}

func TestTopoSort_LinearChain(t *testing.T) {
	reg := NewNodeRegistry()
	a := reg.InsertPush("a")
	b := reg.InsertPush("b")
	c := reg.InsertPush("c")

	order, err := topoSort(reg, []Edge{{From: a, To: b}, {From: b, To: c}})
	require.NoError(t, err)
	require.Equal(t, []NodeIdx{a, b, c}, order)
}

func TestTopoSort_DeterministicTiebreak(t *testing.T) {
	reg := NewNodeRegistry()
	_ = reg.InsertPush("a")
	_ = reg.InsertPush("b")
	_ = reg.InsertPush("c")

	// No edges at all: every node is ready immediately, so the output must
	// be exactly insertion order (node index order).
	order, err := topoSort(reg, nil)
	require.NoError(t, err)
	assert.Equal(t, []NodeIdx{0, 1, 2}, order)
}

func TestTopoSort_Cycle(t *testing.T) {
	reg := NewNodeRegistry()
	a := reg.InsertPush("a")
	b := reg.InsertPush("b")

	_, err := topoSort(reg, []Edge{{From: a, To: b}, {From: b, To: a}})
	require.Error(t, err)

	var cycleErr *SchedulerCycle
	require.ErrorAs(t, err, &cycleErr)
	assert.Len(t, cycleErr.CycleNodes, 2)
}

func TestTopoSort_PreservesIndependentOrderWhenDroppingEdge(t *testing.T) {
	// Invariant 3: dropping a constraint whose endpoint is unmaterialized
	// never changes the relative order of nodes whose ordering was
	// independently constrained elsewhere.
	reg := NewNodeRegistry()
	a := reg.InsertPush("a")
	b := reg.InsertPush("b")
	c := reg.InsertPush("c")

	withExtra, err := topoSort(reg, []Edge{{From: a, To: b}, {From: b, To: c}})
	require.NoError(t, err)

	withoutExtra, err := topoSort(reg, []Edge{{From: a, To: b}})
	require.NoError(t, err)

	posA1, posB1 := indexOf(withExtra, a), indexOf(withExtra, b)
	posA2, posB2 := indexOf(withoutExtra, a), indexOf(withoutExtra, b)
	assert.Less(t, posA1, posB1)
	assert.Less(t, posA2, posB2)
}

func indexOf(order []NodeIdx, target NodeIdx) int {
	for i, idx := range order {
		if idx == target {
			return i
		}
	}
	return -1
}
