package submit

import "sort"

// topoSort implements §4.7: Kahn's algorithm over the deduplicated edge list,
// breaking ties by node index so that otherwise-unconstrained nodes still
// come out in a stable, deterministic order. Node indices are assigned in
// insertion order by the registry, so ordering the ready set by NodeIdx is
// exactly the (insertion_order, node_idx) tiebreak the spec describes.
//
// Returns SchedulerCycle if the sort could not consume every node.
func topoSort(reg *NodeRegistry, edges []Edge) ([]NodeIdx, error) {
	nodeCount := len(reg.Nodes())
	inDegree := make([]int, nodeCount)
	successors := make([][]NodeIdx, nodeCount)
	for _, e := range edges {
		inDegree[e.To]++
		successors[e.From] = append(successors[e.From], e.To)
	}

	ready := make([]NodeIdx, 0, nodeCount)
	for i := 0; i < nodeCount; i++ {
		if inDegree[i] == 0 {
			ready = append(ready, NodeIdx(i))
		}
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })

	out := make([]NodeIdx, 0, nodeCount)
	for len(ready) > 0 {
		cur := ready[0]
		ready = ready[1:]
		out = append(out, cur)

		for _, succ := range successors[cur] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				insertAt := sort.Search(len(ready), func(i int) bool { return ready[i] >= succ })
				ready = append(ready, 0)
				copy(ready[insertAt+1:], ready[insertAt:])
				ready[insertAt] = succ
			}
		}
	}

	if len(out) < nodeCount {
		done := make(map[NodeIdx]bool, len(out))
		for _, idx := range out {
			done[idx] = true
		}
		var cycleNodes []string
		for i := 0; i < nodeCount; i++ {
			if !done[NodeIdx(i)] {
				cycleNodes = append(cycleNodes, reg.Node(NodeIdx(i)).String())
			}
		}
		return nil, newSchedulerCycle(cycleNodes)
	}

	return out, nil
}
