package submit

import "fmt"

// registryKey is a (kind, bookmark) identity pair — the sole key the planner
// recognizes for node identity (§4.2, invariant 1).
type registryKey struct {
	kind NodeKind
	name string
}

// NodeRegistry is the dense node vector plus its four name-keyed lookup
// tables, one per NodeKind. insert is idempotent by (kind, name): a second
// insert with identical data returns the existing index, a second insert with
// conflicting data is a planner bug.
type NodeRegistry struct {
	nodes []Node
	index map[registryKey]NodeIdx
}

// NewNodeRegistry returns an empty registry.
func NewNodeRegistry() *NodeRegistry {
	return &NodeRegistry{
		index: make(map[registryKey]NodeIdx),
	}
}

// Nodes returns the dense node vector in insertion order. Insertion order is
// the tiebreak the topological sort (C7) uses, so callers must insert nodes
// in a stable, deterministic sequence (root-first by stack depth).
func (r *NodeRegistry) Nodes() []Node {
	return r.nodes
}

// Get looks up an existing node by kind and bookmark name.
func (r *NodeRegistry) Get(kind NodeKind, name string) (NodeIdx, bool) {
	idx, ok := r.index[registryKey{kind, name}]
	return idx, ok
}

// Node returns the node at idx.
func (r *NodeRegistry) Node(idx NodeIdx) Node {
	return r.nodes[idx]
}

// insert records n under its own (kind, bookmarkName) key, returning the
// existing index unchanged if an equivalent node is already present. A
// conflicting re-insert (same key, different payload) panics: the builder
// must never produce two different nodes for one (kind, bookmark) pair, so
// reaching this is always a planner bug, not a user-facing error.
func (r *NodeRegistry) insert(n Node) NodeIdx {
	key := registryKey{n.Kind, n.bookmarkName()}
	if existing, ok := r.index[key]; ok {
		if r.nodes[existing].bookmarkName() != n.bookmarkName() {
			panic(fmt.Sprintf("planner bug: conflicting node for %s", key.name))
		}
		if !sameNode(r.nodes[existing], n) {
			panic(fmt.Sprintf("planner bug: duplicate insert with different data for %s(%s)", n.Kind, n.bookmarkName()))
		}
		return existing
	}
	n.Idx = NodeIdx(len(r.nodes))
	r.nodes = append(r.nodes, n)
	r.index[key] = n.Idx
	return n.Idx
}

// InsertPush records (or returns the existing) Push node for bookmark.
func (r *NodeRegistry) InsertPush(bookmark string) NodeIdx {
	return r.insert(Node{Kind: KindPush, PushBookmark: bookmark})
}

// InsertUpdateBase records (or returns the existing) UpdateBase node
// retargeting prNumber's base from oldBase to newBase.
func (r *NodeRegistry) InsertUpdateBase(prNumber int, headBookmark, oldBase, newBase string) NodeIdx {
	return r.insert(Node{
		Kind:           KindUpdateBase,
		UpdatePRNumber: prNumber,
		UpdateBookmark: headBookmark,
		UpdateOldBase:  oldBase,
		UpdateNewBase:  newBase,
	})
}

// InsertCreatePr records (or returns the existing) CreatePr node for a PR
// from headBookmark into baseBookmark.
func (r *NodeRegistry) InsertCreatePr(headBookmark, baseBookmark string, draft bool) NodeIdx {
	return r.insert(Node{
		Kind:               KindCreatePr,
		CreateHeadBookmark: headBookmark,
		CreateBaseBookmark: baseBookmark,
		CreateDraft:        draft,
	})
}

// InsertPublishPr records (or returns the existing) PublishPr node for
// prNumber/headBookmark.
func (r *NodeRegistry) InsertPublishPr(prNumber int, headBookmark string) NodeIdx {
	return r.insert(Node{
		Kind:            KindPublishPr,
		PublishPRNumber: prNumber,
		PublishBookmark: headBookmark,
	})
}

// sameNode reports whether two nodes sharing a registry key carry identical
// payloads.
func sameNode(a, b Node) bool {
	return a.Kind == b.Kind &&
		a.PushBookmark == b.PushBookmark &&
		a.UpdatePRNumber == b.UpdatePRNumber &&
		a.UpdateBookmark == b.UpdateBookmark &&
		a.UpdateOldBase == b.UpdateOldBase &&
		a.UpdateNewBase == b.UpdateNewBase &&
		a.CreateHeadBookmark == b.CreateHeadBookmark &&
		a.CreateBaseBookmark == b.CreateBaseBookmark &&
		a.CreateDraft == b.CreateDraft &&
		a.PublishPRNumber == b.PublishPRNumber &&
		a.PublishBookmark == b.PublishBookmark
}
