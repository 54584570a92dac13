package prox

import (
	"log"
	"math"

	"github.com/danielrh/prox/pkg/geom"
)

// rtreeNode is one node of the dynamic R-tree over bounding spheres. A node
// is either a leaf holding objects or an internal node holding child nodes,
// never both; capacity is fixed per tree. The tree stays height-balanced:
// every leaf sits at the same depth.
type rtreeNode struct {
	parent   *rtreeNode
	leaf     bool
	capacity int
	bounds   geom.BoundingSphere
	objects  []*Object
	children []*rtreeNode
}

func newRTreeNode(capacity int) *rtreeNode {
	return &rtreeNode{
		leaf:     true,
		capacity: capacity,
	}
}

func (n *rtreeNode) size() int {
	if n.leaf {
		return len(n.objects)
	}
	return len(n.children)
}

func (n *rtreeNode) full() bool {
	return n.size() == n.capacity
}

func (n *rtreeNode) childBounds(i int, t geom.Time) geom.BoundingSphere {
	if n.leaf {
		return n.objects[i].WorldBounds(t)
	}
	return n.children[i].bounds
}

func (n *rtreeNode) recomputeBounds(t geom.Time) {
	n.bounds = geom.BoundingSphere{}
	for i := 0; i < n.size(); i++ {
		n.bounds = n.bounds.Merge(n.childBounds(i, t))
	}
}

func (n *rtreeNode) clear() {
	n.objects = n.objects[:0]
	n.children = n.children[:0]
	n.bounds = geom.BoundingSphere{}
}

func (n *rtreeNode) insertObject(obj *Object, t geom.Time) {
	if !n.leaf {
		panic("prox: object inserted into internal node")
	}
	if n.full() {
		panic("prox: insert into full node")
	}
	n.objects = append(n.objects, obj)
	n.bounds = n.bounds.Merge(obj.WorldBounds(t))
}

func (n *rtreeNode) insertNode(child *rtreeNode) {
	if n.leaf {
		panic("prox: node inserted into leaf")
	}
	if n.full() {
		panic("prox: insert into full node")
	}
	child.parent = n
	n.children = append(n.children, child)
	n.bounds = n.bounds.Merge(child.bounds)
}

// childOps abstracts over the two child kinds so the quadratic split is
// written once for object children and node children.
type childOps[C any] struct {
	child  func(n *rtreeNode, i int) C
	bounds func(c C, t geom.Time) geom.BoundingSphere
	insert func(n *rtreeNode, c C, t geom.Time)
}

var objectOps = childOps[*Object]{
	child:  func(n *rtreeNode, i int) *Object { return n.objects[i] },
	bounds: func(c *Object, t geom.Time) geom.BoundingSphere { return c.WorldBounds(t) },
	insert: func(n *rtreeNode, c *Object, t geom.Time) { n.insertObject(c, t) },
}

var nodeOps = childOps[*rtreeNode]{
	child:  func(n *rtreeNode, i int) *rtreeNode { return n.children[i] },
	bounds: func(c *rtreeNode, _ geom.Time) geom.BoundingSphere { return c.bounds },
	insert: func(n *rtreeNode, c *rtreeNode, _ geom.Time) { n.insertNode(c) },
}

const unassignedGroup = -1

type splitCandidate[C any] struct {
	child  C
	bounds geom.BoundingSphere
	group  int
}

// pickSeeds runs the quadratic seed selection: the pair wasting the most
// space when merged becomes the seeds of the two groups. Returns the two
// seed spheres.
func pickSeeds[C any](candidates []splitCandidate[C]) (geom.BoundingSphere, geom.BoundingSphere) {
	maxWaste := math.Inf(-1)
	seed0, seed1 := -1, -1

	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			merged := candidates[i].bounds.Merge(candidates[j].bounds)
			waste := merged.Volume() - candidates[i].bounds.Volume() - candidates[j].bounds.Volume()
			if waste > maxWaste {
				maxWaste = waste
				seed0, seed1 = i, j
			}
		}
	}

	candidates[seed0].group = 0
	candidates[seed1].group = 1
	return candidates[seed0].bounds, candidates[seed1].bounds
}

// pickNextChild assigns one more candidate: the one with the strongest
// preference (largest |diff0−diff1|) goes to the group with the smaller diff,
// where a group's diff is the volume of the group sphere merged with the
// candidate minus the candidate's own volume. That group's sphere is extended.
func pickNextChild[C any](candidates []splitCandidate[C], groupBounds0, groupBounds1 *geom.BoundingSphere) {
	maxPreference := -1.0
	maxIdx := -1
	selectedGroup := 0

	for i := range candidates {
		if candidates[i].group != unassignedGroup {
			continue
		}

		merged0 := groupBounds0.Merge(candidates[i].bounds)
		merged1 := groupBounds1.Merge(candidates[i].bounds)

		diff0 := merged0.Volume() - candidates[i].bounds.Volume()
		diff1 := merged1.Volume() - candidates[i].bounds.Volume()

		preference := math.Abs(diff0 - diff1)
		if preference > maxPreference {
			maxPreference = preference
			maxIdx = i
			if diff0 < diff1 {
				selectedGroup = 0
			} else {
				selectedGroup = 1
			}
		}
	}

	if maxIdx == -1 {
		panic("prox: no unassigned split candidate")
	}

	candidates[maxIdx].group = selectedGroup
	if selectedGroup == 0 {
		*groupBounds0 = groupBounds0.Merge(candidates[maxIdx].bounds)
	} else {
		*groupBounds1 = groupBounds1.Merge(candidates[maxIdx].bounds)
	}
}

// splitNode distributes the node's children plus toInsert over the node and a
// fresh sibling using the quadratic split, and returns the sibling. The node
// is cleared and refilled as group 0; the sibling carries group 1 and the
// node's leaf flag.
func splitNode[C any](node *rtreeNode, toInsert C, ops childOps[C], t geom.Time) *rtreeNode {
	candidates := make([]splitCandidate[C], 0, node.size()+1)
	for i := 0; i < node.size(); i++ {
		candidates = append(candidates, splitCandidate[C]{
			child:  ops.child(node, i),
			bounds: node.childBounds(i, t),
			group:  unassignedGroup,
		})
	}
	candidates = append(candidates, splitCandidate[C]{
		child:  toInsert,
		bounds: ops.bounds(toInsert, t),
		group:  unassignedGroup,
	})

	groupBounds0, groupBounds1 := pickSeeds(candidates)

	for assigned := 2; assigned < len(candidates); assigned++ {
		pickNextChild(candidates, &groupBounds0, &groupBounds1)
	}

	node.clear()
	sibling := newRTreeNode(node.capacity)
	sibling.leaf = node.leaf

	for i := range candidates {
		target := node
		if candidates[i].group == 1 {
			target = sibling
		}
		ops.insert(target, candidates[i].child, t)
	}

	return sibling
}

// chooseLeaf descends from the root picking, at each internal node, the child
// whose sphere needs the least volume increase to take the object. Ties go to
// the first child encountered.
func chooseLeaf(root *rtreeNode, obj *Object, t geom.Time) *rtreeNode {
	objBounds := obj.WorldBounds(t)
	node := root

	for !node.leaf {
		minIncrease := 0.0
		var minIncreaseNode *rtreeNode

		for _, child := range node.children {
			merged := child.bounds.Merge(objBounds)
			increase := merged.Volume() - child.bounds.Volume()
			if minIncreaseNode == nil || increase < minIncrease {
				minIncrease = increase
				minIncreaseNode = child
			}
		}

		node = minIncreaseNode
	}

	return node
}

// adjustTree walks from the inserted leaf to the root, recomputing each
// node's bounds from its children (naive but simple) and inserting any
// pending split sibling into the parent, splitting full parents as it goes.
// If a sibling survives past the root, a new internal root adopts both.
// Returns the (possibly new) root.
func adjustTree(leaf, sibling *rtreeNode, t geom.Time) *rtreeNode {
	node := leaf
	pending := sibling

	for node.parent != nil {
		parent := node.parent
		node.recomputeBounds(t)

		var parentSibling *rtreeNode
		if pending != nil {
			if parent.full() {
				parentSibling = splitNode(parent, pending, nodeOps, t)
			} else {
				parent.insertNode(pending)
			}
		}

		node = parent
		pending = parentSibling
	}

	node.recomputeBounds(t)

	if pending != nil {
		newRoot := newRTreeNode(node.capacity)
		newRoot.leaf = false
		newRoot.insertNode(node)
		newRoot.insertNode(pending)
		node = newRoot
	}

	return node
}

// rtreeInsert adds one object at time t and returns the new root.
func rtreeInsert(root *rtreeNode, obj *Object, t geom.Time) *rtreeNode {
	leaf := chooseLeaf(root, obj, t)

	var sibling *rtreeNode
	if leaf.full() {
		sibling = splitNode(leaf, obj, objectOps, t)
	} else {
		leaf.insertObject(obj, t)
	}

	return adjustTree(leaf, sibling, t)
}

// verifyBounds walks the tree checking that every node's sphere contains all
// of its children's bounds, logging each violation. It returns the violation
// count and never aborts; the check is diagnostic only.
func verifyBounds(node *rtreeNode, t geom.Time) int {
	violations := 0
	for i := 0; i < node.size(); i++ {
		childBounds := node.childBounds(i, t)
		if !node.bounds.Contains(childBounds) {
			kind := "node"
			if node.leaf {
				kind = "object"
			}
			slack := node.bounds.Radius -
				(node.bounds.Center.Sub(childBounds.Center).Length() + childBounds.Radius)
			// Floating point slop from repeated merges is expected; anything
			// beyond tolerance is a real containment failure.
			if slack > -boundsTolerance(node.bounds.Radius) {
				continue
			}
			log.Printf("prox: %s child exceeds parent bounds by %g", kind, -slack)
			violations++
		}
	}
	if !node.leaf {
		for _, child := range node.children {
			violations += verifyBounds(child, t)
		}
	}
	return violations
}

func boundsTolerance(radius float64) float64 {
	return 1e-9 * math.Max(radius, 1)
}
