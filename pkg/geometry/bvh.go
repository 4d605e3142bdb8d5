package geometry

import (
	"math/rand"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
)

// bvhChild references either another node or a shape in the arena
type bvhChild struct {
	index int
	leaf  bool
}

// bvhNode is an interior node of the hierarchy
type bvhNode struct {
	bbox  core.AABB
	left  bvhChild
	right bvhChild
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// It is built once and read-only afterwards, so it is safe for concurrent Hit calls.
type BVH struct {
	shapes []Shape     // Shape arena, indexed by leaf children
	boxes  []core.AABB // Cached bounding box per shape
	nodes  []bvhNode   // Flat node array
	root   int         // Index of the root node, -1 when empty
}

// NewBVH constructs a BVH from a slice of shapes.
// Split axes are drawn from random, so the tree shape depends on its seed.
func NewBVH(shapes []Shape, random *rand.Rand) *BVH {
	bvh := &BVH{root: -1}
	if len(shapes) == 0 {
		return bvh
	}

	// Copy the shapes so later changes to the caller's slice are not visible
	bvh.shapes = make([]Shape, len(shapes))
	copy(bvh.shapes, shapes)

	bvh.boxes = make([]core.AABB, len(shapes))
	for i, shape := range bvh.shapes {
		bvh.boxes[i] = shape.BoundingBox()
	}

	indices := make([]int, len(shapes))
	for i := range indices {
		indices[i] = i
	}

	bvh.nodes = make([]bvhNode, 0, len(shapes))
	bvh.root = bvh.build(indices, random)
	return bvh
}

// build recursively creates nodes for the given shape indices and returns the new node index
func (bvh *BVH) build(indices []int, random *rand.Rand) int {
	axis := random.Intn(3)
	less := func(a, b int) bool {
		return bvh.boxes[a].Axis(axis).Min < bvh.boxes[b].Axis(axis).Min
	}

	var left, right bvhChild
	switch len(indices) {
	case 1:
		left = bvhChild{index: indices[0], leaf: true}
		right = left
	case 2:
		if less(indices[0], indices[1]) {
			left = bvhChild{index: indices[0], leaf: true}
			right = bvhChild{index: indices[1], leaf: true}
		} else {
			left = bvhChild{index: indices[1], leaf: true}
			right = bvhChild{index: indices[0], leaf: true}
		}
	default:
		sort.SliceStable(indices, func(i, j int) bool {
			return less(indices[i], indices[j])
		})
		mid := len(indices) / 2
		left = bvhChild{index: bvh.build(indices[:mid], random)}
		right = bvhChild{index: bvh.build(indices[mid:], random)}
	}

	bvh.nodes = append(bvh.nodes, bvhNode{
		bbox:  bvh.childBox(left).Combine(bvh.childBox(right)),
		left:  left,
		right: right,
	})
	return len(bvh.nodes) - 1
}

func (bvh *BVH) childBox(child bvhChild) core.AABB {
	if child.leaf {
		return bvh.boxes[child.index]
	}
	return bvh.nodes[child.index].bbox
}

// Hit tests if a ray intersects any shape in the BVH and returns the nearest hit
func (bvh *BVH) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*core.HitRecord, bool) {
	if bvh.root < 0 {
		return nil, false
	}
	return bvh.hitNode(bvh.root, ray, rayT, sampler)
}

func (bvh *BVH) hitNode(index int, ray core.Ray, rayT core.Interval, sampler core.Sampler) (*core.HitRecord, bool) {
	node := &bvh.nodes[index]
	if !node.bbox.Hit(ray, rayT) {
		return nil, false
	}

	leftHit, hitLeft := bvh.hitChild(node.left, ray, rayT, sampler)

	// A single-shape leaf stores the same shape twice; testing it again would
	// draw a second sample for stochastic shapes
	if node.left == node.right {
		return leftHit, hitLeft
	}

	rightT := rayT
	if hitLeft {
		rightT.Max = leftHit.T
	}
	if rightHit, hitRight := bvh.hitChild(node.right, ray, rightT, sampler); hitRight {
		return rightHit, true
	}

	return leftHit, hitLeft
}

func (bvh *BVH) hitChild(child bvhChild, ray core.Ray, rayT core.Interval, sampler core.Sampler) (*core.HitRecord, bool) {
	if child.leaf {
		return bvh.shapes[child.index].Hit(ray, rayT, sampler)
	}
	return bvh.hitNode(child.index, ray, rayT, sampler)
}

// BoundingBox implements the Shape interface - returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.root < 0 {
		return core.EmptyAABB
	}
	return bvh.nodes[bvh.root].bbox
}

// ShapeCount returns the number of shapes stored in the BVH
func (bvh *BVH) ShapeCount() int {
	return len(bvh.shapes)
}

// NodeCount returns the number of interior nodes
func (bvh *BVH) NodeCount() int {
	return len(bvh.nodes)
}

// Depth returns the number of node levels from the root to the deepest leaf
func (bvh *BVH) Depth() int {
	if bvh.root < 0 {
		return 0
	}
	return bvh.depth(bvh.root)
}

func (bvh *BVH) depth(index int) int {
	node := bvh.nodes[index]
	deepest := 0
	for _, child := range []bvhChild{node.left, node.right} {
		if !child.leaf {
			deepest = max(deepest, bvh.depth(child.index))
		}
	}
	return deepest + 1
}
