package geodesic

import (
	"sort"

	"github.com/mirstar13/geodesic/vecmath"
)

// bvhNode is a flat BVH node. A leaf has Count > 0 and FirstPrim indexing
// into BVH.indices; an internal node has Count == 0 and Left/Right
// indexing into BVH.nodes. Nodes are emitted so that a node's left child
// is always the entry immediately following it (left-subtree-contiguous
// layout), which keeps the tree in one flat slice instead of a pointer
// tree.
type bvhNode[T vecmath.Float] struct {
	Bounds    AABB[T]
	Left      int32
	Right     int32
	FirstPrim int32
	Count     int32
	Axis      uint8
}

// BVH is a bounding volume hierarchy over a slice of primitives, built
// with the surface-area heuristic and queried with an ordered traversal.
// P is any type implementing Primitive[T]; Scene and Mesh each instantiate
// their own BVH over their own primitive type.
type BVH[T vecmath.Float, P Primitive[T]] struct {
	items           []P
	nodes           []bvhNode[T]
	indices         []int32
	config          BvhConfig
	maxDepthReached int
	leafHistogram   map[int]int
}

// BuildBVH constructs a BVH over items using cfg. An empty items slice is
// accepted: the resulting BVH always reports "no hit" and "no occlusion".
// cfg is validated before anything else is built.
func BuildBVH[T vecmath.Float, P Primitive[T]](items []P, cfg BvhConfig) (*BVH[T, P], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &BVH[T, P]{items: items, config: cfg, leafHistogram: make(map[int]int)}
	n := len(items)
	if n == 0 {
		return b, nil
	}

	b.indices = make([]int32, n)
	bounds := make([]AABB[T], n)
	centroids := make([]vecmath.Vec3[T], n)
	for i, it := range items {
		b.indices[i] = int32(i)
		bounds[i] = it.Bounds()
		centroids[i] = it.Centroid()
	}

	b.nodes = make([]bvhNode[T], 0, 2*n)
	b.buildRecursive(0, n, bounds, centroids, 0)
	return b, nil
}

// Len reports the number of primitives in the BVH.
func (b *BVH[T, P]) Len() int {
	return len(b.items)
}

// NodeCount reports the number of nodes emitted by the build, exposed for
// construction-time logging and for determinism tests.
func (b *BVH[T, P]) NodeCount() int {
	return len(b.nodes)
}

// MaxDepthReached reports the deepest recursion level reached during the
// build, exposed for construction-time logging.
func (b *BVH[T, P]) MaxDepthReached() int {
	return b.maxDepthReached
}

// LeafSizeHistogram reports, for each leaf size that occurs in the tree,
// how many leaves hold that many primitives. Exposed for construction-time
// logging alongside NodeCount and MaxDepthReached.
func (b *BVH[T, P]) LeafSizeHistogram() map[int]int {
	histogram := make(map[int]int, len(b.leafHistogram))
	for size, n := range b.leafHistogram {
		histogram[size] = n
	}
	return histogram
}

func (b *BVH[T, P]) emitLeaf(start, count int, bounds AABB[T]) int32 {
	idx := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode[T]{
		Bounds:    bounds,
		FirstPrim: int32(start),
		Count:     int32(count),
	})
	b.leafHistogram[count]++
	return idx
}

// sahBucket accumulates the bounds and count of primitives whose centroid
// falls into one bucket along the axis under test.
type sahBucket[T vecmath.Float] struct {
	count  int
	bounds AABB[T]
}

// buildRecursive builds the subtree over b.indices[start:end] and returns
// its root node index. It operates in place on b.indices, partitioning the
// range in a quicksort-style pass rather than allocating new slices.
func (b *BVH[T, P]) buildRecursive(start, end int, bounds []AABB[T], centroids []vecmath.Vec3[T], depth int) int32 {
	if depth > b.maxDepthReached {
		b.maxDepthReached = depth
	}

	nodeBounds := EmptyAABB[T]()
	for i := start; i < end; i++ {
		nodeBounds = nodeBounds.Union(bounds[b.indices[i]])
	}
	count := end - start

	if count <= b.config.MaxShapesPerNode || depth >= b.config.MaxDepth {
		return b.emitLeaf(start, count, nodeBounds)
	}

	centroidBounds := EmptyAABB[T]()
	for i := start; i < end; i++ {
		centroidBounds = centroidBounds.UnionPoint(centroids[b.indices[i]])
	}
	centroidExtent := centroidBounds.Size()
	if centroidExtent.X <= 0 && centroidExtent.Y <= 0 && centroidExtent.Z <= 0 {
		// All centroids coincide: no axis can separate them.
		return b.emitLeaf(start, count, nodeBounds)
	}

	numBuckets := b.config.SAHBuckets
	leafCost := b.config.IntersectCost * float64(count)
	bestCost := leafCost
	bestAxis := -1
	bestSplit := 0

	for axis := 0; axis < 3; axis++ {
		extent := centroidExtent.Component(axis)
		if extent <= 0 {
			continue
		}
		cmin := centroidBounds.Min.Component(axis)

		buckets := make([]sahBucket[T], numBuckets)
		for i := range buckets {
			buckets[i].bounds = EmptyAABB[T]()
		}
		bucketOf := func(c T) int {
			k := int(T(numBuckets) * (c - cmin) / extent)
			if k < 0 {
				k = 0
			}
			if k >= numBuckets {
				k = numBuckets - 1
			}
			return k
		}
		for i := start; i < end; i++ {
			idx := b.indices[i]
			k := bucketOf(centroids[idx].Component(axis))
			buckets[k].count++
			buckets[k].bounds = buckets[k].bounds.Union(bounds[idx])
		}

		for split := 1; split < numBuckets; split++ {
			leftBounds, rightBounds := EmptyAABB[T](), EmptyAABB[T]()
			leftCount, rightCount := 0, 0
			for k := 0; k < split; k++ {
				leftBounds = leftBounds.Union(buckets[k].bounds)
				leftCount += buckets[k].count
			}
			for k := split; k < numBuckets; k++ {
				rightBounds = rightBounds.Union(buckets[k].bounds)
				rightCount += buckets[k].count
			}
			if leftCount == 0 || rightCount == 0 {
				continue
			}
			cost := b.config.TraverseCost + b.config.IntersectCost*
				(float64(leftBounds.SurfaceArea())*float64(leftCount)+
					float64(rightBounds.SurfaceArea())*float64(rightCount))/
				float64(nodeBounds.SurfaceArea())
			if cost < bestCost {
				bestCost = cost
				bestAxis = axis
				bestSplit = split
			}
		}
	}

	if bestAxis == -1 {
		// No axis has a split cheaper than the leaf: fall back to an
		// equal-count median split along the widest centroid axis rather
		// than letting the leaf grow past MaxShapesPerNode.
		axis := centroidBounds.MaxExtentAxis()
		return b.buildMedianSplit(start, end, bounds, centroids, depth, axis, nodeBounds)
	}

	extent := centroidExtent.Component(bestAxis)
	cmin := centroidBounds.Min.Component(bestAxis)
	bucketOf := func(c T) int {
		k := int(T(numBuckets) * (c - cmin) / extent)
		if k < 0 {
			k = 0
		}
		if k >= numBuckets {
			k = numBuckets - 1
		}
		return k
	}

	mid := partitionIndices(b.indices[start:end], func(idx int32) bool {
		return bucketOf(centroids[idx].Component(bestAxis)) < bestSplit
	}) + start

	if mid == start || mid == end {
		mid = (start + end) / 2
	}

	nodeIdx := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode[T]{Bounds: nodeBounds, Axis: uint8(bestAxis)})

	left := b.buildRecursive(start, mid, bounds, centroids, depth+1)
	right := b.buildRecursive(mid, end, bounds, centroids, depth+1)

	b.nodes[nodeIdx].Left = left
	b.nodes[nodeIdx].Right = right
	return nodeIdx
}

// buildMedianSplit splits b.indices[start:end] into two equal halves by
// sorting on centroid axis and cutting at the midpoint, used when the SAH
// scan in buildRecursive finds no split cheaper than a leaf but the node
// still exceeds MaxShapesPerNode.
func (b *BVH[T, P]) buildMedianSplit(start, end int, bounds []AABB[T], centroids []vecmath.Vec3[T], depth, axis int, nodeBounds AABB[T]) int32 {
	segment := b.indices[start:end]
	sort.Slice(segment, func(i, j int) bool {
		return centroids[segment[i]].Component(axis) < centroids[segment[j]].Component(axis)
	})
	mid := start + (end-start)/2

	nodeIdx := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode[T]{Bounds: nodeBounds, Axis: uint8(axis)})

	left := b.buildRecursive(start, mid, bounds, centroids, depth+1)
	right := b.buildRecursive(mid, end, bounds, centroids, depth+1)

	b.nodes[nodeIdx].Left = left
	b.nodes[nodeIdx].Right = right
	return nodeIdx
}

// partitionIndices reorders s in place so that every element for which
// keepLeft returns true precedes every element for which it returns false,
// and returns the number of elements kept left.
func partitionIndices(s []int32, keepLeft func(int32) bool) int {
	i := 0
	for j := 0; j < len(s); j++ {
		if keepLeft(s[j]) {
			s[i], s[j] = s[j], s[i]
			i++
		}
	}
	return i
}

// Intersect finds the closest intersection along ray within [ε, +∞). It
// returns the index into the original items slice, the hit record, and
// whether anything was hit. Traversal uses a fixed-capacity stack and
// visits the nearer child first so the running tMax prunes the farther
// subtree as aggressively as possible; it allocates nothing and shares no
// mutable state, so it is safe to call concurrently from any number of
// goroutines.
func (b *BVH[T, P]) Intersect(ray Ray[T]) (int, Hit[T], bool) {
	if len(b.nodes) == 0 {
		return -1, Hit[T]{}, false
	}

	tBest := vecmath.Inf[T](1)
	bestIdx := -1
	var bestHit Hit[T]

	var stack [maxStackCapacity]int32
	sp := 0
	stack[sp] = 0
	sp++

	for sp > 0 {
		sp--
		node := b.nodes[stack[sp]]
		if _, _, ok := node.Bounds.IntersectRay(ray, tBest); !ok {
			continue
		}

		if node.Count > 0 {
			for i := int32(0); i < node.Count; i++ {
				primIdx := b.indices[node.FirstPrim+i]
				if hit, ok := b.items[primIdx].Intersect(ray, tBest); ok && hit.Distance < tBest {
					tBest = hit.Distance
					bestHit = hit
					bestIdx = int(primIdx)
				}
			}
			continue
		}

		leftNode := b.nodes[node.Left]
		rightNode := b.nodes[node.Right]
		lNear, _, lHit := leftNode.Bounds.IntersectRay(ray, tBest)
		rNear, _, rHit := rightNode.Bounds.IntersectRay(ray, tBest)

		switch {
		case lHit && rHit:
			if lNear <= rNear {
				stack[sp] = node.Right
				sp++
				stack[sp] = node.Left
				sp++
			} else {
				stack[sp] = node.Left
				sp++
				stack[sp] = node.Right
				sp++
			}
		case lHit:
			stack[sp] = node.Left
			sp++
		case rHit:
			stack[sp] = node.Right
			sp++
		}
	}

	return bestIdx, bestHit, bestIdx >= 0
}

// IntersectAny reports whether ray hits anything within (ε, tMax], short-
// circuiting on the first hit found. Child visitation order does not
// affect correctness, only how quickly a hit is found, so unlike
// Intersect it descends without distance ordering.
func (b *BVH[T, P]) IntersectAny(ray Ray[T], tMax T) bool {
	if len(b.nodes) == 0 {
		return false
	}

	var stack [maxStackCapacity]int32
	sp := 0
	stack[sp] = 0
	sp++

	for sp > 0 {
		sp--
		node := b.nodes[stack[sp]]
		if _, _, ok := node.Bounds.IntersectRay(ray, tMax); !ok {
			continue
		}

		if node.Count > 0 {
			for i := int32(0); i < node.Count; i++ {
				primIdx := b.indices[node.FirstPrim+i]
				if _, ok := b.items[primIdx].Intersect(ray, tMax); ok {
					return true
				}
			}
			continue
		}

		stack[sp] = node.Left
		sp++
		stack[sp] = node.Right
		sp++
	}

	return false
}
