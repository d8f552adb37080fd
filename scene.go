package geodesic

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/mirstar13/geodesic/vecmath"
)

// objectKind tags which field of sceneObject is live. A tagged union keeps
// Scene's top-level BVH homogeneous over one concrete type instead of
// boxing every primitive behind an interface{}, trading a little storage
// for a dispatch that is a single switch instead of an interface call.
type objectKind uint8

const (
	kindSphere objectKind = iota
	kindPlane
	kindTriangle
	kindInstance
)

type sceneObject[T vecmath.Float] struct {
	kind     objectKind
	sphere   Sphere[T]
	plane    Plane[T]
	triangle Triangle[T]
	instance *Instance[T]
}

func (o sceneObject[T]) Bounds() AABB[T] {
	switch o.kind {
	case kindSphere:
		return o.sphere.Bounds()
	case kindPlane:
		return o.plane.Bounds()
	case kindTriangle:
		return o.triangle.Bounds()
	default:
		return o.instance.Bounds()
	}
}

func (o sceneObject[T]) Centroid() vecmath.Vec3[T] {
	switch o.kind {
	case kindSphere:
		return o.sphere.Centroid()
	case kindPlane:
		return o.plane.Centroid()
	case kindTriangle:
		return o.triangle.Centroid()
	default:
		return o.instance.Centroid()
	}
}

func (o sceneObject[T]) Intersect(ray Ray[T], tMax T) (Hit[T], bool) {
	switch o.kind {
	case kindSphere:
		return o.sphere.Intersect(ray, tMax)
	case kindPlane:
		return o.plane.Intersect(ray, tMax)
	case kindTriangle:
		return o.triangle.Intersect(ray, tMax)
	default:
		return o.instance.Intersect(ray, tMax)
	}
}

// Scene is the top-level acceleration structure over every object in a
// world: spheres, planes, loose triangles, and mesh Instances, all behind
// one outer BVH.
type Scene[T vecmath.Float] struct {
	objects []sceneObject[T]
	bvh     *BVH[T, sceneObject[T]]
}

// Len reports the number of top-level objects in the scene.
func (s *Scene[T]) Len() int {
	return len(s.objects)
}

// NodeCount reports the node count of the scene's top-level BVH.
func (s *Scene[T]) NodeCount() int {
	return s.bvh.NodeCount()
}

// Intersect finds the closest hit among every object in the scene,
// returning the index of the hit object in construction order.
func (s *Scene[T]) Intersect(ray Ray[T]) (int, Hit[T], bool) {
	return s.bvh.Intersect(ray)
}

// IntersectAny reports whether ray is occluded within (ε, tMax].
func (s *Scene[T]) IntersectAny(ray Ray[T], tMax T) bool {
	return s.bvh.IntersectAny(ray, tMax)
}

// LineOfSight reports whether nothing occludes the segment from "from" to
// "to". The ray direction is to-from, unnormalized, so tMax = 1 tests
// exactly the segment; a caller that wants to stop just short of the
// target (to avoid the target's own surface self-intersecting) passes a
// tMax slightly below 1.
func (s *Scene[T]) LineOfSight(from, to vecmath.Vec3[T], tMax T) bool {
	ray := newRayUnnormalized(from, to.Sub(from))
	return !s.bvh.IntersectAny(ray, tMax)
}

// SceneBuilder accumulates objects and builds a Scene's top-level BVH on
// Finalize. Multiple construction-time failures are aggregated with
// multierr rather than stopping at the first.
type SceneBuilder[T vecmath.Float] struct {
	objects []sceneObject[T]
	config  BvhConfig
	logger  *zap.Logger
	errs    error
}

// NewSceneBuilder starts an empty builder with the given BVH tuning
// configuration.
func NewSceneBuilder[T vecmath.Float](cfg BvhConfig) *SceneBuilder[T] {
	return &SceneBuilder[T]{config: cfg, logger: zap.NewNop()}
}

// WithLogger attaches a structured logger for Finalize's assembly-summary
// line. The default is a no-op logger, so callers who never configure
// logging pay no cost.
func (b *SceneBuilder[T]) WithLogger(logger *zap.Logger) *SceneBuilder[T] {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// AddSphere validates and appends a sphere.
func (b *SceneBuilder[T]) AddSphere(center vecmath.Vec3[T], radius T) *SceneBuilder[T] {
	sphere, err := NewSphere(center, radius)
	if err != nil {
		b.fail(err, "sphere")
		return b
	}
	b.objects = append(b.objects, sceneObject[T]{kind: kindSphere, sphere: sphere})
	return b
}

// AddPlane validates and appends a plane.
func (b *SceneBuilder[T]) AddPlane(point, normal vecmath.Vec3[T]) *SceneBuilder[T] {
	plane, err := NewPlane(point, normal)
	if err != nil {
		b.fail(err, "plane")
		return b
	}
	b.objects = append(b.objects, sceneObject[T]{kind: kindPlane, plane: plane})
	return b
}

// AddTriangle validates and appends a standalone triangle (not part of a
// Mesh).
func (b *SceneBuilder[T]) AddTriangle(v0, v1, v2, n0, n1, n2 vecmath.Vec3[T]) *SceneBuilder[T] {
	tri, err := NewTriangle(v0, v1, v2, n0, n1, n2)
	if err != nil {
		b.fail(err, "triangle")
		return b
	}
	b.objects = append(b.objects, sceneObject[T]{kind: kindTriangle, triangle: tri})
	return b
}

// AddInstance validates transform and appends an Instance referencing
// mesh. The Mesh is owned by its caller; Scene only stores a reference,
// so a single Mesh can back any number of Instances with distinct
// transforms.
func (b *SceneBuilder[T]) AddInstance(mesh *Mesh[T], transform vecmath.Mat4[T]) *SceneBuilder[T] {
	inst, err := NewInstance(mesh, transform)
	if err != nil {
		b.fail(err, "instance")
		return b
	}
	b.objects = append(b.objects, sceneObject[T]{kind: kindInstance, instance: inst})
	return b
}

func (b *SceneBuilder[T]) fail(err error, what string) {
	b.errs = multierr.Append(b.errs, errors.Wrapf(err, "%s %d", what, len(b.objects)))
}

// Finalize validates every accumulated object and builds the scene's
// top-level BVH. An empty scene is accepted: its queries always report no
// hit and no occlusion.
func (b *SceneBuilder[T]) Finalize() (*Scene[T], error) {
	if b.errs != nil {
		return nil, b.errs
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	bvh, err := BuildBVH[T, sceneObject[T]](b.objects, b.config)
	if err != nil {
		return nil, err
	}

	b.logger.Info("scene assembled",
		zap.Int("objects", len(b.objects)),
		zap.Int("bvh_nodes", bvh.NodeCount()),
		zap.Int("bvh_max_depth", bvh.MaxDepthReached()),
		zap.Any("bvh_leaf_histogram", bvh.LeafSizeHistogram()),
	)

	return &Scene[T]{objects: b.objects, bvh: bvh}, nil
}
