// Package sceneio loads the JSON scene, asset manifest, and camera
// documents described by the persisted wire formats, producing a ready-to-
// query geodesic.Scene. Loaded meshes are cached in a path-keyed,
// RWMutex-guarded cache with hit/miss counters; each mesh gets a
// github.com/google/uuid, and paths are made absolute before lookup so
// two different relative-path spellings of the same file share one entry.
package sceneio

import (
	"io"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/mirstar13/geodesic"
	"github.com/mirstar13/geodesic/objloader"
	"github.com/mirstar13/geodesic/vecmath"
)

// ErrUnknownObjectType is returned for a scene object whose "type" field
// does not match one of the known kinds.
var ErrUnknownObjectType = errors.New("sceneio: unknown object type")

// ErrUnknownMesh is returned when an instance references a mesh name not
// present in the asset manifest.
var ErrUnknownMesh = errors.New("sceneio: instance references unknown mesh")

type sphereJSON struct {
	Center [3]float64 `json:"center"`
	Radius float64    `json:"radius"`
}

type planeJSON struct {
	Point  [3]float64 `json:"point"`
	Normal [3]float64 `json:"normal"`
}

type triangleJSON struct {
	Vertices [3][3]float64 `json:"vertices"`
	Normals  [3][3]float64 `json:"normals"`
}

type instanceJSON struct {
	Mesh        string     `json:"mesh"`
	Translation [3]float64 `json:"translation"`
	Rotation    [3]float64 `json:"rotation_radians"`
	Scale       [3]float64 `json:"scale"`
}

type objectJSON struct {
	Type     string        `json:"type"`
	Sphere   *sphereJSON   `json:"sphere,omitempty"`
	Plane    *planeJSON    `json:"plane,omitempty"`
	Triangle *triangleJSON `json:"triangle,omitempty"`
	Instance *instanceJSON `json:"instance,omitempty"`
}

// SceneDocument is the top-level shape of scene.json: a tagged-union
// "objects" array.
type SceneDocument struct {
	Objects []objectJSON `json:"objects"`
}

// AssetsDocument is the top-level shape of assets.json: the shared BVH
// tuning configuration plus a name-to-path table of mesh assets.
type AssetsDocument struct {
	BvhConfig geodesic.BvhConfig `json:"bvh_config"`
	Meshes    map[string]string  `json:"meshes"`
}

// CameraDocument is the top-level shape of camera.json. Resolution follows
// a [height, width] convention.
type CameraDocument struct {
	Projection string     `json:"projection"`
	Position   [3]float64 `json:"position"`
	LookAt     [3]float64 `json:"look_at"`
	FOVDegrees float64    `json:"fov_degrees"`
	Resolution [2]int     `json:"resolution"`
}

func vec3(a [3]float64) vecmath.Vec3[float64] {
	return vecmath.Vec3[float64]{X: a[0], Y: a[1], Z: a[2]}
}

// LoadAssets decodes an assets.json document.
func LoadAssets(r io.Reader) (*AssetsDocument, error) {
	var doc AssetsDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "sceneio: decode assets")
	}
	return &doc, nil
}

// LoadCamera decodes a camera.json document.
func LoadCamera(r io.Reader) (*CameraDocument, error) {
	var doc CameraDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "sceneio: decode camera")
	}
	return &doc, nil
}

// MeshCache loads and caches meshes by file path, assigning each a stable
// uuid.UUID cache key. Paths are made absolute and cleaned before lookup,
// so relative and absolute spellings of the same file share one entry.
type MeshCache struct {
	mu     sync.RWMutex
	byPath map[string]uuid.UUID
	meshes map[uuid.UUID]*geodesic.Mesh[float64]
	hits   int
	misses int
}

// NewMeshCache returns an empty cache.
func NewMeshCache() *MeshCache {
	return &MeshCache{
		byPath: make(map[string]uuid.UUID),
		meshes: make(map[uuid.UUID]*geodesic.Mesh[float64]),
	}
}

// Load returns the cached mesh for path, loading and building it with cfg
// on first request.
func (c *MeshCache) Load(path string, cfg geodesic.BvhConfig) (uuid.UUID, *geodesic.Mesh[float64], error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	c.mu.RLock()
	if id, ok := c.byPath[path]; ok {
		mesh := c.meshes[id]
		c.mu.RUnlock()
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return id, mesh, nil
	}
	c.mu.RUnlock()

	triangles, err := objloader.LoadFile(path)
	if err != nil {
		return uuid.Nil, nil, errors.Wrapf(err, "sceneio: load mesh %s", path)
	}
	mesh, err := geodesic.NewMesh(triangles, cfg)
	if err != nil {
		return uuid.Nil, nil, errors.Wrapf(err, "sceneio: build mesh %s", path)
	}

	id := uuid.New()
	c.mu.Lock()
	c.byPath[path] = id
	c.meshes[id] = mesh
	c.misses++
	c.mu.Unlock()
	return id, mesh, nil
}

// Stats reports cache hit/miss counts, exposed for construction-time
// logging.
func (c *MeshCache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// LoadScene decodes a scene.json document and assembles a
// geodesic.Scene[float64] via geodesic.SceneBuilder, resolving instance
// mesh references through assets and cache. baseDir anchors relative mesh
// paths (scene/assets files commonly sit next to their referenced OBJs).
func LoadScene(r io.Reader, assets *AssetsDocument, baseDir string, cache *MeshCache) (*geodesic.Scene[float64], error) {
	var doc SceneDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "sceneio: decode scene")
	}

	builder := geodesic.NewSceneBuilder[float64](assets.BvhConfig)
	var errs error

	for i, obj := range doc.Objects {
		switch obj.Type {
		case "sphere":
			if obj.Sphere == nil {
				errs = multierr.Append(errs, errors.Errorf("sceneio: object %d: missing sphere fields", i))
				continue
			}
			builder.AddSphere(vec3(obj.Sphere.Center), obj.Sphere.Radius)

		case "plane":
			if obj.Plane == nil {
				errs = multierr.Append(errs, errors.Errorf("sceneio: object %d: missing plane fields", i))
				continue
			}
			builder.AddPlane(vec3(obj.Plane.Point), vec3(obj.Plane.Normal))

		case "triangle":
			if obj.Triangle == nil {
				errs = multierr.Append(errs, errors.Errorf("sceneio: object %d: missing triangle fields", i))
				continue
			}
			tr := obj.Triangle
			builder.AddTriangle(
				vec3(tr.Vertices[0]), vec3(tr.Vertices[1]), vec3(tr.Vertices[2]),
				vec3(tr.Normals[0]), vec3(tr.Normals[1]), vec3(tr.Normals[2]),
			)

		case "instance":
			if obj.Instance == nil {
				errs = multierr.Append(errs, errors.Errorf("sceneio: object %d: missing instance fields", i))
				continue
			}
			meshPath, ok := assets.Meshes[obj.Instance.Mesh]
			if !ok {
				errs = multierr.Append(errs, errors.Wrapf(ErrUnknownMesh, "object %d: %q", i, obj.Instance.Mesh))
				continue
			}
			if !filepath.IsAbs(meshPath) {
				meshPath = filepath.Join(baseDir, meshPath)
			}
			_, mesh, err := cache.Load(meshPath, assets.BvhConfig)
			if err != nil {
				errs = multierr.Append(errs, errors.Wrapf(err, "object %d", i))
				continue
			}
			scale := obj.Instance.Scale
			if scale == ([3]float64{}) {
				scale = [3]float64{1, 1, 1}
			}
			transform := vecmath.ComposeTRS(
				vec3(obj.Instance.Translation),
				vec3(obj.Instance.Rotation),
				vec3(scale),
			)
			builder.AddInstance(mesh, transform)

		default:
			errs = multierr.Append(errs, errors.Wrapf(ErrUnknownObjectType, "object %d: %q", i, obj.Type))
		}
	}

	if errs != nil {
		return nil, errs
	}
	return builder.Finalize()
}
