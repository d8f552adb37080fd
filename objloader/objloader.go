// Package objloader parses Wavefront OBJ geometry into geodesic.Triangle
// slices, fan-triangulating n-gon faces. It is deliberately thin: geometry
// only, no materials or textures.
package objloader

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/mirstar13/geodesic"
	"github.com/mirstar13/geodesic/vecmath"
)

// ErrNoVertices is returned when the stream contains no "v" records.
var ErrNoVertices = errors.New("objloader: no vertices found")

// ErrMissingNormalIndex is returned by a face vertex with no normal index.
// The loader requires normal-bearing faces (v/vt/vn or v//vn); a bare "v"
// or "v/vt" face is a loader error, not a silent flat-shaded default.
var ErrMissingNormalIndex = errors.New("objloader: face vertex missing a normal index")

type faceVertex struct {
	vertex int
	normal int
}

// LoadFile opens path and parses it with Load.
func LoadFile(path string) ([]geodesic.Triangle[float64], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "objloader: open %s", path)
	}
	defer file.Close()
	return Load(file)
}

// Load scans r for "v", "vn", and "f" records and returns one
// geodesic.Triangle per triangulated face (n-gon faces are fan-
// triangulated). Every parse failure across the whole file is collected
// with multierr and returned together rather than stopping at the first
// malformed line.
func Load(r io.Reader) ([]geodesic.Triangle[float64], error) {
	var vertices []vecmath.Vec3[float64]
	var normals []vecmath.Vec3[float64]
	var triangles []geodesic.Triangle[float64]
	var errs error

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				errs = multierr.Append(errs, errors.Wrapf(err, "line %d", lineNum))
				continue
			}
			vertices = append(vertices, v)

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				errs = multierr.Append(errs, errors.Wrapf(err, "line %d", lineNum))
				continue
			}
			normals = append(normals, n)

		case "f":
			tris, err := parseFace(fields[1:], vertices, normals)
			if err != nil {
				errs = multierr.Append(errs, errors.Wrapf(err, "line %d", lineNum))
				continue
			}
			triangles = append(triangles, tris...)

		default:
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		errs = multierr.Append(errs, errors.Wrap(err, "objloader: scan"))
	}
	if errs != nil {
		return nil, errs
	}
	if len(vertices) == 0 {
		return nil, ErrNoVertices
	}
	return triangles, nil
}

func parseFace(tokens []string, vertices, normals []vecmath.Vec3[float64]) ([]geodesic.Triangle[float64], error) {
	if len(tokens) < 3 {
		return nil, errors.New("objloader: face must have at least 3 vertices")
	}

	faceVerts := make([]faceVertex, 0, len(tokens))
	for _, token := range tokens {
		fv, err := parseFaceVertex(token, len(vertices), len(normals))
		if err != nil {
			return nil, err
		}
		faceVerts = append(faceVerts, fv)
	}

	triangles := make([]geodesic.Triangle[float64], 0, len(faceVerts)-2)
	for i := 1; i < len(faceVerts)-1; i++ {
		a, b, c := faceVerts[0], faceVerts[i], faceVerts[i+1]
		tri, err := geodesic.NewTriangle(
			vertices[a.vertex], vertices[b.vertex], vertices[c.vertex],
			normals[a.normal], normals[b.normal], normals[c.normal],
		)
		if err != nil {
			return nil, err
		}
		triangles = append(triangles, tri)
	}
	return triangles, nil
}

func parseVec3(fields []string) (vecmath.Vec3[float64], error) {
	if len(fields) < 3 {
		return vecmath.Vec3[float64]{}, errors.New("objloader: expected 3 numeric components")
	}
	x, err1 := strconv.ParseFloat(fields[0], 64)
	y, err2 := strconv.ParseFloat(fields[1], 64)
	z, err3 := strconv.ParseFloat(fields[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return vecmath.Vec3[float64]{}, errors.New("objloader: invalid numeric component")
	}
	return vecmath.Vec3[float64]{X: x, Y: y, Z: z}, nil
}

// parseFaceVertex parses the "v/vt/vn" token format, requiring a normal
// index (the vt slot may be empty: "v//vn").
func parseFaceVertex(token string, vertexCount, normalCount int) (faceVertex, error) {
	parts := strings.Split(token, "/")
	if len(parts) < 3 || parts[2] == "" {
		return faceVertex{}, ErrMissingNormalIndex
	}

	vIdx, err1 := strconv.Atoi(parts[0])
	nIdx, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		return faceVertex{}, errors.New("objloader: invalid face index")
	}

	v := vIdx - 1
	n := nIdx - 1
	if v < 0 || v >= vertexCount || n < 0 || n >= normalCount {
		return faceVertex{}, errors.New("objloader: face index out of range")
	}
	return faceVertex{vertex: v, normal: n}, nil
}
