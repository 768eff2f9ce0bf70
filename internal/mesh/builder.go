package mesh

import (
	"fmt"

	"github.com/roofscope/measure/internal/geom"
	"github.com/roofscope/measure/internal/surface"
)

// DefaultExtrusionHeight is the slab thickness given to extruded surfaces,
// in metres.
const DefaultExtrusionHeight = 0.1

// BuildOptions tunes geometry construction.
type BuildOptions struct {
	// ExtrusionHeight is the distance between the bottom and top rings in
	// metres. Zero selects DefaultExtrusionHeight.
	ExtrusionHeight float64
	// LOD reserves a level-of-detail slot in the cache key. The builder
	// currently produces a single detail level.
	LOD int
}

type cacheKey struct {
	planeID   string
	extrusion float64
	lod       int
}

// Builder converts surfaces to geometry, memoizing results per plane and
// options. Repeated identical requests within a session skip recomputation;
// a recompute simply overwrites the cached entry.
type Builder struct {
	cache map[cacheKey]*Geometry
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{cache: make(map[cacheKey]*Geometry)}
}

// BuildGeometry extrudes a surface's boundary into a closed solid. The
// boundary is duplicated at y=0 and y=ExtrusionHeight, capped top and
// bottom, and stitched with one quad per boundary edge. The bottom cap winds
// in reverse so both caps face outward.
func (b *Builder) BuildGeometry(plane *surface.Plane, opts BuildOptions) (*Geometry, error) {
	n := len(plane.Boundary)
	if n < 3 {
		return nil, fmt.Errorf("plane %s: %w: %d boundary points", plane.ID, ErrInvalidGeometry, n)
	}
	height := opts.ExtrusionHeight
	if height == 0 {
		height = DefaultExtrusionHeight
	}

	key := cacheKey{planeID: plane.ID, extrusion: height, lod: opts.LOD}
	if cached, ok := b.cache[key]; ok {
		return cached, nil
	}

	g := &Geometry{
		PlaneID:   plane.ID,
		Vertices:  make([]geom.Vector3, 0, 2*n),
		Faces:     make([]Face, 0, n+2),
		Materials: []string{string(plane.Material)},
	}

	// Bottom ring occupies indices [0, n), top ring [n, 2n).
	for _, p := range plane.Boundary {
		g.Vertices = append(g.Vertices, geom.Vector3{X: p.X, Y: 0, Z: p.Z})
	}
	for _, p := range plane.Boundary {
		g.Vertices = append(g.Vertices, geom.Vector3{X: p.X, Y: height, Z: p.Z})
	}

	top := make([]int, n)
	bottom := make([]int, n)
	for i := 0; i < n; i++ {
		top[i] = n + i
		bottom[i] = n - 1 - i
	}
	g.Faces = append(g.Faces, Face{Indices: top}, Face{Indices: bottom})

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		g.Faces = append(g.Faces, Face{Indices: []int{i, j, j + n, i + n}})
	}

	box := geom.NewBoundingBox()
	for _, v := range g.Vertices {
		box.Extend(v)
	}
	g.Bounds = box

	b.cache[key] = g
	return g, nil
}

// BuildModel converts every surface into a geometry owned by one model with
// an identity transform.
func (b *Builder) BuildModel(planes []*surface.Plane, name string, opts BuildOptions) (*Model, error) {
	model := &Model{
		Name:      name,
		Transform: identityTransform(),
	}
	for _, plane := range planes {
		g, err := b.BuildGeometry(plane, opts)
		if err != nil {
			return nil, fmt.Errorf("build model %q: %w", name, err)
		}
		model.Geometries = append(model.Geometries, g)
		model.TotalVertices += len(g.Vertices)
		model.TotalFaces += len(g.Faces)
	}
	return model, nil
}
