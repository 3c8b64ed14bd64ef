package model

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// --- Bounds ---

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyBox returns a box that contains no points. Expanding it by any point
// yields a degenerate box at that point.
//
// Returns:
//   - Box3: the empty box
func EmptyBox() Box3 {
	inf := math32.Inf(1)
	return Box3{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// ExpandByPoint grows the box to contain p.
//
// Parameters:
//   - p: the point to include
func (b *Box3) ExpandByPoint(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math32.Min(b.Min[i], p[i])
		b.Max[i] = math32.Max(b.Max[i], p[i])
	}
}

// Union grows the box to contain other. Empty boxes are ignored.
//
// Parameters:
//   - other: the box to include
func (b *Box3) Union(other Box3) {
	if other.IsEmpty() {
		return
	}
	b.ExpandByPoint(other.Min)
	b.ExpandByPoint(other.Max)
}

// Center returns the midpoint of the box, or the origin for an empty box.
//
// Returns:
//   - mgl32.Vec3: the center point
func (b Box3) Center() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b Box3) Size() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Translate returns the box moved by offset.
func (b Box3) Translate(offset mgl32.Vec3) Box3 {
	if b.IsEmpty() {
		return b
	}
	return Box3{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// ComputeNormals returns area-weighted vertex normals for a triangle list.
// Empty indices mean consecutive vertex triples form the triangles. Vertices
// touched by no triangle, or only by degenerate ones, get the zero vector.
//
// Parameters:
//   - positions: the vertex positions
//   - indices: the triangle indices, or nil
//
// Returns:
//   - []mgl32.Vec3: one normal per position
func ComputeNormals(positions []mgl32.Vec3, indices []uint32) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(positions))
	tri := func(a, b, c int) {
		if a >= len(positions) || b >= len(positions) || c >= len(positions) {
			return
		}
		// The unnormalized cross product weights each face by its area.
		n := positions[b].Sub(positions[a]).Cross(positions[c].Sub(positions[a]))
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	if len(indices) == 0 {
		for i := 0; i+2 < len(positions); i += 3 {
			tri(i, i+1, i+2)
		}
	} else {
		for i := 0; i+2 < len(indices); i += 3 {
			tri(int(indices[i]), int(indices[i+1]), int(indices[i+2]))
		}
	}
	for i, n := range normals {
		normals[i] = common.SafeNormalize(n)
	}
	return normals
}

// --- Import Types ---

// ImportedMaterial holds the surface properties read from a model file.
type ImportedMaterial struct {
	// Name is the material identifier.
	Name string

	// BaseColor is the linear RGB base color factor.
	BaseColor common.Color

	// Opacity is the alpha component of the base color factor.
	Opacity float32

	// Transparent is true when the file requests alpha blending.
	Transparent bool

	// DoubleSided is true when back faces should be rendered.
	DoubleSided bool
}

// ImportedModel represents a 3D model loaded from an external format.
// It is immutable once produced by an importer and may be shared between
// several Model instances.
type ImportedModel struct {
	// Name is the model identifier.
	Name string

	// Meshes contains all mesh data with node transforms already applied.
	Meshes []ImportedMesh

	// Materials are referenced by ImportedMesh.MaterialIndex.
	Materials []ImportedMaterial
}

// ImportedMesh represents a single mesh primitive within an imported model.
type ImportedMesh struct {
	// Name is the mesh identifier.
	Name string

	// Positions are the vertex positions in model space.
	Positions []mgl32.Vec3

	// Normals are unit vertex normals parallel to Positions. May be empty.
	Normals []mgl32.Vec3

	// Indices are the triangle indices. Empty for non-indexed geometry.
	Indices []uint32

	// MaterialIndex references ImportedModel.Materials, or -1 for the default material.
	MaterialIndex int

	// Bounds is the axis-aligned bounding box of Positions.
	Bounds Box3
}

// Bounds returns the union of every mesh's bounding box.
//
// Returns:
//   - Box3: the model-space bounding box
func (m *ImportedModel) Bounds() Box3 {
	box := EmptyBox()
	for _, mesh := range m.Meshes {
		box.Union(mesh.Bounds)
	}
	return box
}

// --- Instance Types ---

// Mesh is a renderable mesh of a Model instance.
type Mesh struct {
	Name          string
	Positions     []mgl32.Vec3
	Normals       []mgl32.Vec3
	Indices       []uint32
	MaterialIndex int
	Bounds        Box3
	CastShadow    bool
	ReceiveShadow bool
}

// Material is the render-ready material of a Model instance.
type Material struct {
	Name string

	// Color is the color used for shading. It starts as BaseColor and may be overridden.
	Color common.Color

	// BaseColor is the color imported from the file.
	BaseColor common.Color

	Opacity     float32
	Transparent bool
	DoubleSided bool

	PolygonOffset       bool
	PolygonOffsetFactor float32
	PolygonOffsetUnits  float32
}

// defaultMaterial is used by meshes that reference no material.
var defaultMaterial = ImportedMaterial{
	Name:      "default",
	BaseColor: common.Color{R: 1, G: 1, B: 1},
	Opacity:   1,
}
