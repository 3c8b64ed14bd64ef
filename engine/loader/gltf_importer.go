package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct{}

// gltfImporter turns glTF/GLB bytes into an ImportedModel with node transforms
// baked into the vertex positions.
type gltfImporter interface {
	// Import parses data and extracts meshes and materials.
	//
	// Parameters:
	//   - data: the glTF JSON or GLB bytes
	//   - path: the source path, used for naming and resolving external buffers
	//
	// Returns:
	//   - *model.ImportedModel: the imported model
	//   - error: error if parsing or extraction fails
	Import(data []byte, path string) (*model.ImportedModel, error)
}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates a new glTF importer.
//
// Returns:
//   - gltfImporter: the importer
func newGLTFImporter() gltfImporter {
	return &gltfImporterImpl{}
}

func (imp *gltfImporterImpl) Import(data []byte, path string) (*model.ImportedModel, error) {
	parser := newGLTFParser()
	if err := parser.Parse(data, filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	doc := parser.Document()
	out := &model.ImportedModel{
		Name:      gltfModelName(doc, path),
		Materials: gltfMaterials(doc),
	}

	visit := func(meshIndex int, name string, world mgl32.Mat4) error {
		meshes, err := gltfExtractMesh(parser, meshIndex, name, world)
		if err != nil {
			return err
		}
		out.Meshes = append(out.Meshes, meshes...)
		return nil
	}

	roots := gltfRootNodes(doc)
	if len(roots) == 0 {
		// Meshes without a node hierarchy are imported untransformed.
		for i := range doc.Meshes {
			if err := visit(i, doc.Meshes[i].Name, mgl32.Ident4()); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	visited := make(map[int]bool, len(doc.Nodes))
	var walk func(nodeIndex int, parent mgl32.Mat4) error
	walk = func(nodeIndex int, parent mgl32.Mat4) error {
		if nodeIndex < 0 || nodeIndex >= len(doc.Nodes) {
			return fmt.Errorf("node index %d out of range", nodeIndex)
		}
		if visited[nodeIndex] {
			return fmt.Errorf("node %d is reachable more than once", nodeIndex)
		}
		visited[nodeIndex] = true

		node := &doc.Nodes[nodeIndex]
		world := parent.Mul4(gltfNodeMatrix(node))
		if node.Mesh != nil {
			name := node.Name
			if name == "" && *node.Mesh >= 0 && *node.Mesh < len(doc.Meshes) {
				name = doc.Meshes[*node.Mesh].Name
			}
			if err := visit(*node.Mesh, name, world); err != nil {
				return err
			}
		}
		for _, child := range node.Children {
			if err := walk(child, world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := walk(root, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// gltfRootNodes returns the root nodes of the default scene, falling back to the
// first scene and then to every node that is nobody's child.
func gltfRootNodes(doc *gltfDocument) []int {
	if len(doc.Scenes) > 0 {
		scene := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			scene = *doc.Scene
		}
		return doc.Scenes[scene].Nodes
	}

	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []int
	for i, child := range isChild {
		if !child {
			roots = append(roots, i)
		}
	}
	return roots
}

// gltfNodeMatrix returns a node's local transform: its matrix when present,
// otherwise T × R × S.
func gltfNodeMatrix(node *gltfNode) mgl32.Mat4 {
	if node.Matrix != nil {
		return mgl32.Mat4(*node.Matrix)
	}

	m := mgl32.Ident4()
	if t := node.Translation; t != nil {
		m = m.Mul4(mgl32.Translate3D(t[0], t[1], t[2]))
	}
	if r := node.Rotation; r != nil {
		q := mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}
		m = m.Mul4(q.Normalize().Mat4())
	}
	if s := node.Scale; s != nil {
		m = m.Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
	}
	return m
}

// gltfExtractMesh reads every primitive of a mesh, transforming positions by world
// and normals by its inverse transpose. Primitives without usable normals get
// area-weighted normals computed from their triangles.
func gltfExtractMesh(parser gltfParser, meshIndex int, name string, world mgl32.Mat4) ([]model.ImportedMesh, error) {
	doc := parser.Document()
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", meshIndex)
	}
	mesh := &doc.Meshes[meshIndex]

	out := make([]model.ImportedMesh, 0, len(mesh.Primitives))
	for pi, prim := range mesh.Primitives {
		posIndex, ok := prim.Attributes[gltfAttributePosition]
		if !ok {
			continue
		}
		if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
			continue
		}

		positions, err := parser.ReadVec3Accessor(posIndex)
		if err != nil {
			return nil, fmt.Errorf("mesh %d primitive %d positions: %w", meshIndex, pi, err)
		}

		bounds := model.EmptyBox()
		for i, p := range positions {
			positions[i] = world.Mul4x1(p.Vec4(1)).Vec3()
			bounds.ExpandByPoint(positions[i])
		}

		var indices []uint32
		if prim.Indices != nil {
			if indices, err = parser.ReadIndicesAccessor(*prim.Indices); err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d indices: %w", meshIndex, pi, err)
			}
		}

		var normals []mgl32.Vec3
		if normIndex, ok := prim.Attributes[gltfAttributeNormal]; ok {
			if normals, err = parser.ReadVec3Accessor(normIndex); err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d normals: %w", meshIndex, pi, err)
			}
		}
		if len(normals) == len(positions) && world.Mat3().Det() != 0 {
			normalMatrix := world.Mat3().Inv().Transpose()
			for i, n := range normals {
				normals[i] = common.SafeNormalize(normalMatrix.Mul3x1(n))
			}
		} else {
			normals = model.ComputeNormals(positions, indices)
		}

		materialIndex := -1
		if prim.Material != nil {
			materialIndex = *prim.Material
		}

		primName := name
		if len(mesh.Primitives) > 1 {
			primName = fmt.Sprintf("%s_%d", name, pi)
		}

		out = append(out, model.ImportedMesh{
			Name:          primName,
			Positions:     positions,
			Normals:       normals,
			Indices:       indices,
			MaterialIndex: materialIndex,
			Bounds:        bounds,
		})
	}
	return out, nil
}

func gltfMaterials(doc *gltfDocument) []model.ImportedMaterial {
	out := make([]model.ImportedMaterial, len(doc.Materials))
	for i, m := range doc.Materials {
		factor := [4]float32{1, 1, 1, 1}
		if m.PbrMetallicRoughness != nil && m.PbrMetallicRoughness.BaseColorFactor != nil {
			factor = *m.PbrMetallicRoughness.BaseColorFactor
		}
		out[i] = model.ImportedMaterial{
			Name:        m.Name,
			BaseColor:   common.Color{R: factor[0], G: factor[1], B: factor[2]},
			Opacity:     factor[3],
			Transparent: m.AlphaMode == gltfAlphaModeBlend,
			DoubleSided: m.DoubleSided,
		}
	}
	return out
}

// gltfModelName prefers the default scene's name, then the file's base name.
func gltfModelName(doc *gltfDocument, path string) string {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		if name := doc.Scenes[*doc.Scene].Name; name != "" {
			return name
		}
	}
	if path != "" {
		base := filepath.Base(path)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return "unnamed_model"
}
