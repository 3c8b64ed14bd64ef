package loader

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGeometry is one triangle followed by uint16 indices, padded to 4 bytes.
func testGeometry() []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, []float32{0, 0, 0, 1, 0, 0, 0, 2, 0})
	_ = binary.Write(&buf, binary.LittleEndian, []uint16{0, 1, 2})
	buf.Write([]byte{0, 0})
	return buf.Bytes()
}

// testDocument returns a glTF document whose single node translates the triangle by (10, 0, 0).
// An empty bufferURI leaves the buffer to a GLB binary chunk.
func testDocument(bufferURI string) string {
	uri := ""
	if bufferURI != "" {
		uri = fmt.Sprintf(`"uri": %q,`, bufferURI)
	}
	return fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"name": "house", "nodes": [0]}],
  "nodes": [{"name": "root", "translation": [10, 0, 0], "children": [1]}, {"name": "roof", "mesh": 0}],
  "meshes": [{"name": "roof", "primitives": [{"attributes": {"POSITION": 0}, "indices": 1, "material": 0}]}],
  "materials": [{"name": "ijuk", "pbrMetallicRoughness": {"baseColorFactor": [1, 0, 0, 0.5]}, "alphaMode": "BLEND"}],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
    {"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 6}
  ],
  "buffers": [{%s "byteLength": 44}]
}`, uri)
}

func testGLTF() []byte {
	return []byte(testDocument("data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(testGeometry())))
}

func testGLB() []byte {
	jsonChunk := []byte(testDocument(""))
	for len(jsonChunk)%4 != 0 {
		jsonChunk = append(jsonChunk, ' ')
	}
	bin := testGeometry()

	var buf bytes.Buffer
	total := uint32(12 + 8 + len(jsonChunk) + 8 + len(bin))
	_ = binary.Write(&buf, binary.LittleEndian, gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: total})
	_ = binary.Write(&buf, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(jsonChunk)), ChunkType: gltfGLBChunkJSON})
	buf.Write(jsonChunk)
	_ = binary.Write(&buf, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(bin)), ChunkType: gltfGLBChunkBIN})
	buf.Write(bin)
	return buf.Bytes()
}

func writeAsset(t *testing.T, name string, data []byte) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	return dir
}

func TestParserReadsAccessors(t *testing.T) {
	p := newGLTFParser()
	require.NoError(t, p.Parse(testGLTF(), ""))

	positions, err := p.ReadVec3Accessor(0)
	require.NoError(t, err)
	assert.Equal(t, []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 2, 0}}, positions)

	indices, err := p.ReadIndicesAccessor(1)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, indices)

	_, err = p.ReadVec3Accessor(1)
	assert.Error(t, err)
	_, err = p.ReadAccessorData(7)
	assert.Error(t, err)
}

func TestParserGLB(t *testing.T) {
	p := newGLTFParser()
	require.NoError(t, p.Parse(testGLB(), ""))

	positions, err := p.ReadVec3Accessor(0)
	require.NoError(t, err)
	assert.Len(t, positions, 3)
}

func TestParserRejectsBadInput(t *testing.T) {
	assert.ErrorIs(t, newGLTFParser().Parse([]byte(`{"asset": {"version": "1.0"}}`), ""), errInvalidGLTFVersion)
	assert.Error(t, newGLTFParser().Parse([]byte(`not json`), ""))

	glb := testGLB()
	binary.LittleEndian.PutUint32(glb[4:], 1)
	assert.ErrorIs(t, newGLTFParser().Parse(glb, ""), errInvalidGLBVersion)
}

func TestImporterAppliesNodeTransforms(t *testing.T) {
	imported, err := newGLTFImporter().Import(testGLTF(), "assets/toba.gltf")
	require.NoError(t, err)

	assert.Equal(t, "house", imported.Name)
	require.Len(t, imported.Meshes, 1)
	mesh := imported.Meshes[0]
	assert.Equal(t, "roof", mesh.Name)
	assert.Equal(t, mgl32.Vec3{10, 0, 0}, mesh.Positions[0])
	assert.Equal(t, mgl32.Vec3{10, 0, 0}, mesh.Bounds.Min)
	assert.Equal(t, mgl32.Vec3{11, 2, 0}, mesh.Bounds.Max)
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
	assert.Equal(t, 0, mesh.MaterialIndex)
	// No NORMAL attribute, so the face normal is computed.
	assert.Equal(t, []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}, mesh.Normals)

	require.Len(t, imported.Materials, 1)
	mat := imported.Materials[0]
	assert.Equal(t, common.Color{R: 1}, mat.BaseColor)
	assert.Equal(t, float32(0.5), mat.Opacity)
	assert.True(t, mat.Transparent)
}

func TestImporterTransformsNormals(t *testing.T) {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0})
	_ = binary.Write(&buf, binary.LittleEndian, []float32{1, 1, 0, 1, 1, 0, 1, 1, 0})
	doc := fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "nodes": [{"name": "wall", "mesh": 0, "scale": [2, 1, 1]}],
  "meshes": [{"name": "wall", "primitives": [{"attributes": {"POSITION": 0, "NORMAL": 1}}]}],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
    {"bufferView": 1, "componentType": 5126, "count": 3, "type": "VEC3"}
  ],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 36}
  ],
  "buffers": [{"uri": %q, "byteLength": 72}]
}`, "data:application/octet-stream;base64,"+base64.StdEncoding.EncodeToString(buf.Bytes()))

	imported, err := newGLTFImporter().Import([]byte(doc), "wall.gltf")
	require.NoError(t, err)
	require.Len(t, imported.Meshes, 1)

	mesh := imported.Meshes[0]
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, mesh.Positions[1])
	require.Len(t, mesh.Normals, 3)
	// The inverse transpose of scale (2, 1, 1) halves x before renormalizing.
	assert.InDelta(t, 0.4472136, mesh.Normals[0].X(), 1e-6)
	assert.InDelta(t, 0.8944272, mesh.Normals[0].Y(), 1e-6)
	assert.InDelta(t, 0, mesh.Normals[0].Z(), 1e-6)
}

func TestNodeMatrixTRS(t *testing.T) {
	node := &gltfNode{
		Translation: &[3]float32{1, 2, 3},
		Scale:       &[3]float32{2, 2, 2},
	}
	p := gltfNodeMatrix(node).Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	assert.Equal(t, mgl32.Vec4{3, 4, 5, 1}, p)
}

func TestLoaderLoad(t *testing.T) {
	dir := writeAsset(t, "toba.glb", testGLB())
	l := NewLoader(WithAssetRoot(dir))

	m, err := l.Load(context.Background(), "toba.glb", model.WithShadows(false))
	require.NoError(t, err)
	assert.True(t, l.Cached("toba.glb"))
	assert.False(t, m.Meshes()[0].CastShadow)
	assert.True(t, m.Materials()[0].Transparent)

	again, err := l.Load(context.Background(), "toba.glb")
	require.NoError(t, err)
	assert.NotSame(t, m, again)
	assert.True(t, again.Meshes()[0].CastShadow)

	l.Evict("toba.glb")
	assert.False(t, l.Cached("toba.glb"))
}

func TestLoaderUnsupportedFormat(t *testing.T) {
	l := NewLoader()
	_, err := l.Load(context.Background(), "toba.fbx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoaderMissingFile(t *testing.T) {
	l := NewLoader(WithAssetRoot(t.TempDir()))
	_, err := l.Load(context.Background(), "missing.glb")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoaderCancelled(t *testing.T) {
	dir := writeAsset(t, "toba.gltf", testGLTF())
	l := NewLoader(WithAssetRoot(dir))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Load(ctx, "toba.gltf")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, l.Cached("toba.gltf"))
}

func TestLoaderLoadAsync(t *testing.T) {
	dir := writeAsset(t, "mandailing.gltf", testGLTF())
	l := NewLoader(WithAssetRoot(dir), WithWorkers(1))

	progress, result := l.LoadAsync(context.Background(), "mandailing.gltf")

	var updates []Progress
	for p := range progress {
		updates = append(updates, p)
	}
	res := <-result

	require.NoError(t, res.Err)
	require.NotNil(t, res.Model)
	assert.Equal(t, "mandailing.gltf", res.Path)
	require.NotEmpty(t, updates)
	assert.Equal(t, float32(1), updates[len(updates)-1].Fraction())
}

func TestLoaderLoadAsyncError(t *testing.T) {
	l := NewLoader()
	progress, result := l.LoadAsync(context.Background(), "toba.fbx")
	for range progress {
	}
	res := <-result
	assert.ErrorIs(t, res.Err, ErrUnsupportedFormat)
	assert.Nil(t, res.Model)
}

func TestProgressFraction(t *testing.T) {
	assert.Equal(t, float32(0), Progress{Loaded: 10}.Fraction())
	assert.Equal(t, float32(0.5), Progress{Loaded: 5, Total: 10}.Fraction())
	assert.Equal(t, float32(1), Progress{Loaded: 20, Total: 10}.Fraction())
}
