package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreProcessorGroupDeclaration(t *testing.T) {
	pp := NewPreProcessor()
	out, err := pp.Process("//@oxy:group 2 0 storage_uniform material material_params")
	require.NoError(t, err)
	assert.Equal(t, "@group(2) @binding(0) var<uniform> material: MaterialParams;", out)

	decls := pp.Declarations()
	require.Len(t, decls, 1)
	assert.Equal(t, 2, *decls[0].Group)
	assert.Equal(t, AnnotationArgMaterialParams, decls[0].Args[2])
}

func TestPreProcessorInclude(t *testing.T) {
	pp := NewPreProcessor()
	out, err := pp.Process("//@oxy:include camera\nfn f() {}")
	require.NoError(t, err)
	assert.Contains(t, out, "struct CameraUniform")
	assert.Contains(t, out, "fn f() {}")
	assert.Empty(t, pp.Declarations())
}

func TestPreProcessorResetsDeclarations(t *testing.T) {
	pp := NewPreProcessor()
	_, err := pp.Process("//@oxy:group 0 0 storage_read camera camera")
	require.NoError(t, err)
	_, err = pp.Process("fn f() {}")
	require.NoError(t, err)
	assert.Empty(t, pp.Declarations())
}

func TestParseAnnotationErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", "//@oxy:"},
		{"unknown type", "//@oxy:define x"},
		{"include arity", "//@oxy:include camera lighting"},
		{"unknown struct", "//@oxy:include textures"},
		{"group arity", "//@oxy:group 0 0 storage_uniform camera"},
		{"bad group", "//@oxy:group x 0 storage_uniform camera camera"},
		{"bad address space", "//@oxy:group 0 0 private camera camera"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := parseAnnotation(tt.line, 3)
			assert.Nil(t, a)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 3")
		})
	}
}

func TestParseAnnotationIgnoresPlainLines(t *testing.T) {
	a, err := parseAnnotation("// regular comment", 1)
	assert.NoError(t, err)
	assert.Nil(t, a)
}
