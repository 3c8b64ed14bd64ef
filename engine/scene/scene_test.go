package scene

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneLights(t *testing.T) {
	ambient := light.NewLight(light.LightTypeAmbient)
	point := light.NewLight(light.LightTypePoint)
	s := NewScene("toba", camera.NewCamera(), WithLights(ambient, point))

	assert.Equal(t, []light.Light{ambient, point}, s.Lights())

	brighter := light.NewLight(light.LightTypeAmbient, light.WithIntensity(2))
	s.ReplaceLight(ambient, brighter)
	assert.Equal(t, []light.Light{brighter, point}, s.Lights())

	s.RemoveLight(point)
	assert.Equal(t, []light.Light{brighter}, s.Lights())

	s.RemoveLight(point)
	assert.Len(t, s.Lights(), 1)

	hemi := light.NewLight(light.LightTypeHemisphere)
	s.ReplaceLight(nil, hemi)
	assert.Equal(t, []light.Light{brighter, hemi}, s.Lights())

	s.ReplaceLight(hemi, nil)
	assert.Equal(t, []light.Light{brighter}, s.Lights())
}

func TestSceneLightsSnapshot(t *testing.T) {
	s := NewScene("toba", nil)
	s.AddLight(light.NewLight(light.LightTypeAmbient))
	snapshot := s.Lights()
	s.AddLight(light.NewLight(light.LightTypePoint))
	assert.Len(t, snapshot, 1)
	assert.Len(t, s.Lights(), 2)
}

func TestSceneModelSwap(t *testing.T) {
	s := NewScene("mandailing", nil)
	assert.Nil(t, s.Model())

	first := model.NewModel(&model.ImportedModel{Name: "a"})
	second := model.NewModel(&model.ImportedModel{Name: "b"})

	assert.Nil(t, s.SetModel(first))
	prev := s.SetModel(second)
	require.NotNil(t, prev)
	assert.Equal(t, "a", prev.Name())
	assert.Equal(t, "b", s.Model().Name())
}

func TestSceneEnvironmentAndActive(t *testing.T) {
	env := Environment{Background: "/lilienstein_4k.hdr", ClearColor: common.ColorFromHex(0x87ceeb)}
	s := NewScene("toba", nil, WithEnvironment(env), WithActive(false))

	assert.False(t, s.Active())
	assert.Equal(t, env, s.Environment())

	s.SetActive(true)
	s.SetEnvironment(Environment{Background: "/nightback.hdr"})
	assert.True(t, s.Active())
	assert.Equal(t, "/nightback.hdr", s.Environment().Background)
}

func TestSceneConcurrentAccess(t *testing.T) {
	s := NewScene("toba", nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			l := light.NewLight(light.LightTypePoint)
			s.AddLight(l)
			s.RemoveLight(l)
		}()
		go func() {
			defer wg.Done()
			_ = s.Lights()
			_ = s.Environment()
		}()
	}
	wg.Wait()
	assert.Empty(t, s.Lights())
}
