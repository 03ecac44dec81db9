package entities

import (
	"math"
	"testing"

	"github.com/decker502/campusxr/pkg/components"
	"github.com/decker502/campusxr/pkg/config"
	"github.com/decker502/campusxr/pkg/ecs"
	"github.com/decker502/campusxr/pkg/game"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDollyEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultCampusConfig()

	id, err := NewDollyEntity(em, cfg.Dolly)
	require.NoError(t, err)

	dolly, ok := ecs.GetComponent[*components.DollyComponent](em, id)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{0, 0, 10}, dolly.Position)
	assert.Equal(t, 1.6, dolly.HeadHeight)
	assert.Equal(t, 2.0, dolly.MoveSpeed)
	assert.Zero(t, dolly.Yaw)
}

func TestNewDollyEntityRejectsNilManager(t *testing.T) {
	_, err := NewDollyEntity(nil, config.DefaultCampusConfig().Dolly)
	assert.Error(t, err)
}

func TestNewAnchorEntities(t *testing.T) {
	em := ecs.NewEntityManager()
	anchors := []game.ResolvedAnchor{
		{Key: "Cafe", Position: mgl64.Vec3{1, 0, 0}, Title: "Cafe", Body: "Coffee"},
		{Key: "Library", Position: mgl64.Vec3{15, 0, -5}, Title: "Library", Body: "Books"},
		{Key: "Cafe", Position: mgl64.Vec3{9, 0, 9}, Title: "Cafe again"},
	}

	ids, err := NewAnchorEntities(em, anchors)
	require.NoError(t, err)
	require.Len(t, ids, 2)

	anchor, ok := ecs.GetComponent[*components.AnchorComponent](em, ids[1])
	require.True(t, ok)
	assert.Equal(t, "Library", anchor.Name)
	assert.Equal(t, "Books", anchor.Body)
	assert.Len(t, ecs.GetEntitiesWith1[*components.AnchorComponent](em), 2)
}

func TestNewPropEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultCampusConfig()
	prop := config.PropConfig{
		Name:     "car",
		Path:     "car.glb",
		Position: config.Vec3{X: 2, Y: 0, Z: -5},
		Scale:    0.7,
		Yaw:      90,
	}

	id, err := NewPropEntity(em, cfg, prop)
	require.NoError(t, err)

	comp, ok := ecs.GetComponent[*components.PropComponent](em, id)
	require.True(t, ok)
	assert.Equal(t, "assets/car.glb", comp.Path)
	assert.InDelta(t, math.Pi/2, comp.Yaw, 1e-9)
	assert.Equal(t, 0.7, comp.Scale)
	assert.False(t, comp.Loaded)

	prop.Scale = 0
	_, err = NewPropEntity(em, cfg, prop)
	assert.Error(t, err)
}
