// Package world 封装 tetra3d 场景：加载 glb、按分类表处理网格、摆放道具并渲染
package world

import (
	"bytes"
	"fmt"
	"log"
	"math"

	"github.com/decker502/campusxr/pkg/components"
	"github.com/decker502/campusxr/pkg/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/solarlune/tetra3d"
)

// DecodeLibrary 解析 glb 数据（AssetLoader 的 Decoder，在工作协程中执行）
func DecodeLibrary(data []byte) (any, error) {
	library, err := tetra3d.LoadGLTFData(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse glTF: %w", err)
	}
	if library.ExportedScene == nil {
		return nil, fmt.Errorf("glTF file has no exported scene")
	}
	return library, nil
}

// World 校园场景
type World struct {
	scene  *tetra3d.Scene
	camera *tetra3d.Camera

	fieldOfView float64
	tags        map[string]components.SurfaceTag
	hasProxy    bool
}

// sunLightName 由 World 添加的方向光节点名
const sunLightName = "campus sun"

// NewWorld 从已解析的校园模型创建场景，对所有网格执行一次分类并布置光照
func NewWorld(library *tetra3d.Library, classifier *Classifier, cfg *config.CampusConfig) *World {
	w := &World{
		scene:       library.ExportedScene.Clone(),
		fieldOfView: cfg.Dolly.FieldOfView,
		tags:        make(map[string]components.SurfaceTag),
	}
	w.classify(classifier, cfg.Surfaces.GlassOpacity)
	w.light(cfg.Lighting)
	return w
}

// light 打开场景光照：环境光 + 一盏方向光
//
// Scene.Clone 与模型库共用同一个 tetra3d.World，这里先复制一份再修改。
func (w *World) light(lighting config.LightingConfig) {
	if w.scene.World == nil {
		w.scene.World = tetra3d.NewWorld("campus")
	} else {
		w.scene.World = w.scene.World.Clone()
	}

	world := w.scene.World
	world.LightingOn = true
	ambient := lighting.AmbientColor
	if world.AmbientLight == nil {
		world.AmbientLight = tetra3d.NewAmbientLight("ambient", 1, 1, 1, 0)
	}
	world.AmbientLight.SetColor(tetra3d.NewColor(float32(ambient.R), float32(ambient.G), float32(ambient.B), 1))
	world.AmbientLight.SetEnergy(float32(lighting.AmbientEnergy))
	world.AmbientLight.SetOn(true)

	if lighting.SunEnergy > 0 {
		c := lighting.SunColor
		sun := tetra3d.NewDirectionalLight(sunLightName, float32(c.R), float32(c.G), float32(c.B), float32(lighting.SunEnergy))
		sun.Rotate(1, 0, 0, float32(mgl64.DegToRad(lighting.SunPitch)))
		sun.Rotate(0, 1, 0, float32(mgl64.DegToRad(lighting.SunYaw)))
		w.scene.Root.AddChildren(sun)
	}

	log.Printf("[World] Lighting on (ambient %.2f, sun %.2f)", lighting.AmbientEnergy, lighting.SunEnergy)
}

// AmbientEnergy 当前环境光强度
func (w *World) AmbientEnergy() float64 {
	if w == nil || w.scene.World == nil || !w.scene.World.LightingOn || w.scene.World.AmbientLight == nil {
		return 0
	}
	return float64(w.scene.World.AmbientLight.Energy())
}

// SunLights 场景中方向光的数量（含 glb 自带的）
func (w *World) SunLights() int {
	if w == nil {
		return 0
	}
	return w.scene.Root.SearchTree().ByType(tetra3d.NodeTypeDirectionalLight).Count()
}

// classify 为每个网格打上标签并应用对应的外观
func (w *World) classify(classifier *Classifier, glassOpacity float64) {
	w.scene.Root.SearchTree().ForEach(func(node tetra3d.INode) bool {
		model, ok := node.(*tetra3d.Model)
		if !ok || model.Mesh == nil {
			return true
		}

		materials := make([]*tetra3d.Material, 0, len(model.Mesh.MeshParts))
		names := make([]string, 0, len(model.Mesh.MeshParts))
		for _, part := range model.Mesh.MeshParts {
			if part.Material != nil {
				materials = append(materials, part.Material)
				names = append(names, part.Material.Name)
			}
		}

		tag := classifier.Classify(model.Name(), names)
		if tag == components.SurfaceDefault {
			return true
		}
		w.tags[model.Name()] = tag

		switch tag {
		case components.SurfaceProxy:
			// 代理网格只用于判定可行走区域，不渲染
			model.SetVisible(false, false)
			w.hasProxy = true
		case components.SurfaceGlass:
			for _, mat := range materials {
				mat.Color.A = float32(glassOpacity)
				mat.TransparencyMode = tetra3d.TransparencyModeTransparent
			}
		case components.SurfaceSkyBox:
			for _, mat := range materials {
				mat.Shadeless = true
			}
		}
		return true
	})

	log.Printf("[World] Classified %d meshes (proxy present: %v)", len(w.tags), w.hasProxy)
}

// HasProxy 场景中是否存在可行走代理网格
func (w *World) HasProxy() bool {
	return w != nil && w.hasProxy
}

// Tags 返回被分类的网格（节点名 -> 标签）
func (w *World) Tags() map[string]components.SurfaceTag {
	return w.tags
}

// NodePosition 按名称查找节点的世界坐标
func (w *World) NodePosition(name string) (mgl64.Vec3, bool) {
	if w == nil {
		return mgl64.Vec3{}, false
	}

	var found tetra3d.INode
	w.scene.Root.SearchTree().ForEach(func(node tetra3d.INode) bool {
		if node.Name() == name {
			found = node
			return false
		}
		return true
	})
	if found == nil {
		return mgl64.Vec3{}, false
	}

	p := found.WorldPosition()
	return mgl64.Vec3{float64(p.X), float64(p.Y), float64(p.Z)}, true
}

// AddProp 把道具模型加入场景并按组件摆放
func (w *World) AddProp(library *tetra3d.Library, prop *components.PropComponent) {
	if w == nil || library == nil || library.ExportedScene == nil {
		return
	}

	root := library.ExportedScene.Root.Clone()
	w.scene.Root.AddChildren(root)

	scale := float32(prop.Scale)
	root.SetLocalScale(scale, scale, scale)
	root.SetLocalPosition(float32(prop.Position.X()), float32(prop.Position.Y()), float32(prop.Position.Z()))
	if prop.Yaw != 0 {
		root.Rotate(0, 1, 0, float32(prop.Yaw))
	}

	log.Printf("[World] Added prop %s at (%.1f, %.1f, %.1f)", prop.Name,
		prop.Position.X(), prop.Position.Y(), prop.Position.Z())
}

// Resize 按新的逻辑分辨率重建渲染目标
func (w *World) Resize(width, height int) {
	if w == nil || width <= 0 || height <= 0 {
		return
	}
	w.camera = tetra3d.NewCamera(width, height)
	w.camera.SetFieldOfView(float32(w.fieldOfView))
	log.Printf("[World] Render target resized to %dx%d", width, height)
}

// SetView 把相机放到用户头部位置
func (w *World) SetView(view View) {
	if w == nil || w.camera == nil {
		return
	}
	w.camera.ClearLocalTransform()
	w.camera.Rotate(1, 0, 0, float32(clampPitch(view.Pitch)))
	w.camera.Rotate(0, 1, 0, float32(view.Yaw))
	w.camera.SetLocalPosition(float32(view.Eye.X()), float32(view.Eye.Y()), float32(view.Eye.Z()))
}

// Draw 渲染场景到屏幕
func (w *World) Draw(screen *ebiten.Image) {
	if w == nil || w.camera == nil {
		return
	}
	w.camera.Clear()
	w.camera.RenderScene(w.scene)
	screen.DrawImage(w.camera.ColorTexture(), nil)
}

func clampPitch(pitch float64) float64 {
	const limit = math.Pi/2 - 0.01
	return math.Max(-limit, math.Min(limit, pitch))
}
