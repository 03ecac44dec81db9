package scenes

import (
	"log"

	"github.com/decker502/campusxr/pkg/components"
	"github.com/decker502/campusxr/pkg/ecs"
	"github.com/decker502/campusxr/pkg/entities"
	"github.com/decker502/campusxr/pkg/game"
	"github.com/decker502/campusxr/pkg/systems"
	"github.com/decker502/campusxr/pkg/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/solarlune/tetra3d"
)

// speedScaleStep 每次按 +/- 调整的移动速度倍率
const speedScaleStep = 0.25

// CampusScene 校园漫游场景：校园模型、用户 dolly、锚点与唯一的信息面板
//
// 每帧按固定顺序执行：
//
//  1. 交付已完成的加载（锚点数据、道具）
//  2. 沉浸模式切换
//  3. 手柄事件与注视回退计时
//  4. 头部朝向与注视停留
//  5. 激活时移动并扫描锚点，否则只推进面板倒计时
type CampusScene struct {
	services *Services
	world    *world.World

	entityManager *ecs.EntityManager
	dollyEntity   ecs.EntityID

	inputSystem        *systems.InputSystem
	gazeSystem         *systems.GazeSystem
	lookSystem         *systems.LookSystem
	locomotionSystem   *systems.LocomotionSystem
	proximitySystem    *systems.ProximitySystem
	presentationSystem *systems.PresentationSystem
	infoboardRender    *systems.InfoboardRenderSystem
	hudRender          *systems.HUDRenderSystem

	anchorsSpawned bool
	width, height  int
}

// NewCampusScene 基于已分类的场景创建漫游
// 校园模型加载失败时 w 为 nil，显式给出坐标的锚点仍然可用。
func NewCampusScene(services *Services, w *world.World) *CampusScene {
	cfg := services.Config
	settings := game.DefaultSettings()
	if services.Settings != nil {
		settings = services.Settings.GetSettings()
	}

	em := ecs.NewEntityManager()
	scene := &CampusScene{
		services:      services,
		world:         w,
		entityManager: em,
		width:         cfg.Window.Width,
		height:        cfg.Window.Height,
	}

	dolly, err := entities.NewDollyEntity(em, cfg.Dolly)
	if err != nil {
		log.Printf("[CampusScene] Failed to create dolly: %v", err)
	}
	scene.dollyEntity = dolly

	scene.inputSystem = systems.NewInputSystem(em, services.Controllers, cfg.Interaction.GazeGracePeriod)
	scene.gazeSystem = systems.NewGazeSystem(em, cfg.Interaction.GazeDwell, cfg.Interaction.GazeSteadyRate)
	scene.lookSystem = systems.NewLookSystem(em, dolly, settings.MouseSensitivity)
	scene.locomotionSystem = systems.NewLocomotionSystem(em, dolly)
	scene.locomotionSystem.SetSpeedScale(settings.MoveSpeedScale)
	scene.proximitySystem = systems.NewProximitySystem(em, cfg.Interaction, cfg.Dolly.HeadHeight)
	scene.presentationSystem = systems.NewPresentationSystem(services.Display)
	scene.presentationSystem.SetButtonBounds(systems.VRButtonBounds(scene.width, scene.height))
	if settings.StartImmersive {
		scene.presentationSystem.SetPresenting(true)
	}

	scene.initRenderSystems(settings.ShowStats)
	scene.loadProps()

	log.Printf("[CampusScene] Campus ready (scenery: %v, walkable: %v)", w != nil, w.HasProxy())
	return scene
}

func (s *CampusScene) initRenderSystems(showStats bool) {
	rm := s.services.Resources
	if rm == nil {
		s.infoboardRender = systems.NewInfoboardRenderSystem(s.entityManager, nil, nil)
		s.hudRender = systems.NewHUDRenderSystem(nil, showStats)
		return
	}
	s.infoboardRender = systems.NewInfoboardRenderSystem(s.entityManager,
		rm.MustLoadFont(game.FontBold, 30), rm.MustLoadFont(game.FontRegular, 20))
	s.hudRender = systems.NewHUDRenderSystem(rm.MustLoadFont(game.FontBold, 18), showStats)
}

// loadProps 为每个配置的道具创建实体并开始加载模型
func (s *CampusScene) loadProps() {
	cfg := s.services.Config
	for _, propCfg := range cfg.Props {
		id, err := entities.NewPropEntity(s.entityManager, cfg, propCfg)
		if err != nil {
			log.Printf("[CampusScene] Skipping prop %s: %v", propCfg.Name, err)
			continue
		}
		prop, _ := ecs.GetComponent[*components.PropComponent](s.entityManager, id)

		err = s.services.Loader.Load(prop.Path, world.DecodeLibrary, func(result game.LoadResult) {
			if result.Err != nil {
				prop.Failed = true
				return
			}
			s.world.AddProp(result.Value.(*tetra3d.Library), prop)
			prop.Loaded = true
		})
		if err != nil {
			prop.Failed = true
			log.Printf("[CampusScene] Could not start loading prop %s: %v", prop.Name, err)
		}
	}
}

// spawnAnchors 信息板数据到达后创建锚点实体
func (s *CampusScene) spawnAnchors() {
	if s.anchorsSpawned || s.services.Anchors == nil || !s.services.Anchors.Loaded() {
		return
	}
	s.anchorsSpawned = true

	resolved := s.services.Anchors.Resolve(s.world.NodePosition)
	if _, err := entities.NewAnchorEntities(s.entityManager, resolved); err != nil {
		log.Printf("[CampusScene] Failed to create anchors: %v", err)
	}
}

// Dolly 返回用户的 dolly 组件
func (s *CampusScene) Dolly() *components.DollyComponent {
	dolly, _ := ecs.GetComponent[*components.DollyComponent](s.entityManager, s.dollyEntity)
	return dolly
}

// Update 推进一帧
func (s *CampusScene) Update(deltaTime float64) {
	s.services.Loader.Poll()
	s.spawnAnchors()
	s.handleHotkeys()

	s.presentationSystem.HandleInput()
	s.step(deltaTime)

	s.entityManager.RemoveMarkedEntities()
}

// step 每帧的模拟部分，不直接读取键盘和指针，测试可直接驱动
func (s *CampusScene) step(deltaTime float64) {
	if s.presentationSystem.Sync() {
		s.world.Resize(s.width, s.height)
		if !s.presentationSystem.Presenting() {
			s.gazeSystem.Reset()
		}
	}
	presenting := s.presentationSystem.Presenting()

	s.inputSystem.Update(deltaTime)
	s.lookSystem.Update(deltaTime, presenting)

	dolly := s.Dolly()
	if dolly == nil {
		s.proximitySystem.Tick(deltaTime)
		return
	}

	if s.inputSystem.UseGaze() && presenting {
		s.gazeSystem.Update(deltaTime, dolly.Yaw, dolly.Pitch)
	}

	if presenting && s.inputSystem.IsActivated() {
		s.locomotionSystem.Update(deltaTime, true, s.world.HasProxy())
		s.proximitySystem.Update(dolly.Position, deltaTime)
	} else {
		s.proximitySystem.Tick(deltaTime)
	}
}

func (s *CampusScene) handleHotkeys() {
	settings := s.services.Settings
	if settings == nil {
		return
	}

	changed := false
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		s.hudRender.ShowStats = !s.hudRender.ShowStats
		settings.SetShowStats(s.hudRender.ShowStats)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		settings.SetMoveSpeedScale(settings.GetSettings().MoveSpeedScale + speedScaleStep)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		settings.SetMoveSpeedScale(settings.GetSettings().MoveSpeedScale - speedScaleStep)
		changed = true
	}
	if !changed {
		return
	}

	s.locomotionSystem.SetSpeedScale(settings.GetSettings().MoveSpeedScale)
	if err := settings.Save(); err != nil {
		log.Printf("[CampusScene] Failed to save settings: %v", err)
	}
}

// view 返回本帧的头部相机
func (s *CampusScene) view() world.View {
	v := world.View{
		FieldOfView: s.services.Config.Dolly.FieldOfView,
		Width:       s.width,
		Height:      s.height,
	}
	if dolly := s.Dolly(); dolly != nil {
		v.Eye = dolly.HeadPosition()
		v.Yaw = dolly.Yaw
		v.Pitch = dolly.Pitch
	}
	return v
}

// Draw 绘制校园场景与叠加层
func (s *CampusScene) Draw(screen *ebiten.Image) {
	view := s.view()
	s.world.SetView(view)
	s.world.Draw(screen)

	s.infoboardRender.Draw(screen, view)

	presenting := s.presentationSystem.Presenting()
	if presenting && s.inputSystem.UseGaze() {
		s.hudRender.DrawReticle(screen, s.gazeSystem.Gaze())
	}
	s.hudRender.DrawVRButton(screen, s.presentationSystem.ButtonBounds(), presenting)
	s.hudRender.DrawStats(screen)
}

// Resize 实现 game.Resizable
func (s *CampusScene) Resize(width, height int) {
	s.width, s.height = width, height
	s.world.Resize(width, height)
	s.presentationSystem.SetButtonBounds(systems.VRButtonBounds(width, height))
}

// Dispose 实现 game.Disposable
func (s *CampusScene) Dispose() {
	s.infoboardRender.Dispose()
	log.Printf("[CampusScene] Disposed with %d entities", s.entityManager.EntityCount())
}
