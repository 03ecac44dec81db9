package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/campusxr/pkg/game"
	"github.com/decker502/campusxr/pkg/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/solarlune/tetra3d"
)

var (
	loadingBackground = color.RGBA{R: 0x10, G: 0x14, B: 0x1c, A: 0xff}
	loadingBarBack    = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	loadingBarFill    = color.RGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	loadingTextColor  = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
)

// LoadingScene 加载场景
//
// 校园模型在加载器的工作协程池中读取并解析，期间显示进度条。
// 加载结束后（无论成功与否）切换到 CampusScene。
type LoadingScene struct {
	services *Services

	collegePath string
	progress    float64
	done        bool
	library     *tetra3d.Library
	loadErr     error

	width, height int
	font          *text.GoTextFace
}

// NewLoadingScene 创建加载场景并开始加载校园模型
func NewLoadingScene(services *Services) *LoadingScene {
	scene := &LoadingScene{
		services:    services,
		collegePath: services.Config.CollegePath(),
		width:       services.Config.Window.Width,
		height:      services.Config.Window.Height,
	}

	if services.Resources != nil {
		font, err := services.Resources.LoadFont(game.FontRegular, 24)
		if err != nil {
			log.Printf("[LoadingScene] Failed to load font: %v", err)
		}
		scene.font = font
	}

	if err := services.Loader.Load(scene.collegePath, world.DecodeLibrary, scene.onLoaded); err != nil {
		log.Printf("[LoadingScene] Could not start loading %s: %v", scene.collegePath, err)
		scene.loadErr = err
		scene.done = true
	}

	return scene
}

func (s *LoadingScene) onLoaded(result game.LoadResult) {
	s.done = true
	if result.Err != nil {
		s.loadErr = result.Err
		return
	}
	s.library = result.Value.(*tetra3d.Library)
}

// Progress 返回加载进度 [0, 1]
func (s *LoadingScene) Progress() float64 {
	return s.progress
}

// Update 轮询加载器，模型就绪后切换到校园场景
func (s *LoadingScene) Update(deltaTime float64) {
	s.services.Loader.Poll()
	s.progress = s.services.Loader.Progress(s.collegePath)

	if !s.done {
		return
	}

	var w *world.World
	if s.library != nil {
		cfg := s.services.Config
		w = world.NewWorld(s.library, world.NewClassifier(cfg.Surfaces), cfg)
	} else {
		log.Printf("[LoadingScene] Campus model unavailable, continuing without scenery: %v", s.loadErr)
	}

	s.services.SceneManager.SwitchTo(NewCampusScene(s.services, w))
}

// Resize 实现 game.Resizable
func (s *LoadingScene) Resize(width, height int) {
	s.width, s.height = width, height
}

// Draw 绘制进度条
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(loadingBackground)

	barWidth := float32(s.width) * 0.5
	const barHeight = 12
	x := (float32(s.width) - barWidth) / 2
	y := float32(s.height) / 2

	vector.DrawFilledRect(screen, x, y, barWidth, barHeight, loadingBarBack, false)
	vector.DrawFilledRect(screen, x, y, barWidth*float32(s.progress), barHeight, loadingBarFill, false)

	if s.font == nil {
		return
	}
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.GeoM.Translate(float64(s.width)/2, float64(y)-40)
	op.ColorScale.ScaleWithColor(loadingTextColor)
	text.Draw(screen, fmt.Sprintf("Loading campus... %d%%", int(s.progress*100)), s.font, op)
}
