package systems

import (
	"image"
	"log"

	"github.com/decker502/campusxr/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DisplayDriver 沉浸模式切换时需要的显示操作
type DisplayDriver interface {
	SetFullscreen(fullscreen bool)
	SetCursorCaptured(captured bool)
}

// EbitenDisplay 基于 ebiten 窗口的 DisplayDriver
type EbitenDisplay struct{}

// SetFullscreen 实现 DisplayDriver
func (EbitenDisplay) SetFullscreen(fullscreen bool) {
	ebiten.SetFullscreen(fullscreen)
}

// SetCursorCaptured 实现 DisplayDriver
func (EbitenDisplay) SetCursorCaptured(captured bool) {
	if captured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

// PresentationSystem 管理"进入 VR"按钮与沉浸（presenting）状态
//
// presenting 是期望状态，immersive 是上一帧已应用的状态；
// 两者不一致时应用显示变化并报告 changed，场景据此重建渲染目标。
type PresentationSystem struct {
	driver     DisplayDriver
	presenting bool
	immersive  bool

	button  image.Rectangle
	touches []ebiten.TouchID
}

// NewPresentationSystem 创建沉浸模式系统
func NewPresentationSystem(driver DisplayDriver) *PresentationSystem {
	return &PresentationSystem{driver: driver}
}

// Presenting 是否处于沉浸模式
func (s *PresentationSystem) Presenting() bool {
	return s.presenting
}

// SetPresenting 请求进入或退出沉浸模式（下一次 Sync 时生效）
func (s *PresentationSystem) SetPresenting(presenting bool) {
	s.presenting = presenting
}

// Toggle 切换沉浸模式
func (s *PresentationSystem) Toggle() {
	s.presenting = !s.presenting
}

// SetButtonBounds 设置"进入 VR"按钮的屏幕区域
func (s *PresentationSystem) SetButtonBounds(bounds image.Rectangle) {
	s.button = bounds
}

// ButtonBounds 返回按钮区域
func (s *PresentationSystem) ButtonBounds() image.Rectangle {
	return s.button
}

// HandleInput 处理按钮点击（或触摸）、回车与 Esc
func (s *PresentationSystem) HandleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.Toggle()
		return
	}
	if s.presenting && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.SetPresenting(false)
		return
	}
	if s.presenting {
		return
	}

	x, y, ok := s.justPressed()
	if !ok {
		return
	}
	// 移动端没有按钮以外的交互，点按任意位置即进入
	s.HandlePress(x, y, utils.IsMobile())
}

// HandlePress 处理一次点按，命中按钮（或 anywhere 为 true）时进入沉浸模式
//
// 返回是否触发了切换。沉浸模式下点按不会退出。
func (s *PresentationSystem) HandlePress(x, y int, anywhere bool) bool {
	if s.presenting {
		return false
	}
	if !anywhere && !image.Pt(x, y).In(s.button) {
		return false
	}
	s.Toggle()
	return true
}

// justPressed 本帧新按下的触点或鼠标左键位置，触摸优先
func (s *PresentationSystem) justPressed() (int, int, bool) {
	s.touches = inpututil.AppendJustPressedTouchIDs(s.touches[:0])
	if len(s.touches) > 0 {
		x, y := ebiten.TouchPosition(s.touches[0])
		return x, y, true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return x, y, true
	}
	return 0, 0, false
}

// Sync 应用挂起的状态变化，返回状态是否改变
func (s *PresentationSystem) Sync() bool {
	if s.presenting == s.immersive {
		return false
	}
	s.immersive = s.presenting

	if s.driver != nil {
		s.driver.SetFullscreen(s.immersive)
		s.driver.SetCursorCaptured(s.immersive)
	}
	log.Printf("[PresentationSystem] Presenting: %v", s.immersive)
	return true
}
