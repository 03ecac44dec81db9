package systems

import (
	"fmt"
	"image"
	"image/color"

	"github.com/decker502/campusxr/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	reticleColor      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xcc}
	reticleFillColor  = color.RGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	vrButtonColor     = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x99}
	vrButtonTextColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// HUDRenderSystem 绘制屏幕空间元素：注视准星、"进入 VR"按钮、帧率面板
type HUDRenderSystem struct {
	buttonFont *text.GoTextFace
	ShowStats  bool
}

// NewHUDRenderSystem 创建 HUD 渲染系统
func NewHUDRenderSystem(buttonFont *text.GoTextFace, showStats bool) *HUDRenderSystem {
	return &HUDRenderSystem{buttonFont: buttonFont, ShowStats: showStats}
}

// DrawReticle 在屏幕中心绘制准星，并在下方显示注视进度
func (s *HUDRenderSystem) DrawReticle(screen *ebiten.Image, gaze *components.GazeComponent) {
	if gaze == nil {
		return
	}
	bounds := screen.Bounds()
	cx := float32(bounds.Dx()) / 2
	cy := float32(bounds.Dy()) / 2

	const arm = 8
	vector.StrokeLine(screen, cx-arm, cy, cx+arm, cy, 2, reticleColor, true)
	vector.StrokeLine(screen, cx, cy-arm, cx, cy+arm, 2, reticleColor, true)

	if gaze.Mode == components.GazeModeHidden {
		return
	}

	const barWidth, barHeight = 40, 4
	vector.DrawFilledRect(screen, cx-barWidth/2, cy+arm+6, barWidth, barHeight, reticleColor, false)
	vector.DrawFilledRect(screen, cx-barWidth/2, cy+arm+6, barWidth*float32(gaze.Progress), barHeight, reticleFillColor, false)
}

// VRButtonBounds 返回屏幕底部居中的按钮区域
func VRButtonBounds(screenWidth, screenHeight int) image.Rectangle {
	const width, height, margin = 160, 44, 24
	x := (screenWidth - width) / 2
	y := screenHeight - height - margin
	return image.Rect(x, y, x+width, y+height)
}

// DrawVRButton 绘制"进入 VR"按钮
func (s *HUDRenderSystem) DrawVRButton(screen *ebiten.Image, bounds image.Rectangle, presenting bool) {
	if presenting {
		return
	}
	vector.DrawFilledRect(screen, float32(bounds.Min.X), float32(bounds.Min.Y),
		float32(bounds.Dx()), float32(bounds.Dy()), vrButtonColor, false)

	if s.buttonFont == nil {
		return
	}
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(float64(bounds.Min.X+bounds.Dx()/2), float64(bounds.Min.Y+bounds.Dy()/2))
	op.ColorScale.ScaleWithColor(vrButtonTextColor)
	text.Draw(screen, "ENTER VR", s.buttonFont, op)
}

// DrawStats 绘制帧率面板
func (s *HUDRenderSystem) DrawStats(screen *ebiten.Image) {
	if !s.ShowStats {
		return
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %0.1f  TPS: %0.1f", ebiten.ActualFPS(), ebiten.ActualTPS()), 4, 4)
}
