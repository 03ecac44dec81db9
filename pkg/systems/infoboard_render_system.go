package systems

import (
	"image/color"
	"math"

	"github.com/decker502/campusxr/pkg/components"
	"github.com/decker502/campusxr/pkg/ecs"
	"github.com/decker502/campusxr/pkg/utils"
	"github.com/decker502/campusxr/pkg/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 面板布局（像素，按距离缩放前）
const (
	boardWidth        = 512.0
	boardTitleHeight  = 70.0
	boardPadding      = 16.0
	boardLineHeight   = 30.0
	boardMinScale     = 0.35
	boardMaxScale     = 1.0
	boardScaleDivisor = 3.0 // 距离为该值时按原尺寸显示
	boardMinFacing    = 0.2 // 侧面观看时的最小横向压缩比
)

var (
	boardTitleBackground = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xee}
	boardTitleColor      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	boardInfoBackground  = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xee}
	boardInfoColor       = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
)

// boardPanel 已排版的面板图像，内容不变时逐帧复用
type boardPanel struct {
	anchor string
	title  string
	body   string
	image  *ebiten.Image
}

// InfoboardRenderSystem 把信息面板投影到屏幕并绘制
type InfoboardRenderSystem struct {
	entityManager *ecs.EntityManager
	titleFont     *text.GoTextFace
	bodyFont      *text.GoTextFace

	panels map[ecs.EntityID]*boardPanel
}

// NewInfoboardRenderSystem 创建面板渲染系统
func NewInfoboardRenderSystem(em *ecs.EntityManager, titleFont, bodyFont *text.GoTextFace) *InfoboardRenderSystem {
	return &InfoboardRenderSystem{
		entityManager: em,
		titleFont:     titleFont,
		bodyFont:      bodyFont,
		panels:        make(map[ecs.EntityID]*boardPanel),
	}
}

// Draw 绘制所有可见的信息面板
func (s *InfoboardRenderSystem) Draw(screen *ebiten.Image, view world.View) {
	for _, id := range ecs.GetEntitiesWith1[*components.InfoboardComponent](s.entityManager) {
		board, ok := ecs.GetComponent[*components.InfoboardComponent](s.entityManager, id)
		if !ok || !board.Visible {
			continue
		}
		s.drawBoard(screen, s.panelFor(id, board), board, view)
	}
}

// Dispose 释放缓存的面板图像
func (s *InfoboardRenderSystem) Dispose() {
	for id, panel := range s.panels {
		panel.image.Deallocate()
		delete(s.panels, id)
	}
}

// panelFor 返回面板图像，只有切换锚点或文本变化时才重新排版
func (s *InfoboardRenderSystem) panelFor(id ecs.EntityID, board *components.InfoboardComponent) *ebiten.Image {
	cached, ok := s.panels[id]
	if ok && cached.anchor == board.ShownAnchor && cached.title == board.Title && cached.body == board.Body {
		return cached.image
	}
	if ok {
		cached.image.Deallocate()
	}

	panel := &boardPanel{
		anchor: board.ShownAnchor,
		title:  board.Title,
		body:   board.Body,
		image:  s.layout(board.Title, board.Body),
	}
	s.panels[id] = panel
	return panel.image
}

func (s *InfoboardRenderSystem) layout(title, body string) *ebiten.Image {
	lines := utils.WrapText(body, s.bodyFont, boardWidth-2*boardPadding)
	height := boardTitleHeight + 2*boardPadding + float64(len(lines))*boardLineHeight

	panel := ebiten.NewImage(int(boardWidth), int(height))
	vector.DrawFilledRect(panel, 0, 0, float32(boardWidth), float32(boardTitleHeight), boardTitleBackground, false)
	vector.DrawFilledRect(panel, 0, float32(boardTitleHeight), float32(boardWidth), float32(height-boardTitleHeight), boardInfoBackground, false)

	if s.titleFont != nil {
		op := &text.DrawOptions{}
		op.LayoutOptions.PrimaryAlign = text.AlignCenter
		op.LayoutOptions.SecondaryAlign = text.AlignCenter
		op.GeoM.Translate(boardWidth/2, boardTitleHeight/2)
		op.ColorScale.ScaleWithColor(boardTitleColor)
		text.Draw(panel, title, s.titleFont, op)
	}

	if s.bodyFont != nil {
		for i, line := range lines {
			op := &text.DrawOptions{}
			op.GeoM.Translate(boardPadding, boardTitleHeight+boardPadding+float64(i)*boardLineHeight)
			op.ColorScale.ScaleWithColor(boardInfoColor)
			text.Draw(panel, line, s.bodyFont, op)
		}
	}
	return panel
}

func (s *InfoboardRenderSystem) drawBoard(screen, panel *ebiten.Image, board *components.InfoboardComponent, view world.View) {
	x, y, visible := view.Project(board.Position)
	if !visible {
		return
	}

	scale := boardScaleDivisor / board.Position.Sub(view.Eye).Len()
	if scale < boardMinScale {
		scale = boardMinScale
	} else if scale > boardMaxScale {
		scale = boardMaxScale
	}

	// 面板在显示时转向用户，之后用户绕到侧面时横向压缩
	facing := boardFacing(board.Yaw, board.Position, view.Eye)

	// 面板底边中点对齐投影点
	bounds := panel.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(bounds.Dx())/2, -float64(bounds.Dy()))
	op.GeoM.Scale(scale*facing, scale)
	op.GeoM.Translate(x, y)
	screen.DrawImage(panel, op)
}

// boardFacing 面板朝向 boardYaw 时，从 eye 看过去的横向可见比例
//
// 正对为 1，侧对时不低于 boardMinFacing。面板双面显示，背面同样按绝对值计算。
func boardFacing(boardYaw float64, position, eye mgl64.Vec3) float64 {
	toEye := world.FacingYaw(position, eye)
	facing := math.Abs(math.Cos(boardYaw - toEye))
	if facing < boardMinFacing {
		return boardMinFacing
	}
	return facing
}
