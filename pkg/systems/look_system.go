package systems

import (
	"math"

	"github.com/decker502/campusxr/pkg/components"
	"github.com/decker502/campusxr/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// maxPitch 抬头/低头的最大角度
const maxPitch = math.Pi/2 - 0.05

// keyTurnRate 方向键转头速度（弧度/秒）
const keyTurnRate = 1.5

// LookSystem 桌面环境下模拟头显朝向：鼠标移动与方向键驱动 dolly 的 Yaw/Pitch
type LookSystem struct {
	entityManager *ecs.EntityManager
	dollyEntity   ecs.EntityID
	sensitivity   float64

	lastX, lastY int
	hasLast      bool
}

// NewLookSystem 创建视角系统
func NewLookSystem(em *ecs.EntityManager, dollyEntity ecs.EntityID, sensitivity float64) *LookSystem {
	return &LookSystem{
		entityManager: em,
		dollyEntity:   dollyEntity,
		sensitivity:   sensitivity,
	}
}

// SetSensitivity 更新鼠标灵敏度（弧度/像素）
func (s *LookSystem) SetSensitivity(sensitivity float64) {
	s.sensitivity = sensitivity
}

// ApplyLookDelta 按光标位移（像素）转动头部
func (s *LookSystem) ApplyLookDelta(dx, dy float64) {
	dolly, ok := ecs.GetComponent[*components.DollyComponent](s.entityManager, s.dollyEntity)
	if !ok {
		return
	}
	dolly.Yaw -= dx * s.sensitivity
	dolly.Pitch -= dy * s.sensitivity
	dolly.Pitch = math.Max(-maxPitch, math.Min(maxPitch, dolly.Pitch))
	dolly.Yaw = math.Remainder(dolly.Yaw, 2*math.Pi)
}

// Update 读取鼠标与方向键
//
// 只有沉浸模式（光标被捕获）时鼠标才控制视角。
func (s *LookSystem) Update(deltaTime float64, presenting bool) {
	x, y := ebiten.CursorPosition()
	if presenting && s.hasLast {
		s.ApplyLookDelta(float64(x-s.lastX), float64(y-s.lastY))
	}
	s.lastX, s.lastY, s.hasLast = x, y, true

	turn := keyTurnRate * deltaTime / s.pixelScale()
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		s.ApplyLookDelta(-turn, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		s.ApplyLookDelta(turn, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		s.ApplyLookDelta(0, -turn)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		s.ApplyLookDelta(0, turn)
	}
}

// pixelScale 把弧度换算回"像素"，使方向键速度与灵敏度无关
func (s *LookSystem) pixelScale() float64 {
	if s.sensitivity <= 0 {
		return 1
	}
	return s.sensitivity
}
