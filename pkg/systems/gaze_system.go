package systems

import (
	"log"
	"math"
	"time"

	"github.com/decker502/campusxr/pkg/components"
	"github.com/decker502/campusxr/pkg/ecs"
)

// GazeSystem 注视控制器
//
// 头部保持稳定（角速度低于 steadyRate）即进入 Gazing，持续 dwell 后进入 Move；
// 任何明显的转头都会回到 Hidden 并清零进度。
type GazeSystem struct {
	entityManager *ecs.EntityManager
	gazeEntity    ecs.EntityID
	dwell         float64 // 秒
	steadyRate    float64 // 弧度/秒
}

// NewGazeSystem 创建注视系统
func NewGazeSystem(em *ecs.EntityManager, dwell time.Duration, steadyRate float64) *GazeSystem {
	s := &GazeSystem{
		entityManager: em,
		dwell:         dwell.Seconds(),
		steadyRate:    steadyRate,
	}
	s.gazeEntity = em.CreateEntity()
	ecs.AddComponent(em, s.gazeEntity, &components.GazeComponent{Mode: components.GazeModeHidden})
	return s
}

// Gaze 返回注视组件
func (s *GazeSystem) Gaze() *components.GazeComponent {
	gaze, _ := ecs.GetComponent[*components.GazeComponent](s.entityManager, s.gazeEntity)
	return gaze
}

// Update 根据本帧头部朝向推进注视状态
func (s *GazeSystem) Update(deltaTime, yaw, pitch float64) {
	gaze := s.Gaze()
	if gaze == nil {
		return
	}

	lastYaw, lastPitch, ok := gaze.LastOrientation()
	gaze.RecordOrientation(yaw, pitch)
	if !ok || deltaTime <= 0 {
		return
	}

	turned := math.Hypot(angleDelta(yaw, lastYaw), pitch-lastPitch)
	if turned/deltaTime > s.steadyRate {
		if gaze.Mode != components.GazeModeHidden {
			log.Printf("[GazeSystem] %s -> hidden (head moved)", gaze.Mode)
		}
		gaze.Mode = components.GazeModeHidden
		gaze.Dwell = 0
		gaze.Progress = 0
		return
	}

	gaze.Dwell += deltaTime
	if gaze.Mode == components.GazeModeHidden {
		gaze.Mode = components.GazeModeGazing
	}
	if gaze.Mode == components.GazeModeGazing && gaze.Dwell >= s.dwell {
		gaze.Mode = components.GazeModeMove
		log.Printf("[GazeSystem] gazing -> move")
	}

	if s.dwell > 0 {
		gaze.Progress = math.Min(1, gaze.Dwell/s.dwell)
	} else {
		gaze.Progress = 1
	}
}

// Reset 回到 Hidden（例如退出沉浸模式时）
func (s *GazeSystem) Reset() {
	if gaze := s.Gaze(); gaze != nil {
		*gaze = components.GazeComponent{Mode: components.GazeModeHidden}
	}
}

// angleDelta 返回 a-b 规整到 [-π, π] 后的值
func angleDelta(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
