package systems

import (
	"log"
	"time"

	"github.com/decker502/campusxr/pkg/components"
	"github.com/decker502/campusxr/pkg/ecs"
)

// InputSystem 把两个 XR 手柄与注视模式合成为每帧一个"激活"信号
//
// 手柄事件只在 Update 开始时通过 Dispatch 写入 InputStateComponent，
// 其余时间该组件只读。
//
// 注视回退：系统创建后开始 gracePeriod 计时，期间若有手柄连接则解除计时，
// 否则计时到期后启用注视模式。两者谁先发生谁生效，之后不再重新计时。
type InputSystem struct {
	entityManager *ecs.EntityManager
	inputEntity   ecs.EntityID
	source        ControllerSource

	elapsed float64 // 帧时钟（秒）
	events  []ControllerEvent
}

// NewInputSystem 创建输入系统并启动注视回退计时
//
// 参数：
//   - em: 实体管理器
//   - source: 手柄事件来源，可为 nil（只能使用注视模式）
//   - gracePeriod: 注视回退宽限期
func NewInputSystem(em *ecs.EntityManager, source ControllerSource, gracePeriod time.Duration) *InputSystem {
	s := &InputSystem{
		entityManager: em,
		source:        source,
	}

	s.inputEntity = em.CreateEntity()
	ecs.AddComponent(em, s.inputEntity, &components.InputStateComponent{
		FallbackArmed:    true,
		FallbackDeadline: gracePeriod.Seconds(),
	})

	return s
}

// InputEntity 返回保存输入状态的实体
func (s *InputSystem) InputEntity() ecs.EntityID {
	return s.inputEntity
}

func (s *InputSystem) state() *components.InputStateComponent {
	state, _ := ecs.GetComponent[*components.InputStateComponent](s.entityManager, s.inputEntity)
	return state
}

// Dispatch 把一个手柄事件写入输入状态
func (s *InputSystem) Dispatch(ev ControllerEvent) {
	state := s.state()
	if state == nil {
		return
	}
	if ev.Slot < 0 || ev.Slot >= len(state.Controllers) {
		log.Printf("[InputSystem] Ignoring %s event for unknown slot %d", ev.Kind, ev.Slot)
		return
	}

	ctrl := &state.Controllers[ev.Slot]
	switch ev.Kind {
	case ControllerConnected:
		ctrl.Connected = true
		if state.FallbackArmed {
			state.FallbackArmed = false
			log.Printf("[InputSystem] Controller %d connected, gaze fallback cancelled", ev.Slot)
		} else {
			log.Printf("[InputSystem] Controller %d connected", ev.Slot)
		}
	case ControllerDisconnected:
		ctrl.Connected = false
		ctrl.SelectPressed = false
		log.Printf("[InputSystem] Controller %d disconnected", ev.Slot)
	case ControllerSelectStart:
		ctrl.SelectPressed = true
	case ControllerSelectEnd:
		ctrl.SelectPressed = false
	}
}

// Update 在帧开始时调用：拉取并分发手柄事件，然后推进注视回退计时
func (s *InputSystem) Update(deltaTime float64) {
	if deltaTime > 0 {
		s.elapsed += deltaTime
	}

	if s.source != nil {
		s.events = s.source.PollControllerEvents(s.events[:0])
		for _, ev := range s.events {
			s.Dispatch(ev)
		}
	}

	state := s.state()
	if state == nil {
		return
	}

	if state.FallbackArmed && s.elapsed >= state.FallbackDeadline {
		state.FallbackArmed = false
		state.UseGaze = true
		log.Printf("[InputSystem] No controller after %.1fs, gaze mode engaged", state.FallbackDeadline)
	}
}

// IsActivated 返回本帧是否激活：任一手柄按下，或注视模式处于移动状态
func (s *InputSystem) IsActivated() bool {
	state := s.state()
	if state == nil {
		return false
	}

	for _, ctrl := range state.Controllers {
		if ctrl.SelectPressed {
			return true
		}
	}

	if state.UseGaze {
		for _, id := range ecs.GetEntitiesWith1[*components.GazeComponent](s.entityManager) {
			gaze, ok := ecs.GetComponent[*components.GazeComponent](s.entityManager, id)
			if ok && gaze.Mode == components.GazeModeMove {
				return true
			}
		}
	}

	return false
}

// UseGaze 注视模式是否已启用
func (s *InputSystem) UseGaze() bool {
	state := s.state()
	return state != nil && state.UseGaze
}
