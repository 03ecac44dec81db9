package systems

import (
	"github.com/decker502/campusxr/pkg/components"
	"github.com/decker502/campusxr/pkg/ecs"
)

// LocomotionSystem 激活时沿头部水平朝向移动 dolly
type LocomotionSystem struct {
	entityManager *ecs.EntityManager
	dollyEntity   ecs.EntityID
	speedScale    float64
}

// NewLocomotionSystem 创建移动系统
func NewLocomotionSystem(em *ecs.EntityManager, dollyEntity ecs.EntityID) *LocomotionSystem {
	return &LocomotionSystem{
		entityManager: em,
		dollyEntity:   dollyEntity,
		speedScale:    1,
	}
}

// SetSpeedScale 设置用户偏好的速度倍率
func (s *LocomotionSystem) SetSpeedScale(scale float64) {
	s.speedScale = scale
}

// Update 移动 dolly，返回本帧是否发生了移动
//
// 参数：
//   - deltaTime: 帧间隔（秒）
//   - activated: 输入系统的激活信号
//   - walkable: 场景中是否存在可行走代理网格
func (s *LocomotionSystem) Update(deltaTime float64, activated, walkable bool) bool {
	if !activated || !walkable || deltaTime <= 0 {
		return false
	}

	dolly, ok := ecs.GetComponent[*components.DollyComponent](s.entityManager, s.dollyEntity)
	if !ok {
		return false
	}

	step := dolly.MoveSpeed * s.speedScale * deltaTime
	dolly.Position = dolly.Position.Add(dolly.Forward().Mul(step))
	return step > 0
}
