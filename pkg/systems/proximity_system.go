package systems

import (
	"log"
	"math"

	"github.com/decker502/campusxr/pkg/components"
	"github.com/decker502/campusxr/pkg/config"
	"github.com/decker502/campusxr/pkg/ecs"
	"github.com/decker502/campusxr/pkg/world"
	"github.com/go-gl/mathgl/mgl64"
)

// ProximitySystem 根据用户位置显示、保持或隐藏唯一的信息面板
//
// 状态机：
//
//	Hidden --进入某锚点半径--> Shown(a)
//	Shown(a) --仍在 a 半径内--> Shown(a)（不重置倒计时）
//	Shown(a) --离开 a、进入 b--> Shown(b)
//	Shown(a) --倒计时到期 / 离开所有锚点--> Hidden
//
// 多个锚点同时在半径内时：当前显示的锚点只要仍在半径内就保留，
// 否则选择最近的锚点（距离相同按名称排序）。
//
// 倒计时使用由 deltaTime 累加的帧时钟，而不是异步定时器。
type ProximitySystem struct {
	entityManager *ecs.EntityManager
	boardEntity   ecs.EntityID

	radius     float64
	offset     float64
	timeout    float64 // 秒
	headHeight float64

	elapsed float64
}

// NewProximitySystem 创建接近触发系统及信息面板实体
//
// 参数：
//   - em: 实体管理器
//   - interaction: 接近半径、面板偏移与超时
//   - headHeight: 用户头部高度，面板朝向头部
func NewProximitySystem(em *ecs.EntityManager, interaction config.InteractionConfig, headHeight float64) *ProximitySystem {
	s := &ProximitySystem{
		entityManager: em,
		radius:        interaction.ProximityRadius,
		offset:        interaction.PanelOffset,
		timeout:       interaction.PanelTimeout.Seconds(),
		headHeight:    headHeight,
	}

	s.boardEntity = em.CreateEntity()
	ecs.AddComponent(em, s.boardEntity, &components.InfoboardComponent{})

	return s
}

// BoardEntity 返回信息面板实体
func (s *ProximitySystem) BoardEntity() ecs.EntityID {
	return s.boardEntity
}

// Board 返回信息面板组件，面板不存在时返回 nil
func (s *ProximitySystem) Board() *components.InfoboardComponent {
	board, _ := ecs.GetComponent[*components.InfoboardComponent](s.entityManager, s.boardEntity)
	return board
}

// Now 返回帧时钟（秒）
func (s *ProximitySystem) Now() float64 {
	return s.elapsed
}

// Tick 只推进时钟并处理自动隐藏
// 用于未激活移动的帧：面板保持不变，但倒计时照常进行。
func (s *ProximitySystem) Tick(deltaTime float64) {
	s.advance(deltaTime)
	if board := s.Board(); board != nil {
		s.expire(board)
	}
}

// Update 推进时钟、处理自动隐藏，然后扫描所有锚点
//
// 参数：
//   - userPosition: 用户（dolly）的世界坐标
//   - deltaTime: 距上一帧的时间（秒），负值按 0 处理
func (s *ProximitySystem) Update(userPosition mgl64.Vec3, deltaTime float64) {
	s.advance(deltaTime)

	board := s.Board()
	if board == nil {
		return
	}
	s.expire(board)

	match, found := s.findAnchor(userPosition, board.ShownAnchor)
	if !found {
		if board.IsShown() {
			log.Printf("[ProximitySystem] Left range of %q, hiding board", board.ShownAnchor)
		}
		board.Hide()
		return
	}

	if match.Name == board.ShownAnchor {
		return
	}

	s.show(board, match, userPosition)
}

func (s *ProximitySystem) advance(deltaTime float64) {
	if deltaTime > 0 {
		s.elapsed += deltaTime
	}
}

func (s *ProximitySystem) expire(board *components.InfoboardComponent) {
	if board.IsShown() && s.elapsed >= board.Deadline {
		log.Printf("[ProximitySystem] Board %q timed out", board.ShownAnchor)
		board.Hide()
	}
}

// findAnchor 选择半径内的锚点
func (s *ProximitySystem) findAnchor(userPosition mgl64.Vec3, shown string) (*components.AnchorComponent, bool) {
	var best *components.AnchorComponent
	bestDist := math.Inf(1)

	for _, id := range ecs.GetEntitiesWith1[*components.AnchorComponent](s.entityManager) {
		anchor, ok := ecs.GetComponent[*components.AnchorComponent](s.entityManager, id)
		if !ok {
			continue
		}

		dist := userPosition.Sub(anchor.Position).Len()
		if dist >= s.radius {
			continue
		}

		if anchor.Name == shown {
			return anchor, true
		}

		if dist < bestDist || (dist == bestDist && best != nil && anchor.Name < best.Name) {
			best = anchor
			bestDist = dist
		}
	}

	return best, best != nil
}

// show 填充面板内容、摆放位置并重新开始倒计时
func (s *ProximitySystem) show(board *components.InfoboardComponent, anchor *components.AnchorComponent, userPosition mgl64.Vec3) {
	head := userPosition.Add(mgl64.Vec3{0, s.headHeight, 0})

	board.Title = anchor.Title
	board.Body = anchor.Body
	board.Position = anchor.Position.Add(mgl64.Vec3{0, s.offset, 0})
	board.Yaw = world.FacingYaw(board.Position, head)
	board.Visible = true
	board.ShownAnchor = anchor.Name
	board.Deadline = s.elapsed + s.timeout

	log.Printf("[ProximitySystem] Showing board %q", anchor.Name)
}
