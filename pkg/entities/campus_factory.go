// Package entities 提供漫游场景实体的工厂函数
package entities

import (
	"fmt"
	"log"

	"github.com/decker502/campusxr/pkg/components"
	"github.com/decker502/campusxr/pkg/config"
	"github.com/decker502/campusxr/pkg/ecs"
	"github.com/decker502/campusxr/pkg/game"
	"github.com/go-gl/mathgl/mgl64"
)

// NewDollyEntity 创建用户 dolly 实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: dolly 初始位置、头部高度与移动速度
//
// 返回:
//   - ecs.EntityID: 创建的实体ID
//   - error: 参数无效时返回错误
func NewDollyEntity(em *ecs.EntityManager, cfg config.DollyConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg.HeadHeight < 0 {
		return 0, fmt.Errorf("invalid head height %.2f", cfg.HeadHeight)
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.DollyComponent{
		Position:   toVec3(cfg.Start),
		HeadHeight: cfg.HeadHeight,
		MoveSpeed:  cfg.MoveSpeed,
	})

	log.Printf("[DollyFactory] Dolly %d at (%.1f, %.1f, %.1f)", entityID, cfg.Start.X, cfg.Start.Y, cfg.Start.Z)
	return entityID, nil
}

// NewAnchorEntities 为每个已解析的锚点创建实体
//
// 同名锚点只创建一次（名称唯一）。
func NewAnchorEntities(em *ecs.EntityManager, anchors []game.ResolvedAnchor) ([]ecs.EntityID, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}

	ids := make([]ecs.EntityID, 0, len(anchors))
	seen := make(map[string]bool, len(anchors))
	for _, anchor := range anchors {
		if seen[anchor.Key] {
			log.Printf("[AnchorFactory] Duplicate anchor %q ignored", anchor.Key)
			continue
		}
		seen[anchor.Key] = true

		entityID := em.CreateEntity()
		ecs.AddComponent(em, entityID, &components.AnchorComponent{
			Name:     anchor.Key,
			Position: anchor.Position,
			Title:    anchor.Title,
			Body:     anchor.Body,
		})
		ids = append(ids, entityID)
	}

	log.Printf("[AnchorFactory] Created %d anchors", len(ids))
	return ids, nil
}

// NewPropEntity 创建装饰道具实体，模型由场景异步加载
func NewPropEntity(em *ecs.EntityManager, cfg *config.CampusConfig, prop config.PropConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if prop.Scale <= 0 {
		return 0, fmt.Errorf("prop %q: scale must be positive", prop.Name)
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.PropComponent{
		Name:     prop.Name,
		Path:     cfg.PropPath(prop),
		Position: toVec3(prop.Position),
		Scale:    prop.Scale,
		Yaw:      mgl64.DegToRad(prop.Yaw),
	})
	return entityID, nil
}

func toVec3(v config.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}
