package world

import (
	"github.com/decker502/campusxr/pkg/components"
	"github.com/decker502/campusxr/pkg/config"
)

// Classifier 按精确名称为场景网格确定分类标签
//
// 节点名优先于材质名：代理网格通常以节点命名，玻璃与天空盒以材质命名。
type Classifier struct {
	byName map[string]components.SurfaceTag
}

// NewClassifier 根据配置的分类表创建分类器
func NewClassifier(cfg config.SurfaceConfig) *Classifier {
	c := &Classifier{byName: make(map[string]components.SurfaceTag)}
	for _, name := range cfg.SkyBox {
		c.byName[name] = components.SurfaceSkyBox
	}
	for _, name := range cfg.Glass {
		c.byName[name] = components.SurfaceGlass
	}
	// 代理最后写入，同名冲突时以代理为准
	for _, name := range cfg.Proxy {
		c.byName[name] = components.SurfaceProxy
	}
	return c
}

// Classify 返回网格的分类标签
//
// 参数：
//   - nodeName: 网格节点名
//   - materialNames: 网格各部分的材质名
func (c *Classifier) Classify(nodeName string, materialNames []string) components.SurfaceTag {
	if tag, ok := c.byName[nodeName]; ok {
		return tag
	}
	for _, name := range materialNames {
		if tag, ok := c.byName[name]; ok {
			return tag
		}
	}
	return components.SurfaceDefault
}
