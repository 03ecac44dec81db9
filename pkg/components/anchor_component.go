package components

import "github.com/go-gl/mathgl/mgl64"

// AnchorComponent 兴趣点锚点
// 名称唯一，加载后不再修改
type AnchorComponent struct {
	Name     string
	Position mgl64.Vec3
	Title    string
	Body     string
}
