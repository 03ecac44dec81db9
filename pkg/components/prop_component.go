package components

import "github.com/go-gl/mathgl/mgl64"

// PropComponent 装饰道具（如停在路边的汽车）
type PropComponent struct {
	Name     string
	Path     string
	Position mgl64.Vec3
	Scale    float64
	Yaw      float64 // 弧度
	Loaded   bool
	Failed   bool
}
