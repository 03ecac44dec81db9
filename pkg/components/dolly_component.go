package components

import "github.com/go-gl/mathgl/mgl64"

// DollyComponent 用户的可移动参照系
//
// Position 是 dolly 在世界中的位置（脚下），头部（相机）位于其上方 HeadHeight 处。
// Yaw/Pitch 是头部朝向，桌面模式下由鼠标驱动，头显模式下由头显提供。
type DollyComponent struct {
	Position   mgl64.Vec3
	HeadHeight float64
	Yaw        float64 // 绕 Y 轴，0 表示朝向 -Z
	Pitch      float64 // 绕 X 轴，正值抬头
	MoveSpeed  float64 // 单位/秒
}

// HeadPosition 返回头部（相机）的世界坐标
func (d *DollyComponent) HeadPosition() mgl64.Vec3 {
	return d.Position.Add(mgl64.Vec3{0, d.HeadHeight, 0})
}

// Forward 返回水平面内的前进方向（单位向量）
func (d *DollyComponent) Forward() mgl64.Vec3 {
	return mgl64.Rotate3DY(d.Yaw).Mul3x1(mgl64.Vec3{0, 0, -1})
}
