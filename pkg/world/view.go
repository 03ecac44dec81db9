package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// 相机裁剪面
const (
	NearPlane = 0.01
	FarPlane  = 500.0
)

// View 描述用户头部相机，用于把世界坐标投影到屏幕（信息板叠加层）
type View struct {
	Eye         mgl64.Vec3
	Yaw         float64 // 弧度，0 朝向 -Z
	Pitch       float64 // 弧度，正值抬头
	FieldOfView float64 // 垂直视场角（度）
	Width       int
	Height      int
}

// Direction 返回视线方向（单位向量）
func (v View) Direction() mgl64.Vec3 {
	rot := mgl64.Rotate3DY(v.Yaw).Mul3(mgl64.Rotate3DX(v.Pitch))
	return rot.Mul3x1(mgl64.Vec3{0, 0, -1})
}

// Project 把世界坐标投影到屏幕像素坐标
//
// 返回 visible=false 表示点在相机背后或超出远裁剪面。
func (v View) Project(p mgl64.Vec3) (x, y float64, visible bool) {
	if v.Width <= 0 || v.Height <= 0 {
		return 0, 0, false
	}

	aspect := float64(v.Width) / float64(v.Height)
	proj := mgl64.Perspective(mgl64.DegToRad(v.FieldOfView), aspect, NearPlane, FarPlane)
	view := mgl64.LookAtV(v.Eye, v.Eye.Add(v.Direction()), mgl64.Vec3{0, 1, 0})

	clip := proj.Mul4(view).Mul4x1(p.Vec4(1))
	w := clip[3]
	if w <= NearPlane || w > FarPlane {
		return 0, 0, false
	}

	ndcX := clip[0] / w
	ndcY := clip[1] / w
	x = (ndcX + 1) / 2 * float64(v.Width)
	y = (1 - ndcY) / 2 * float64(v.Height)
	return x, y, true
}

// FacingYaw 返回位于 from 的物体转向 to 所需的绕 Y 轴角度
// 与 View.Yaw 使用同一约定（0 朝向 -Z）
func FacingYaw(from, to mgl64.Vec3) float64 {
	d := to.Sub(from)
	if math.Abs(d[0]) < 1e-12 && math.Abs(d[2]) < 1e-12 {
		return 0
	}
	return math.Atan2(-d[0], -d[2])
}
