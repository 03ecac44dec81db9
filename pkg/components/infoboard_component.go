package components

import "github.com/go-gl/mathgl/mgl64"

// InfoboardComponent 唯一的信息面板
//
// 状态机：Hidden（ShownAnchor 为空）/ Shown(ShownAnchor, Deadline)。
// 只由 ProximitySystem 修改。
type InfoboardComponent struct {
	Visible     bool
	ShownAnchor string // 当前显示的锚点名，空字符串表示 Hidden

	Title string
	Body  string

	Position mgl64.Vec3 // 锚点位置 + 垂直偏移
	Yaw      float64    // 面板朝向用户时绕 Y 轴的角度

	// Deadline 自动隐藏时刻（帧时钟，秒）
	Deadline float64
}

// IsShown 返回面板是否处于 Shown 状态
func (c *InfoboardComponent) IsShown() bool {
	return c.ShownAnchor != ""
}

// Hide 清除当前显示标记并隐藏面板
func (c *InfoboardComponent) Hide() {
	c.Visible = false
	c.ShownAnchor = ""
	c.Deadline = 0
}
