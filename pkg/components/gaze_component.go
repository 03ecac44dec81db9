package components

// GazeMode 注视控制器模式
type GazeMode int

const (
	// GazeModeHidden 头部在转动，不显示准星进度
	GazeModeHidden GazeMode = iota
	// GazeModeGazing 头部稳定，准星进度累积中
	GazeModeGazing
	// GazeModeMove 注视时间达到阈值，用户向前移动
	GazeModeMove
)

// String 返回模式名称（日志用）
func (m GazeMode) String() string {
	switch m {
	case GazeModeHidden:
		return "hidden"
	case GazeModeGazing:
		return "gazing"
	case GazeModeMove:
		return "move"
	default:
		return "unknown"
	}
}

// GazeComponent 注视控制器状态
type GazeComponent struct {
	Mode     GazeMode
	Dwell    float64 // 已稳定注视的时间（秒）
	Progress float64 // 0~1，用于绘制准星进度

	lastYaw, lastPitch float64
	hasLast            bool
}

// LastOrientation 返回上一帧记录的头部朝向
func (g *GazeComponent) LastOrientation() (yaw, pitch float64, ok bool) {
	return g.lastYaw, g.lastPitch, g.hasLast
}

// RecordOrientation 记录本帧头部朝向
func (g *GazeComponent) RecordOrientation(yaw, pitch float64) {
	g.lastYaw, g.lastPitch, g.hasLast = yaw, pitch, true
}
