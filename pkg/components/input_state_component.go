package components

// 输入槽位：0、1 为左右 XR 手柄，2 为桌面键盘
const (
	XRControllerSlots = 2
	KeyboardSlot      = XRControllerSlots
	ControllerSlots   = XRControllerSlots + 1
)

// ControllerState 单个手柄的按键状态
type ControllerState struct {
	Connected     bool
	SelectPressed bool
}

// InputStateComponent 每帧输入状态
//
// 手柄事件在帧开始时由 InputSystem.Dispatch 写入，之后整帧只读。
type InputStateComponent struct {
	Controllers [ControllerSlots]ControllerState

	// 注视模式（无手柄时的回退方案）
	UseGaze bool
	// FallbackArmed 宽限期计时器是否仍在等待
	// 计时到期或手柄先连接都会解除，且不会再次启动
	FallbackArmed    bool
	FallbackDeadline float64 // 帧时钟（秒）
}

// AnyControllerConnected 是否有任意手柄已连接
func (c *InputStateComponent) AnyControllerConnected() bool {
	for _, ctrl := range c.Controllers {
		if ctrl.Connected {
			return true
		}
	}
	return false
}
