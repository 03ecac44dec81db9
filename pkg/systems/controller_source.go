package systems

import (
	"github.com/decker502/campusxr/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ControllerEventKind 手柄事件类型
type ControllerEventKind int

const (
	ControllerConnected ControllerEventKind = iota
	ControllerDisconnected
	ControllerSelectStart
	ControllerSelectEnd
)

// String 返回事件名称（日志用）
func (k ControllerEventKind) String() string {
	switch k {
	case ControllerConnected:
		return "connected"
	case ControllerDisconnected:
		return "disconnected"
	case ControllerSelectStart:
		return "selectstart"
	case ControllerSelectEnd:
		return "selectend"
	default:
		return "unknown"
	}
}

// ControllerEvent 一个手柄事件，Slot 见 components 中的槽位常量
type ControllerEvent struct {
	Kind ControllerEventKind
	Slot int
}

// ControllerSource 手柄事件来源，每帧开始时由 InputSystem 拉取一次
type ControllerSource interface {
	PollControllerEvents(dst []ControllerEvent) []ControllerEvent
}

// MultiSource 依次拉取多个事件来源
type MultiSource []ControllerSource

// PollControllerEvents 实现 ControllerSource
func (m MultiSource) PollControllerEvents(dst []ControllerEvent) []ControllerEvent {
	for _, src := range m {
		if src != nil {
			dst = src.PollControllerEvents(dst)
		}
	}
	return dst
}

// GamepadControllerSource 把前两个连接的游戏手柄映射为左右 XR 手柄
type GamepadControllerSource struct {
	slots [components.XRControllerSlots]ebiten.GamepadID
	used  [components.XRControllerSlots]bool

	connected []ebiten.GamepadID
}

// NewGamepadControllerSource 创建手柄事件来源
func NewGamepadControllerSource() *GamepadControllerSource {
	return &GamepadControllerSource{}
}

// PollControllerEvents 实现 ControllerSource
func (g *GamepadControllerSource) PollControllerEvents(dst []ControllerEvent) []ControllerEvent {
	g.connected = inpututil.AppendJustConnectedGamepadIDs(g.connected[:0])
	for _, id := range g.connected {
		if slot := g.assign(id); slot >= 0 {
			dst = append(dst, ControllerEvent{Kind: ControllerConnected, Slot: slot})
		}
	}

	for slot := range g.slots {
		if !g.used[slot] {
			continue
		}
		id := g.slots[slot]

		if inpututil.IsGamepadJustDisconnected(id) {
			g.used[slot] = false
			dst = append(dst, ControllerEvent{Kind: ControllerDisconnected, Slot: slot})
			continue
		}

		if selectJustPressed(id) {
			dst = append(dst, ControllerEvent{Kind: ControllerSelectStart, Slot: slot})
		}
		if selectJustReleased(id) {
			dst = append(dst, ControllerEvent{Kind: ControllerSelectEnd, Slot: slot})
		}
	}

	return dst
}

// assign 为新连接的手柄分配空闲槽位，没有空闲槽位时返回 -1
func (g *GamepadControllerSource) assign(id ebiten.GamepadID) int {
	for slot := range g.slots {
		if !g.used[slot] {
			g.slots[slot] = id
			g.used[slot] = true
			return slot
		}
	}
	return -1
}

// 扳机（select）键：标准布局使用右下肩键，否则使用 0 号按键
func selectJustPressed(id ebiten.GamepadID) bool {
	if ebiten.IsStandardGamepadLayoutAvailable(id) {
		return inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight) ||
			inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}
	return inpututil.IsGamepadButtonJustPressed(id, ebiten.GamepadButton0)
}

func selectJustReleased(id ebiten.GamepadID) bool {
	if ebiten.IsStandardGamepadLayoutAvailable(id) {
		return inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonFrontBottomRight) ||
			inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonRightBottom)
	}
	return inpututil.IsGamepadButtonJustReleased(id, ebiten.GamepadButton0)
}

// KeyboardControllerSource 桌面调试用：按住空格或 W 等同于按下扳机
//
// Slot 应使用独立的 components.KeyboardSlot，与实体手柄的按键状态互不覆盖。
// 键盘不产生 connected 事件，因此不会取消注视模式的宽限期计时。
type KeyboardControllerSource struct {
	Slot int
}

// PollControllerEvents 实现 ControllerSource
func (k KeyboardControllerSource) PollControllerEvents(dst []ControllerEvent) []ControllerEvent {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW) {
		dst = append(dst, ControllerEvent{Kind: ControllerSelectStart, Slot: k.Slot})
	}
	if inpututil.IsKeyJustReleased(ebiten.KeySpace) || inpututil.IsKeyJustReleased(ebiten.KeyW) {
		dst = append(dst, ControllerEvent{Kind: ControllerSelectEnd, Slot: k.Slot})
	}
	return dst
}
