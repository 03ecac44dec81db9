package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a walkthrough scene (loading screen, campus).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，场景实现后会在逻辑分辨率变化时收到通知
//
// 例如进入/退出沉浸模式时全屏切换，3D 渲染目标需要按新尺寸重建。
type Resizable interface {
	Resize(width, height int)
}

// Disposable 是一个可选接口，场景被切换掉时调用 Dispose 释放资源
type Disposable interface {
	Dispose()
}
