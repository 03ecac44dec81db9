package systems

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeDisplay struct {
	fullscreen []bool
	captured   []bool
}

func (d *fakeDisplay) SetFullscreen(fullscreen bool) {
	d.fullscreen = append(d.fullscreen, fullscreen)
}

func (d *fakeDisplay) SetCursorCaptured(captured bool) {
	d.captured = append(d.captured, captured)
}

func TestPresentationSyncAppliesChangesOnce(t *testing.T) {
	display := &fakeDisplay{}
	s := NewPresentationSystem(display)

	assert.False(t, s.Sync(), "nothing changed yet")

	s.Toggle()
	assert.True(t, s.Presenting())
	assert.True(t, s.Sync())
	assert.False(t, s.Sync(), "change is reported only once")
	assert.Equal(t, []bool{true}, display.fullscreen)
	assert.Equal(t, []bool{true}, display.captured)

	s.SetPresenting(false)
	assert.True(t, s.Sync())
	assert.Equal(t, []bool{true, false}, display.fullscreen)
}

// 同一帧内来回切换不触发显示变化
func TestPresentationToggleTwiceIsNoChange(t *testing.T) {
	display := &fakeDisplay{}
	s := NewPresentationSystem(display)

	s.Toggle()
	s.Toggle()
	assert.False(t, s.Sync())
	assert.Empty(t, display.fullscreen)
}

func TestPresentationWithoutDriver(t *testing.T) {
	s := NewPresentationSystem(nil)
	s.SetPresenting(true)
	assert.True(t, s.Sync())
}

func TestVRButtonBounds(t *testing.T) {
	bounds := VRButtonBounds(1280, 720)
	assert.Equal(t, 640, bounds.Min.X+bounds.Dx()/2, "button is centred")
	assert.Less(t, bounds.Max.Y, 720)
	assert.Greater(t, bounds.Dx(), 0)
}

func TestPresentationHandlePressOnButton(t *testing.T) {
	s := NewPresentationSystem(nil)
	s.SetButtonBounds(image.Rect(100, 100, 200, 140))

	assert.False(t, s.HandlePress(50, 50, false), "outside the button")
	assert.False(t, s.Presenting())

	assert.True(t, s.HandlePress(150, 120, false))
	assert.True(t, s.Presenting())

	// 沉浸模式下再次点按按钮区域不会退出
	assert.False(t, s.HandlePress(150, 120, false))
	assert.True(t, s.Presenting())
}

// 移动端点按任意位置即进入
func TestPresentationHandlePressAnywhere(t *testing.T) {
	s := NewPresentationSystem(nil)
	s.SetButtonBounds(image.Rect(100, 100, 200, 140))

	assert.True(t, s.HandlePress(5, 5, true))
	assert.True(t, s.Presenting())
}

func TestPresentationHandlePressWithoutButton(t *testing.T) {
	s := NewPresentationSystem(nil)

	assert.False(t, s.HandlePress(0, 0, false), "empty bounds never hit")
	assert.False(t, s.Presenting())
}
