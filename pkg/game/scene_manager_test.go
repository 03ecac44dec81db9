package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
	disposed     bool
	width        int
	height       int
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func (m *MockScene) Dispose() {
	m.disposed = true
}

func (m *MockScene) Resize(width, height int) {
	m.width, m.height = width, height
}

func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

func TestSceneManagerSwitchToDisposesPrevious(t *testing.T) {
	sm := NewSceneManager()
	loading := &MockScene{}
	campus := &MockScene{}

	sm.SwitchTo(loading)
	sm.SwitchTo(campus)

	if sm.GetCurrentScene() != campus {
		t.Error("SwitchTo did not set the current scene correctly")
	}
	if !loading.disposed {
		t.Error("previous scene should be disposed")
	}
	if campus.disposed {
		t.Error("current scene should not be disposed")
	}

	// 切换到同一场景不触发释放
	sm.SwitchTo(campus)
	if campus.disposed {
		t.Error("switching to the active scene must not dispose it")
	}
}

func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Update(0.016)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != 0.016 {
		t.Errorf("Expected deltaTime 0.016, got %f", mockScene.deltaTime)
	}
}

func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()

	// 没有场景时不应 panic
	sm.Update(0.016)
	sm.Draw(nil)
	sm.Resize(800, 600)
}

func TestSceneManagerResize(t *testing.T) {
	sm := NewSceneManager()
	sm.Resize(1280, 720)

	scene := &MockScene{}
	sm.SwitchTo(scene)

	if scene.width != 1280 || scene.height != 720 {
		t.Errorf("new scene should receive current size, got %dx%d", scene.width, scene.height)
	}

	sm.Resize(1920, 1080)
	if scene.width != 1920 || scene.height != 1080 {
		t.Errorf("Resize not forwarded, got %dx%d", scene.width, scene.height)
	}

	w, h := sm.Size()
	if w != 1920 || h != 1080 {
		t.Errorf("Size: got %dx%d", w, h)
	}
}
