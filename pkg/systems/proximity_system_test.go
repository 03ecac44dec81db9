package systems

import (
	"math"
	"testing"

	"github.com/decker502/campusxr/pkg/components"
	"github.com/decker502/campusxr/pkg/config"
	"github.com/decker502/campusxr/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProximityFixture(t *testing.T, anchors ...components.AnchorComponent) (*ecs.EntityManager, *ProximitySystem) {
	t.Helper()
	em := ecs.NewEntityManager()
	for i := range anchors {
		anchor := anchors[i]
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &anchor)
	}
	return em, NewProximitySystem(em, config.DefaultCampusConfig().Interaction, 1.6)
}

var libraryAnchor = components.AnchorComponent{
	Name:     "Library",
	Position: mgl64.Vec3{15, 0, -5},
	Title:    "Library",
	Body:     "Open 8:00 - 22:00",
}

func TestProximityShowsBoardInRange(t *testing.T) {
	_, s := newProximityFixture(t, libraryAnchor)

	s.Update(mgl64.Vec3{14, 0, -5}, 0)

	board := s.Board()
	require.NotNil(t, board)
	assert.True(t, board.Visible)
	assert.Equal(t, "Library", board.ShownAnchor)
	assert.Equal(t, "Library", board.Title)
	assert.Equal(t, "Open 8:00 - 22:00", board.Body)
	assert.InDelta(t, 1.3, board.Position.Y(), 1e-9, "panel sits above the anchor")
	assert.InDelta(t, 15, board.Position.X(), 1e-9)
	assert.InDelta(t, 7.0, board.Deadline, 1e-9)

	// 用户在 -X 方向，面板朝向 -X
	assert.InDelta(t, math.Pi/2, board.Yaw, 1e-9)
}

func TestProximityOutOfRangeStaysHidden(t *testing.T) {
	_, s := newProximityFixture(t, libraryAnchor)

	s.Update(mgl64.Vec3{0, 0, 10}, 0.016)
	assert.False(t, s.Board().Visible)
	assert.False(t, s.Board().IsShown())

	// 距离恰好等于半径不算进入
	s.Update(mgl64.Vec3{12, 0, -5}, 0.016)
	assert.False(t, s.Board().IsShown())
}

// 仍在同一锚点范围内时不重置倒计时
func TestProximityReentryIsIdempotent(t *testing.T) {
	_, s := newProximityFixture(t, libraryAnchor)

	s.Update(mgl64.Vec3{14, 0, -5}, 0)
	deadline := s.Board().Deadline

	for i := 0; i < 10; i++ {
		s.Update(mgl64.Vec3{14.5, 0, -4.5}, 0.1)
	}

	board := s.Board()
	assert.True(t, board.Visible)
	assert.Equal(t, deadline, board.Deadline)
	assert.Equal(t, "Library", board.ShownAnchor)
}

func TestProximityHidesWhenLeavingRange(t *testing.T) {
	_, s := newProximityFixture(t, libraryAnchor)

	s.Update(mgl64.Vec3{15, 0, -5}, 0)
	require.True(t, s.Board().Visible)

	s.Update(mgl64.Vec3{15, 0, 0}, 0.016)
	assert.False(t, s.Board().Visible)
	assert.False(t, s.Board().IsShown())
}

func TestProximityAutoHideAfterTimeout(t *testing.T) {
	_, s := newProximityFixture(t, libraryAnchor)

	s.Update(mgl64.Vec3{15, 0, -5}, 0)
	require.True(t, s.Board().Visible)

	s.Tick(6.9)
	assert.True(t, s.Board().Visible, "still visible before 7s")

	s.Tick(0.1)
	assert.False(t, s.Board().Visible, "hidden once 7s have elapsed")
}

// 倒计时到期后用户仍站在锚点旁，下一次扫描会重新显示
func TestProximityTimeoutThenRetrigger(t *testing.T) {
	_, s := newProximityFixture(t, libraryAnchor)

	s.Update(mgl64.Vec3{15, 0, -5}, 0)
	s.Tick(7.0)
	require.False(t, s.Board().Visible)

	s.Update(mgl64.Vec3{15, 0, -5}, 0.016)
	assert.True(t, s.Board().Visible)
	assert.InDelta(t, s.Now()+7.0, s.Board().Deadline, 1e-9)
}

// 从起点走到图书馆：进入范围后显示，7 秒后自动隐藏
func TestProximityWalkToLibrary(t *testing.T) {
	_, s := newProximityFixture(t, libraryAnchor)

	start := mgl64.Vec3{0, 0, 10}
	target := libraryAnchor.Position
	const steps = 100
	shownAt := -1
	for i := 0; i <= steps; i++ {
		pos := start.Add(target.Sub(start).Mul(float64(i) / steps))
		s.Update(pos, 0.05)
		if shownAt < 0 && s.Board().Visible {
			shownAt = i
		}
	}

	require.GreaterOrEqual(t, shownAt, 0, "board shown on arrival")
	assert.Equal(t, "Library", s.Board().ShownAnchor)

	s.Tick(7.0)
	assert.False(t, s.Board().Visible)
}

func TestProximitySwitchesBetweenAnchors(t *testing.T) {
	reception := components.AnchorComponent{
		Name: "Reception", Position: mgl64.Vec3{0, 0, 0}, Title: "Reception", Body: "Front desk",
	}
	cafe := components.AnchorComponent{
		Name: "Cafe", Position: mgl64.Vec3{10, 0, 0}, Title: "Cafe", Body: "Coffee",
	}
	_, s := newProximityFixture(t, reception, cafe)

	s.Update(mgl64.Vec3{1, 0, 0}, 0)
	require.Equal(t, "Reception", s.Board().ShownAnchor)

	s.Update(mgl64.Vec3{9, 0, 0}, 1.0)
	board := s.Board()
	assert.Equal(t, "Cafe", board.ShownAnchor)
	assert.Equal(t, "Coffee", board.Body)
	assert.InDelta(t, 1.0+7.0, board.Deadline, 1e-9, "new anchor restarts the countdown")
}

// 两个锚点同时在范围内：保留当前显示的，否则取最近的
func TestProximityOverlappingAnchors(t *testing.T) {
	a := components.AnchorComponent{Name: "A", Position: mgl64.Vec3{0, 0, 0}, Title: "A"}
	b := components.AnchorComponent{Name: "B", Position: mgl64.Vec3{2, 0, 0}, Title: "B"}
	_, s := newProximityFixture(t, a, b)

	s.Update(mgl64.Vec3{0.5, 0, 0}, 0)
	require.Equal(t, "A", s.Board().ShownAnchor, "nearest wins")

	// 更靠近 B，但 A 仍在范围内
	s.Update(mgl64.Vec3{1.8, 0, 0}, 0.1)
	assert.Equal(t, "A", s.Board().ShownAnchor, "shown anchor is kept while in range")

	// 离开 A 的范围
	s.Update(mgl64.Vec3{4.5, 0, 0}, 0.1)
	assert.Equal(t, "B", s.Board().ShownAnchor)
}

func TestProximityEqualDistanceBreaksTieByName(t *testing.T) {
	b := components.AnchorComponent{Name: "B", Position: mgl64.Vec3{1, 0, 0}}
	a := components.AnchorComponent{Name: "A", Position: mgl64.Vec3{-1, 0, 0}}
	_, s := newProximityFixture(t, b, a)

	s.Update(mgl64.Vec3{0, 0, 0}, 0)
	assert.Equal(t, "A", s.Board().ShownAnchor)
}

// 信息板数据尚未加载（没有锚点）时什么也不显示
func TestProximityWithoutAnchors(t *testing.T) {
	_, s := newProximityFixture(t)

	s.Update(mgl64.Vec3{15, 0, -5}, 0.016)
	assert.False(t, s.Board().Visible)
}

func TestProximityMissingBoardIsNoop(t *testing.T) {
	em, s := newProximityFixture(t, libraryAnchor)
	em.DestroyEntity(s.BoardEntity())
	em.RemoveMarkedEntities()

	assert.Nil(t, s.Board())
	assert.NotPanics(t, func() {
		s.Update(mgl64.Vec3{15, 0, -5}, 0.016)
		s.Tick(1)
	})
}

func TestProximityNegativeDeltaDoesNotRewindClock(t *testing.T) {
	_, s := newProximityFixture(t, libraryAnchor)

	s.Tick(1)
	s.Tick(-5)
	assert.InDelta(t, 1.0, s.Now(), 1e-9)
}
