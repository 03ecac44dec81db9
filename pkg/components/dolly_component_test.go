package components

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDollyHeadPosition(t *testing.T) {
	d := &DollyComponent{Position: mgl64.Vec3{0, 0, 10}, HeadHeight: 1.6}

	got := d.HeadPosition()
	if !got.ApproxEqual(mgl64.Vec3{0, 1.6, 10}) {
		t.Errorf("HeadPosition: got %v, want (0, 1.6, 10)", got)
	}
}

func TestDollyForward(t *testing.T) {
	tests := []struct {
		name string
		yaw  float64
		want mgl64.Vec3
	}{
		{"facing -Z", 0, mgl64.Vec3{0, 0, -1}},
		{"turned left", math.Pi / 2, mgl64.Vec3{-1, 0, 0}},
		{"turned around", math.Pi, mgl64.Vec3{0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &DollyComponent{Yaw: tt.yaw}
			got := d.Forward()
			if !got.ApproxEqualThreshold(tt.want, 1e-9) {
				t.Errorf("Forward(yaw=%.2f): got %v, want %v", tt.yaw, got, tt.want)
			}
		})
	}
}

func TestInfoboardHide(t *testing.T) {
	board := &InfoboardComponent{Visible: true, ShownAnchor: "Library", Deadline: 7}

	if !board.IsShown() {
		t.Fatal("board should be shown")
	}

	board.Hide()

	if board.IsShown() || board.Visible || board.Deadline != 0 {
		t.Errorf("Hide left state %+v", board)
	}
}

func TestGazeModeString(t *testing.T) {
	if GazeModeMove.String() != "move" || GazeModeHidden.String() != "hidden" {
		t.Error("unexpected gaze mode names")
	}
	if SurfaceGlass.String() != "glass" || SurfaceDefault.String() != "default" {
		t.Error("unexpected surface tag names")
	}
}
