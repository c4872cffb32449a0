package aim

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// TestCompositionSettings_ClampRanges tests the valid-range clamping of
// every composition field
func TestCompositionSettings_ClampRanges(t *testing.T) {
	s := CompositionSettings{
		ScreenPosition: mgl64.Vec2{-3, 3},
		DeadZoneSize:   mgl64.Vec2{-1, 5},
		SoftZoneSize:   mgl64.Vec2{3, -2},
		Bias:           mgl64.Vec2{-2, 2},
	}
	s.Clamp()

	if s.ScreenPosition != (mgl64.Vec2{-1, 1}) {
		t.Errorf("Expected screen position clamped to [-1,1], got %v", s.ScreenPosition)
	}
	if s.SoftZoneSize != (mgl64.Vec2{2, 0}) {
		t.Errorf("Expected soft zone clamped to [0,2], got %v", s.SoftZoneSize)
	}
	if s.Bias != (mgl64.Vec2{-0.5, 0.5}) {
		t.Errorf("Expected bias clamped to [-0.5,0.5], got %v", s.Bias)
	}
}

// TestCompositionSettings_DeadZoneNeverExceedsSoftZone tests that the dead
// zone is pulled down to the soft zone on every mutation
func TestCompositionSettings_DeadZoneNeverExceedsSoftZone(t *testing.T) {
	s := CompositionSettings{
		DeadZoneSize: mgl64.Vec2{0.9, 0.3},
		SoftZoneSize: mgl64.Vec2{0.4, 0.5},
	}
	s.Clamp()

	if s.DeadZoneSize[0] > s.SoftZoneSize[0] || s.DeadZoneSize[1] > s.SoftZoneSize[1] {
		t.Fatalf("Expected dead zone <= soft zone, got dead=%v soft=%v", s.DeadZoneSize, s.SoftZoneSize)
	}
	if s.DeadZoneSize != (mgl64.Vec2{0.4, 0.3}) {
		t.Errorf("Expected dead zone (0.4, 0.3), got %v", s.DeadZoneSize)
	}
	if s.SoftZoneSize != (mgl64.Vec2{0.4, 0.5}) {
		t.Errorf("Expected soft zone untouched, got %v", s.SoftZoneSize)
	}
}

// TestCompositionSettings_GuideRects tests the screen-space geometry of the
// soft and hard guide rectangles
func TestCompositionSettings_GuideRects(t *testing.T) {
	s := CompositionSettings{
		ScreenPosition: mgl64.Vec2{0.1, -0.05},
		DeadZoneSize:   mgl64.Vec2{0.2, 0.1},
		SoftZoneSize:   mgl64.Vec2{0.6, 0.5},
	}
	s.Clamp()

	soft := s.SoftGuideRect()
	if math.Abs(soft.CenterX()-0.6) > 1e-12 || math.Abs(soft.CenterY()-0.45) > 1e-12 {
		t.Errorf("Expected soft rect centered at (0.6, 0.45), got (%v, %v)", soft.CenterX(), soft.CenterY())
	}
	if math.Abs(soft.Width()-0.2) > 1e-12 || math.Abs(soft.Height()-0.1) > 1e-12 {
		t.Errorf("Expected soft rect sized (0.2, 0.1), got (%v, %v)", soft.Width(), soft.Height())
	}

	hard := s.HardGuideRect()
	if math.Abs(hard.Width()-0.6) > 1e-12 || math.Abs(hard.Height()-0.5) > 1e-12 {
		t.Errorf("Expected hard rect sized (0.6, 0.5), got (%v, %v)", hard.Width(), hard.Height())
	}
	// Without bias both rects share a center.
	if math.Abs(hard.CenterX()-soft.CenterX()) > 1e-12 || math.Abs(hard.CenterY()-soft.CenterY()) > 1e-12 {
		t.Errorf("Expected unbiased hard rect concentric with soft rect, got (%v, %v)", hard.CenterX(), hard.CenterY())
	}
}

// TestCompositionSettings_BiasShiftsHardRect tests that bias shifts the
// hard rect by a fraction of the slack between the two zones
func TestCompositionSettings_BiasShiftsHardRect(t *testing.T) {
	s := CompositionSettings{
		DeadZoneSize: mgl64.Vec2{0.2, 0.2},
		SoftZoneSize: mgl64.Vec2{0.6, 0.6},
		Bias:         mgl64.Vec2{0.5, -0.25},
	}
	s.Clamp()

	hard := s.HardGuideRect()
	// Slack is 0.4 per axis.
	if math.Abs(hard.CenterX()-(0.5+0.5*0.4)) > 1e-12 {
		t.Errorf("Expected hard rect center x %v, got %v", 0.5+0.5*0.4, hard.CenterX())
	}
	if math.Abs(hard.CenterY()-(0.5-0.25*0.4)) > 1e-12 {
		t.Errorf("Expected hard rect center y %v, got %v", 0.5-0.25*0.4, hard.CenterY())
	}
	// Bias never moves the soft rect.
	soft := s.SoftGuideRect()
	if math.Abs(soft.CenterX()-0.5) > 1e-12 || math.Abs(soft.CenterY()-0.5) > 1e-12 {
		t.Errorf("Expected soft rect centered, got (%v, %v)", soft.CenterX(), soft.CenterY())
	}
}

// TestLookaheadSettings_Clamp tests the lookahead range clamping
func TestLookaheadSettings_Clamp(t *testing.T) {
	s := LookaheadSettings{Time: 99, Smoothing: -5}
	s.Clamp()
	if s.Time != 10 {
		t.Errorf("Expected lookahead time clamped to 10, got %v", s.Time)
	}
	if s.Smoothing != 0 {
		t.Errorf("Expected smoothing clamped to 0, got %v", s.Smoothing)
	}
}

// TestDampingSettings_ClampAndMax tests the damping range clamping and the
// max helper
func TestDampingSettings_ClampAndMax(t *testing.T) {
	s := DampingSettings{Horizontal: -1, Vertical: 42}
	s.Clamp()
	if s.Horizontal != 0 || s.Vertical != 20 {
		t.Errorf("Expected damping clamped to [0,20], got %+v", s)
	}
	if s.Max() != 20 {
		t.Errorf("Expected max damping 20, got %v", s.Max())
	}
}

// TestRect_Helpers tests the rectangle accessors and center collapse
func TestRect_Helpers(t *testing.T) {
	r := Rect{XMin: 0.2, YMin: 0.4, XMax: 0.8, YMax: 0.6}
	if math.Abs(r.Width()-0.6) > 1e-12 {
		t.Errorf("Expected width 0.6, got %v", r.Width())
	}
	if math.Abs(r.CenterX()-0.5) > 1e-12 || math.Abs(r.CenterY()-0.5) > 1e-12 {
		t.Errorf("Expected center (0.5, 0.5), got (%v, %v)", r.CenterX(), r.CenterY())
	}
	c := r.collapsedToCenter()
	if c.Width() != 0 || c.Height() != 0 {
		t.Errorf("Expected collapsed rect with zero size, got %+v", c)
	}
	if math.Abs(c.XMin-0.5) > 1e-12 || math.Abs(c.YMin-0.5) > 1e-12 {
		t.Errorf("Expected collapsed rect at the center, got %+v", c)
	}
}
