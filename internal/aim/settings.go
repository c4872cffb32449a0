package aim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/vcam/pkg/utils"
)

// CompositionSettings describes where on the screen the target should be
// kept. The dead zone is the central region where the target requires no
// rotation; the soft zone is the larger region within which rotation is
// damped. Outside the soft zone the target is forced back without damping.
//
// Invariant: DeadZoneSize <= SoftZoneSize component-wise. Clamp enforces it;
// every mutation path must go through Clamp.
type CompositionSettings struct {
	// ScreenPosition is the offset of the zone center from the screen
	// center (0.5, 0.5), in normalized screen units.
	ScreenPosition mgl64.Vec2

	// DeadZoneSize is the width/height of the dead zone in normalized
	// screen units.
	DeadZoneSize mgl64.Vec2

	// SoftZoneSize is the width/height of the soft zone in normalized
	// screen units. Never smaller than DeadZoneSize on either axis.
	SoftZoneSize mgl64.Vec2

	// Bias shifts the soft zone relative to the dead zone, expressed as a
	// fraction of the slack between them, per axis in [-0.5, 0.5].
	Bias mgl64.Vec2
}

// DefaultComposition returns the composition used when nothing is configured:
// a small centered dead zone inside a generous soft zone.
func DefaultComposition() CompositionSettings {
	return CompositionSettings{
		DeadZoneSize: mgl64.Vec2{0.1, 0.1},
		SoftZoneSize: mgl64.Vec2{0.8, 0.8},
	}
}

// Clamp normalizes the settings into their valid ranges and enforces the
// dead-zone-within-soft-zone invariant.
func (s *CompositionSettings) Clamp() {
	s.ScreenPosition[0] = utils.Clamp(s.ScreenPosition[0], -1, 1)
	s.ScreenPosition[1] = utils.Clamp(s.ScreenPosition[1], -1, 1)
	s.DeadZoneSize[0] = utils.Clamp(s.DeadZoneSize[0], 0, 2)
	s.DeadZoneSize[1] = utils.Clamp(s.DeadZoneSize[1], 0, 2)
	s.SoftZoneSize[0] = utils.Clamp(s.SoftZoneSize[0], 0, 2)
	s.SoftZoneSize[1] = utils.Clamp(s.SoftZoneSize[1], 0, 2)
	if s.DeadZoneSize[0] > s.SoftZoneSize[0] {
		s.DeadZoneSize[0] = s.SoftZoneSize[0]
	}
	if s.DeadZoneSize[1] > s.SoftZoneSize[1] {
		s.DeadZoneSize[1] = s.SoftZoneSize[1]
	}
	s.Bias[0] = utils.Clamp(s.Bias[0], -0.5, 0.5)
	s.Bias[1] = utils.Clamp(s.Bias[1], -0.5, 0.5)
}

// SoftGuideRect returns the dead-zone rectangle in normalized screen space.
// A target inside it needs no rotation; the soft-zone pass rotates the
// camera (with damping) until the target enters this rectangle.
func (s CompositionSettings) SoftGuideRect() Rect {
	cx := 0.5 + s.ScreenPosition[0]
	cy := 0.5 + s.ScreenPosition[1]
	return Rect{
		XMin: cx - s.DeadZoneSize[0]/2,
		YMin: cy - s.DeadZoneSize[1]/2,
		XMax: cx + s.DeadZoneSize[0]/2,
		YMax: cy + s.DeadZoneSize[1]/2,
	}
}

// HardGuideRect returns the soft-zone rectangle in normalized screen space,
// shifted by the bias. The true target is never allowed outside it; the
// hard-bounds pass forces it back without damping.
func (s CompositionSettings) HardGuideRect() Rect {
	cx := 0.5 + s.ScreenPosition[0] + s.Bias[0]*(s.SoftZoneSize[0]-s.DeadZoneSize[0])
	cy := 0.5 + s.ScreenPosition[1] + s.Bias[1]*(s.SoftZoneSize[1]-s.DeadZoneSize[1])
	return Rect{
		XMin: cx - s.SoftZoneSize[0]/2,
		YMin: cy - s.SoftZoneSize[1]/2,
		XMax: cx + s.SoftZoneSize[0]/2,
		YMax: cy + s.SoftZoneSize[1]/2,
	}
}

// CompositionProvider is the narrow capability for reading and overriding
// composition settings at runtime. External systems (profile blending,
// screen-shake style modifiers) mutate composition through it without
// touching the solver itself.
type CompositionProvider interface {
	Composition() CompositionSettings
	SetComposition(CompositionSettings)
}

// LookaheadSettings configures the predictive offset of the tracked point
// based on the estimated target velocity.
type LookaheadSettings struct {
	// Enabled turns lookahead on.
	Enabled bool

	// Time is the prediction horizon in seconds.
	Time float64

	// Smoothing is the velocity-estimate smoothing time constant in
	// seconds. Smaller values react faster.
	Smoothing float64

	// IgnoreY drops the vertical component of the predicted motion,
	// useful for targets that jump.
	IgnoreY bool
}

// Clamp normalizes the lookahead settings into their valid ranges.
func (s *LookaheadSettings) Clamp() {
	s.Time = utils.Clamp(s.Time, 0, 10)
	s.Smoothing = utils.Clamp(s.Smoothing, 0, 30)
}

// DampingSettings holds the per-axis exponential damping time constants,
// in seconds. Vertical damps the pitch correction, Horizontal damps the
// yaw correction. Zero disables damping on that axis.
type DampingSettings struct {
	Horizontal float64
	Vertical   float64
}

// Clamp normalizes the damping settings into their valid ranges.
func (s *DampingSettings) Clamp() {
	s.Horizontal = utils.Clamp(s.Horizontal, 0, 20)
	s.Vertical = utils.Clamp(s.Vertical, 0, 20)
}

// Max returns the larger of the two damping constants. The host uses it
// to size blend windows.
func (s DampingSettings) Max() float64 {
	if s.Horizontal > s.Vertical {
		return s.Horizontal
	}
	return s.Vertical
}
