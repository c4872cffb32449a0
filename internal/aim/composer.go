package aim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/vcam/pkg/utils"
)

// Composer is the per-frame orientation solver. Each frame the host calls
// ResolveTrackedPoint (phase A) and then ComposeOrientation (phase B) on
// the same CameraState; phase A resolves where the camera should aim,
// phase B rotates the camera toward it under the composition rules.
//
// A Composer owns its frame history, guide-rect cache and predictor and
// must not be shared between cameras. It performs no I/O and never
// returns errors; degenerate geometry is handled by policy (see the
// individual steps).
type Composer struct {
	// Enabled gates the whole composer. When false both phases no-op and
	// the camera state is left untouched.
	Enabled bool

	// TrackedObjectOffset is a target-local offset applied to the look-at
	// position, rotated by the target's current rotation. Useful to aim
	// at a character's head instead of its pivot.
	TrackedObjectOffset mgl64.Vec3

	// Lookahead configures predictive aiming at where the target will be.
	Lookahead LookaheadSettings

	// Damping holds the per-axis damping time constants.
	Damping DampingSettings

	// CenterOnActivate collapses the dead zone to its center point on the
	// first frame (or after a camera cut), so the target snaps to the
	// exact configured screen position instead of the nearest dead-zone
	// edge.
	CenterOnActivate bool

	composition CompositionSettings
	predictor   Predictor
	cache       fovCache

	trackedPoint mgl64.Vec3

	// Frame history, written at the end of every valid phase B.
	prevCameraPos    mgl64.Vec3
	prevLookAt       mgl64.Vec3
	prevOrientation  mgl64.Quat
	prevScreenOffset mgl64.Vec2
}

var _ CompositionProvider = (*Composer)(nil)

// NewComposer returns an enabled composer with default composition and
// mild damping on both axes.
func NewComposer() *Composer {
	return &Composer{
		Enabled:         true,
		Damping:         DampingSettings{Horizontal: 0.5, Vertical: 0.5},
		composition:     DefaultComposition(),
		prevOrientation: mgl64.QuatIdent(),
	}
}

// IsValid reports whether the composer can operate this frame: it must be
// enabled and a look-at target must be assigned.
func (c *Composer) IsValid(hasLookAt bool) bool {
	return c != nil && c.Enabled && hasLookAt
}

// Composition returns the current composition settings.
// Together with SetComposition it forms the capability interface external
// modifiers (e.g. a blend system) use to override composition at runtime.
func (c *Composer) Composition() CompositionSettings {
	return c.composition
}

// SetComposition replaces the composition settings, clamping them into
// their valid ranges (dead zone never exceeds soft zone).
func (c *Composer) SetComposition(s CompositionSettings) {
	s.Clamp()
	c.composition = s
}

// SoftGuideRect returns the dead-zone rectangle in normalized screen
// space, for visualization.
func (c *Composer) SoftGuideRect() Rect { return c.composition.SoftGuideRect() }

// HardGuideRect returns the soft-zone rectangle in normalized screen
// space, for visualization.
func (c *Composer) HardGuideRect() Rect { return c.composition.HardGuideRect() }

// TrackedPoint returns the point phase B aimed at last frame (the look-at
// position plus offset and lookahead), for visualization.
func (c *Composer) TrackedPoint() mgl64.Vec3 { return c.trackedPoint }

// MaxDampTime returns the larger of the two damping constants. The host
// may use it to size blend windows.
func (c *Composer) MaxDampTime() float64 { return c.Damping.Max() }

// ResolveTrackedPoint is phase A of the per-frame protocol: it applies
// the tracked-object offset and lookahead to the raw look-at position,
// stores the result for phase B and writes the offset (but not
// lookahead-shifted) point back as the camera state's reference look-at.
func (c *Composer) ResolveTrackedPoint(state *CameraState, in FrameInput) {
	if !c.IsValid(in.HasLookAt) {
		return
	}
	lookAt := in.LookAtPosition
	if !utils.VecAlmostZero(c.TrackedObjectOffset) {
		lookAt = lookAt.Add(in.LookAtRotation.Rotate(c.TrackedObjectOffset))
	}
	c.trackedPoint = lookAt

	if c.Lookahead.Enabled && c.Lookahead.Time > utils.Epsilon {
		dt := in.DeltaTime
		if in.TargetChanged || !in.PrevStateValid {
			// Continuity broken, force a predictor reset.
			dt = -1
		}
		c.predictor.Smoothing = c.Lookahead.Smoothing
		c.predictor.AddPosition(lookAt, dt, c.Lookahead.Time)
		delta := c.predictor.PredictPositionDelta(c.Lookahead.Time)
		if c.Lookahead.IgnoreY {
			delta = utils.ProjectOntoPlane(delta, state.ReferenceUp)
		}
		c.trackedPoint = lookAt.Add(delta)
	}

	state.ReferenceLookAt = lookAt
	state.HasLookAt = true
}

// ComposeOrientation is phase B of the per-frame protocol: it rotates the
// camera toward the tracked point resolved in phase A, applying damping,
// the vertical-flip clamp and the hard-bounds fallback, then commits the
// orientation and the frame history.
func (c *Composer) ComposeOrientation(state *CameraState, in FrameInput) {
	if !c.IsValid(in.HasLookAt) || !state.HasLookAt {
		return
	}

	camPos := state.Position
	trackedPoint := c.trackedPoint

	// Lookahead can push the tracked point behind the camera relative to
	// the real target; clamp it back onto the segment toward the target
	// so the camera never aims backwards.
	if !utils.VecAlmostZero(trackedPoint.Sub(state.ReferenceLookAt)) {
		mid := utils.LerpVec(camPos, state.ReferenceLookAt, 0.5)
		toLookAt := state.ReferenceLookAt.Sub(mid)
		toTracked := trackedPoint.Sub(mid)
		if toLookAt.Dot(toTracked) < 0 {
			t := toLookAt.Len() / state.ReferenceLookAt.Sub(trackedPoint).Len()
			trackedPoint = utils.LerpVec(state.ReferenceLookAt, trackedPoint, t)
		}
	}

	targetDistance := trackedPoint.Sub(camPos).Len()
	if targetDistance < utils.Epsilon {
		// Target at the camera position: no direction to aim along.
		// Hold the previous orientation when we have one.
		if in.DeltaTime >= 0 && in.PrevStateValid {
			state.Orientation = c.prevOrientation
		}
		return
	}

	c.cache.update(state.Lens, c.composition.SoftGuideRect(), c.composition.HardGuideRect(), targetDistance)

	rigOrientation := state.Orientation
	if in.DeltaTime < 0 || !in.PrevStateValid {
		// Hard reset: snap straight into the dead zone, no damping.
		rect := c.cache.fovSoftRect
		if c.CenterOnActivate {
			rect = rect.collapsedToCenter()
		}
		rigOrientation = c.rotateToBounds(state, rect, trackedPoint, rigOrientation, -1, in.PrevStateValid)
	} else {
		// Reconstruct the starting orientation from the previous frame's
		// look direction under the current up vector, then undo the
		// residual screen offset recorded last frame.
		fwd := mgl64.Vec3{0, 0, 1}
		dir := c.prevLookAt.Sub(c.prevCameraPos.Add(state.PositionDampingBypass))
		if utils.VecAlmostZero(dir) {
			rigOrientation = utils.LookRotation(c.prevOrientation.Rotate(fwd), state.ReferenceUp)
		} else {
			rigOrientation = utils.LookRotation(dir, state.ReferenceUp)
			rigOrientation = utils.ApplyCameraRotation(rigOrientation, c.prevScreenOffset.Mul(-1), state.ReferenceUp)
		}

		rigOrientation = c.rotateToBounds(state, c.cache.fovSoftRect, trackedPoint, rigOrientation, in.DeltaTime, in.PrevStateValid)

		// Once fully attached, force the true target back inside the hard
		// bounds with no damping, so it never escapes while lookahead or
		// damping lag the soft-zone motion.
		if in.Attachment > 1-utils.Epsilon {
			rigOrientation = c.rotateToBounds(state, c.cache.fovHardRect, state.ReferenceLookAt, rigOrientation, -1, in.PrevStateValid)
		}
	}

	c.prevCameraPos = camPos
	c.prevLookAt = trackedPoint
	c.prevOrientation = rigOrientation.Normalize()
	c.prevScreenOffset = utils.CameraRotationToTarget(c.prevOrientation, trackedPoint.Sub(camPos), state.ReferenceUp)
	state.Orientation = c.prevOrientation
}

// OnTargetWarped preserves continuity when the tracked target teleports
// by delta: the frame-history positions and the predictor shift with it,
// so the warp is never interpreted as motion.
func (c *Composer) OnTargetWarped(delta mgl64.Vec3) {
	c.prevCameraPos = c.prevCameraPos.Add(delta)
	c.prevLookAt = c.prevLookAt.Add(delta)
	c.trackedPoint = c.trackedPoint.Add(delta)
	c.predictor.ApplyTransformDelta(delta)
}

// ForcePose overwrites the frame-history camera position and orientation.
// Called when an external system snaps the camera.
func (c *Composer) ForcePose(pos mgl64.Vec3, orient mgl64.Quat) {
	c.prevCameraPos = pos
	c.prevOrientation = orient
}

// rotateToBounds rotates rigOrientation so that lookAtPoint falls inside
// the given angular rectangle, applying per-axis damping when a valid
// previous frame exists and deltaTime is non-negative.
func (c *Composer) rotateToBounds(state *CameraState, rect Rect, lookAtPoint mgl64.Vec3,
	rigOrientation mgl64.Quat, deltaTime float64, prevValid bool) mgl64.Quat {

	targetDir := lookAtPoint.Sub(state.Position)
	if utils.VecAlmostZero(targetDir) {
		return rigOrientation
	}
	rotToTarget := utils.CameraRotationToTarget(rigOrientation, targetDir, state.ReferenceUp)
	rect = clampVerticalBounds(rect, targetDir, state.ReferenceUp, c.cache.fov)

	// Per axis: inside the rectangle no correction is needed; outside,
	// correct by the overshoot past the nearest bound.
	pitch := boundCorrection(rotToTarget[0], (rect.YMin-0.5)*c.cache.fov, (rect.YMax-0.5)*c.cache.fov)
	yaw := boundCorrection(rotToTarget[1], (rect.XMin-0.5)*c.cache.fovH, (rect.XMax-0.5)*c.cache.fovH)

	if deltaTime >= 0 && prevValid {
		pitch = damp(pitch, c.Damping.Vertical, deltaTime)
		yaw = damp(yaw, c.Damping.Horizontal, deltaTime)
	}
	return utils.ApplyCameraRotation(rigOrientation, mgl64.Vec2{pitch, yaw}, state.ReferenceUp)
}

// boundCorrection returns the angular correction needed to bring rotation
// inside [min, max]: zero when already inside, the signed overshoot
// otherwise.
func boundCorrection(rotation, min, max float64) float64 {
	if rotation < min {
		return rotation - min
	}
	if rotation > max {
		return rotation - max
	}
	return 0
}

// clampVerticalBounds keeps the angular rectangle's vertical bounds
// reachable: when the target direction is within half a field of view
// (plus one degree of slack) of straight up or straight down, the bounds
// are clamped so the solve never requests a pitch that would carry the
// forward vector past the pole and flip the camera.
func clampVerticalBounds(rect Rect, dir, up mgl64.Vec3, fov float64) Rect {
	angle := utils.Angle(dir, up)
	halfFov := fov/2 + 1

	if angle < halfFov {
		// Nearly straight up: placing the target low on screen would
		// tilt the camera past the pole.
		minY := (halfFov - angle) / fov
		if rect.YMin < minY {
			rect.YMin = minY
			if rect.YMax < minY {
				rect.YMax = minY
			}
		}
	}
	if angle > 180-halfFov {
		// Nearly straight down, symmetric case.
		maxY := 1 - (angle-(180-halfFov))/fov
		if rect.YMax > maxY {
			rect.YMax = maxY
			if rect.YMin > maxY {
				rect.YMin = maxY
			}
		}
	}
	return rect
}
