// Package aim implements the procedural camera-aiming algorithm: given a
// target point in world space and a set of screen-space composition rules,
// it computes the camera orientation (pan/tilt) each frame so that the
// target appears within a configured on-screen region, with exponential
// damping and predictive lookahead.
//
// Conventions used throughout the package:
//   - Right-handed coordinates, forward +Z, up +Y.
//   - Screen rectangles are in normalized [0,1]x[0,1] coordinates with the
//     origin at the bottom-left, so (0.5, 0.5) is the screen center.
//   - Angular rectangles express the same bounds as fractions of the
//     vertical/horizontal field of view, 0.5 being the optical axis.
//   - Angles are in degrees.
package aim

import "github.com/go-gl/mathgl/mgl64"

// LensState is an immutable per-frame snapshot of the lens parameters,
// supplied by the caller.
type LensState struct {
	// FieldOfView is the vertical field of view in degrees.
	// Ignored when Orthographic is set.
	FieldOfView float64

	// OrthoSize is the half-height of the view volume in world units.
	// Only meaningful when Orthographic is set.
	OrthoSize float64

	// Aspect is the viewport aspect ratio (width / height).
	Aspect float64

	// Orthographic selects orthographic projection instead of perspective.
	Orthographic bool
}

// CameraState holds the camera fields the composer reads and writes.
// It is owned by the surrounding camera pipeline; the composer receives
// a mutable reference per call and mutates only Orientation, ReferenceLookAt
// and HasLookAt.
type CameraState struct {
	// Position is the camera world position for this frame (read-only
	// as far as the composer is concerned).
	Position mgl64.Vec3

	// Orientation is the camera rotation. Read as the starting orientation,
	// overwritten with the composed result.
	Orientation mgl64.Quat

	// ReferenceUp is the world up vector used for pitch/yaw decomposition
	// and the vertical-flip clamp.
	ReferenceUp mgl64.Vec3

	// ReferenceLookAt is the resolved look-at point. Written during the
	// target-resolution phase; during the orientation phase it is the
	// true (non-lookahead) target the hard bounds are enforced against.
	ReferenceLookAt mgl64.Vec3

	// HasLookAt reports whether ReferenceLookAt holds a valid point.
	HasLookAt bool

	// PositionDampingBypass is the position delta the position pipeline
	// applied this frame without damping (e.g. platform-following).
	// The composer adds it to the previous frame's camera position when
	// reconstructing the starting look direction.
	PositionDampingBypass mgl64.Vec3

	// Lens is the lens snapshot for this frame.
	Lens LensState
}

// FrameInput carries the per-frame host signals into the composer.
// A negative DeltaTime is the explicit "no damping / hard reset" signal,
// not an error.
type FrameInput struct {
	// DeltaTime is the elapsed time in seconds, or a negative value to
	// request an undamped snap.
	DeltaTime float64

	// LookAtPosition is the raw look-at target world position.
	LookAtPosition mgl64.Vec3

	// LookAtRotation is the target's world rotation, used to rotate the
	// configured tracked-object offset into world space.
	LookAtRotation mgl64.Quat

	// HasLookAt reports whether a look-at target is assigned this frame.
	HasLookAt bool

	// TargetChanged signals that the look-at target identity changed
	// since the previous frame; it forces a predictor reset.
	TargetChanged bool

	// PrevStateValid reports whether the previous frame's state is
	// meaningful. When false the composer snaps without damping.
	PrevStateValid bool

	// Attachment is the blend progress into this camera in [0,1].
	// Hard-bounds forcing only applies when attachment is effectively
	// complete (>= 1 - epsilon).
	Attachment float64
}

// Rect is an axis-aligned rectangle, used both for normalized screen
// rectangles and for angular field-of-view rectangles.
type Rect struct {
	XMin, YMin float64
	XMax, YMax float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.XMax - r.XMin }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.YMax - r.YMin }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return (r.XMin + r.XMax) / 2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return (r.YMin + r.YMax) / 2 }

// collapsedToCenter returns a zero-size rectangle at the center of r.
func (r Rect) collapsedToCenter() Rect {
	cx, cy := r.CenterX(), r.CenterY()
	return Rect{XMin: cx, YMin: cy, XMax: cx, YMax: cy}
}
