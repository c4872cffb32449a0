package aim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/vcam/pkg/utils"
)

// Near/far planes for the inverse projection used by screenToFOV. The
// values only affect numerical conditioning, not the resulting angles.
const (
	fovRectNear = 0.0001
	fovRectFar  = 2.0

	// Mid-range NDC depth at which edge points are unprojected.
	fovRectDepth = 0.1
)

// screenToFOV converts a rectangle in normalized screen coordinates into
// a rectangle in angular field-of-view coordinates, accounting for the
// lens perspective distortion.
//
// For each edge of the rectangle, a point at the corresponding normalized
// device coordinate (0 on the other axis, mid depth) is unprojected
// through the inverse perspective matrix, and the signed angle between
// the forward axis and the unprojected direction is expressed as a
// fraction of the relevant field of view: (fov/2 + angle) / fov. The
// result compares directly against angular pitch/yaw offsets.
//
// fov is the vertical and fovH the horizontal field of view, in degrees.
func screenToFOV(screen Rect, fov, fovH, aspect float64) Rect {
	inv := mgl64.Perspective(utils.DegToRad(fov), aspect, fovRectNear, fovRectFar).Inv()

	edgeAngle := func(ndcX, ndcY float64, axis mgl64.Vec3) float64 {
		v := inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, fovRectDepth, 1})
		p := mgl64.Vec3{v.X() / v.W(), v.Y() / v.W(), v.Z() / v.W()}
		// GL view space looks down -Z; flip into the forward +Z convention.
		p[2] = -p[2]
		return utils.SignedAngle(mgl64.Vec3{0, 0, 1}, p, axis)
	}

	left := mgl64.Vec3{-1, 0, 0}
	up := mgl64.Vec3{0, 1, 0}

	var r Rect
	r.YMin = (fov/2 + edgeAngle(0, screen.YMin*2-1, left)) / fov
	r.YMax = (fov/2 + edgeAngle(0, screen.YMax*2-1, left)) / fov
	r.XMin = (fovH/2 + edgeAngle(screen.XMin*2-1, 0, up)) / fovH
	r.XMax = (fovH/2 + edgeAngle(screen.XMax*2-1, 0, up)) / fovH
	return r
}
