package aim

import (
	"math"

	"github.com/gonewx/vcam/pkg/utils"
)

// fovCache memoizes the angular conversion of the soft/hard guide
// rectangles, keyed on the lens state, to avoid recomputing the
// trigonometric conversion every frame when nothing has changed.
//
// The cache is valid only while the aspect ratio, the projection mode,
// both source rectangles and - for orthographic lenses - the
// ortho-size/distance ratio (within 1% relative tolerance) are unchanged;
// any mismatch forces a full recomputation.
type fovCache struct {
	aspect         float64
	lensFov        float64
	orthographic   bool
	orthoOverDist  float64
	screenSoftRect Rect
	screenHardRect Rect

	// Derived values, valid once fov > 0.
	fov         float64 // vertical field of view, degrees
	fovH        float64 // horizontal field of view, degrees
	fovSoftRect Rect
	fovHardRect Rect
}

// stale reports whether the cached angular rectangles no longer match the
// given inputs.
func (c *fovCache) stale(lens LensState, softRect, hardRect Rect, targetDistance float64) bool {
	if c.fov <= 0 {
		return true
	}
	if lens.Aspect != c.aspect || softRect != c.screenSoftRect || hardRect != c.screenHardRect {
		return true
	}
	if lens.Orthographic != c.orthographic {
		return true
	}
	if lens.Orthographic {
		ratio := orthoRatio(lens, targetDistance)
		if c.orthoOverDist <= 0 {
			return true
		}
		return math.Abs(ratio-c.orthoOverDist)/c.orthoOverDist > 0.01
	}
	return lens.FieldOfView != c.lensFov
}

// update lazily recomputes the angular rectangles and field-of-view
// values when the cache is stale, then records the inputs it was computed
// from.
func (c *fovCache) update(lens LensState, softRect, hardRect Rect, targetDistance float64) {
	if !c.stale(lens, softRect, hardRect, targetDistance) {
		return
	}
	if lens.Orthographic {
		// Orthographic lenses have no field of view; derive a fake one
		// from the apparent angular size of the view volume at the
		// target distance.
		c.orthoOverDist = orthoRatio(lens, targetDistance)
		c.fov = 2 * utils.RadToDeg(math.Atan(c.orthoOverDist))
	} else {
		c.orthoOverDist = 0
		c.fov = lens.FieldOfView
	}
	c.lensFov = lens.FieldOfView
	c.orthographic = lens.Orthographic
	c.aspect = lens.Aspect
	c.fovH = 2 * utils.RadToDeg(math.Atan(math.Tan(utils.DegToRad(c.fov)/2)*lens.Aspect))
	c.screenSoftRect = softRect
	c.screenHardRect = hardRect
	c.fovSoftRect = screenToFOV(softRect, c.fov, c.fovH, lens.Aspect)
	c.fovHardRect = screenToFOV(hardRect, c.fov, c.fovH, lens.Aspect)
}

// orthoRatio returns the ortho-size over target-distance ratio, with the
// distance floored to avoid division blowup at point-blank range.
func orthoRatio(lens LensState, targetDistance float64) float64 {
	return lens.OrthoSize / math.Max(0.01, targetDistance)
}
