package aim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/vcam/pkg/utils"
)

// Predictor maintains an exponentially smoothed estimate of the target
// velocity from discrete position samples, and extrapolates a future
// position delta from it. It is the state behind the lookahead feature.
//
// The zero value is ready to use; before any valid sample the predicted
// delta is zero.
type Predictor struct {
	// Smoothing is the velocity smoothing time constant in seconds.
	// Smaller values react faster to velocity changes.
	Smoothing float64

	velocity mgl64.Vec3
	lastPos  mgl64.Vec3
	havePos  bool
	elapsed  float64
}

// Reset clears the velocity estimate and anchors the predictor at pos.
func (p *Predictor) Reset(pos mgl64.Vec3) {
	p.velocity = mgl64.Vec3{}
	p.lastPos = pos
	p.havePos = true
	p.elapsed = 0
}

// AddPosition feeds one observed target position into the velocity
// estimate.
//
// A negative deltaTime is the discontinuity signal: the predictor resets
// to pos with zero velocity. A deltaTime larger than maxLookaheadTime
// (when positive) is treated the same way, since a velocity estimated
// across such a gap would be meaningless for prediction.
//
// Otherwise the instantaneous velocity (pos - lastPos) / deltaTime is
// blended into the smoothed velocity with weight
// deltaTime / max(deltaTime, Smoothing), so smaller smoothing constants
// react faster.
func (p *Predictor) AddPosition(pos mgl64.Vec3, deltaTime, maxLookaheadTime float64) {
	if deltaTime < 0 || (maxLookaheadTime > 0 && deltaTime > maxLookaheadTime) {
		p.Reset(pos)
		return
	}
	if p.havePos && deltaTime > utils.Epsilon {
		vel := pos.Sub(p.lastPos).Mul(1 / deltaTime)
		weight := deltaTime / math.Max(deltaTime, p.Smoothing)
		p.velocity = utils.LerpVec(p.velocity, vel, weight)
	}
	p.lastPos = pos
	p.havePos = true
	p.elapsed += deltaTime
}

// PredictPositionDelta returns the estimated displacement of the target
// over the given future horizon in seconds. It has no side effects.
func (p *Predictor) PredictPositionDelta(horizon float64) mgl64.Vec3 {
	return p.velocity.Mul(horizon)
}

// ApplyTransformDelta shifts the remembered position by delta without
// treating the shift as motion. Called when the tracked target is
// teleported, to avoid a velocity spike; the caller must shift its own
// frame-history positions by the same delta.
func (p *Predictor) ApplyTransformDelta(delta mgl64.Vec3) {
	p.lastPos = p.lastPos.Add(delta)
}
