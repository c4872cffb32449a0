package aim

import (
	"math"

	"github.com/gonewx/vcam/pkg/utils"
)

// logNegligibleResidual = ln(0.01): after dampTime seconds, 99% of the
// initial amount has been applied.
const logNegligibleResidual = -4.605170185988091

// damp returns the portion of amount to apply this frame, given an
// exponential damping time constant and the elapsed time. The damped
// amount converges on the full amount as deltaTime grows, never
// overshooting it.
//
// Degenerate inputs are handled by policy: a negligible damp time or a
// negligible amount returns the full amount (nothing to damp), and a
// negligible time step returns zero (no time has passed).
func damp(amount, dampTime, deltaTime float64) float64 {
	if dampTime < utils.Epsilon || math.Abs(amount) < utils.Epsilon {
		return amount
	}
	if deltaTime < utils.Epsilon {
		return 0
	}
	return amount * (1 - math.Exp(logNegligibleResidual*deltaTime/dampTime))
}
