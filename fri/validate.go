package fri

import (
	"github.com/pkg/errors"
	"github.com/wormhole-foundation/stone-prover-sdk/types"
)

var ErrInvalidFriParameters = errors.New("invalid fri parameters")

// ValidateFriParameters is a sanity check of params against the program
// size and the verifier that will check the proof. It catches parameter files
// written by hand or for a different execution before the prover rejects
// them.
func ValidateFriParameters(params *types.FriParameters, nbSteps uint32, verifier types.Verifier) error {
	if nbSteps == 0 {
		return errors.Wrap(ErrInvalidFriParameters, "n_steps must be at least 1")
	}
	bound := params.LastLayerDegreeBound
	if bound == 0 || bound&(bound-1) != 0 {
		return errors.Wrapf(ErrInvalidFriParameters, "last_layer_degree_bound %d is not a power of two", bound)
	}
	if params.NQueries == 0 {
		return errors.Wrap(ErrInvalidFriParameters, "n_queries must be positive")
	}

	nbStepsLog := CeilLog2(nbSteps)
	boundLog := params.LastLayerDegreeBoundLog()
	total := params.TotalSteps()
	switch {
	case nbStepsLog+4 <= boundLog:
		if total != 0 {
			return errors.Wrapf(ErrInvalidFriParameters, "%d steps fit in the last layer, fri_step_list %v must not fold", nbSteps, params.FriStepList)
		}
	case total+boundLog != nbStepsLog+4:
		return errors.Wrapf(ErrInvalidFriParameters, "log2(n_steps) + 4 = %d, but sum(fri_step_list) + log2(last_layer_degree_bound) = %d",
			nbStepsLog+4, total+boundLog)
	}

	if verifier == types.VerifierL1 {
		if len(params.FriStepList) == 0 || params.FriStepList[0] != 0 {
			return errors.Wrapf(ErrInvalidFriParameters, "l1 verifier needs a leading 0 step, got %v", params.FriStepList)
		}
		for i, step := range params.FriStepList[1:] {
			if step != 1 && step != 2 {
				return errors.Wrapf(ErrInvalidFriParameters, "l1 verifier accepts steps of 1 or 2, got %d at %d", step, i+1)
			}
		}
	}
	return nil
}
