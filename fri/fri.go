package fri

import (
	"math/bits"

	"github.com/wormhole-foundation/stone-prover-sdk/types"
)

const (
	DefaultLastLayerDegreeBound uint32 = 64
	DefaultNQueries             uint32 = 18
	DefaultProofOfWorkBits      uint32 = 24
	DefaultLogNCosets           int32  = 4
)

// CeilLog2 returns the smallest n such that 2^n >= x. x must be at least 1.
func CeilLog2(x uint32) uint32 {
	log := uint32(bits.Len32(x) - 1)
	if x&(x-1) != 0 {
		log++
	}
	return log
}

// computeFriSteps splits the folding budget into steps of at most maxStep.
//
// The Stone prover requires
//
//	log2(#steps) + 4 = log2(last_layer_degree_bound) + sum(fri_step_list)
//
// so the steps must add up to nbStepsLog + 4 - lastLayerDegreeBoundLog.
// Traces too short to reach the last layer get no folding steps at all.
func computeFriSteps(nbStepsLog, lastLayerDegreeBoundLog, maxStep uint32) []uint32 {
	if nbStepsLog+4 <= lastLayerDegreeBoundLog {
		return []uint32{}
	}
	sum := nbStepsLog + 4 - lastLayerDegreeBoundLog
	quotient := sum / maxStep
	remainder := sum % maxStep

	steps := make([]uint32, 0, quotient+1)
	for i := uint32(0); i < quotient; i++ {
		steps = append(steps, maxStep)
	}
	if remainder > 0 {
		steps = append(steps, remainder)
	}
	return steps
}

// Computer derives FRI parameters from the number of steps of a program.
type Computer interface {
	ComputeFriParameters(nbSteps uint32) types.FriParameters
}

// DefaultComputer targets the Stone verifier.
type DefaultComputer struct{}

func (DefaultComputer) ComputeFriParameters(nbSteps uint32) types.FriParameters {
	lastLayerDegreeBound := DefaultLastLayerDegreeBound
	maxStep := uint32(4)

	steps := computeFriSteps(CeilLog2(nbSteps), CeilLog2(lastLayerDegreeBound), maxStep)

	return types.FriParameters{
		FriStepList:          steps,
		LastLayerDegreeBound: lastLayerDegreeBound,
		NQueries:             DefaultNQueries,
		ProofOfWorkBits:      DefaultProofOfWorkBits,
	}
}

// L1VerifierComputer targets the Solidity verifier, which accepts FRI steps
// in {0, 1, 2} only and requires the first one to be 0.
type L1VerifierComputer struct{}

func (L1VerifierComputer) ComputeFriParameters(nbSteps uint32) types.FriParameters {
	maxStep := uint32(2)
	nbStepsLog := CeilLog2(nbSteps)

	// The last step cannot be 1: log2(#steps) - log2(last_layer_degree_bound)
	// has to be even, so drop the bound by one power of two when it is not.
	lastLayerDegreeBound := DefaultLastLayerDegreeBound
	lastLayerDegreeBoundLog := CeilLog2(lastLayerDegreeBound)
	if (nbStepsLog-lastLayerDegreeBoundLog)%2 != 0 {
		lastLayerDegreeBound /= 2
		lastLayerDegreeBoundLog--
	}

	steps := append([]uint32{0}, computeFriSteps(nbStepsLog, lastLayerDegreeBoundLog, maxStep)...)

	return types.FriParameters{
		FriStepList:          steps,
		LastLayerDegreeBound: lastLayerDegreeBound,
		NQueries:             DefaultNQueries,
		ProofOfWorkBits:      DefaultProofOfWorkBits,
	}
}

// ComputerFor returns the FRI policy for the given verifier.
func ComputerFor(verifier types.Verifier) Computer {
	if verifier == types.VerifierL1 {
		return L1VerifierComputer{}
	}
	return DefaultComputer{}
}

// GenerateProverParameters builds the prover parameter file contents for a
// program of nbSteps steps. nbSteps must be at least 1.
func GenerateProverParameters(nbSteps uint32, verifier types.Verifier) types.ProverParameters {
	return types.ProverParameters{
		Field: types.FieldPrimeField0,
		Stark: types.StarkParameters{
			Fri:        ComputerFor(verifier).ComputeFriParameters(nbSteps),
			LogNCosets: DefaultLogNCosets,
		},
		UseExtensionField: false,
	}
}
