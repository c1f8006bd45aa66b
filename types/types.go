package types

import "math/bits"

// FieldPrimeField0 is the only field the Stone prover is driven with here.
const FieldPrimeField0 = "PrimeField0"

type FriParameters struct {
	FriStepList          []uint32 `json:"fri_step_list"`
	LastLayerDegreeBound uint32   `json:"last_layer_degree_bound"`
	NQueries             uint32   `json:"n_queries"`
	ProofOfWorkBits      uint32   `json:"proof_of_work_bits"`
}

// TotalSteps is the sum of all FRI folding exponents.
func (p *FriParameters) TotalSteps() uint32 {
	var res uint32
	for _, s := range p.FriStepList {
		res += s
	}
	return res
}

func (p *FriParameters) MaxStep() uint32 {
	var res uint32
	for _, s := range p.FriStepList {
		if s > res {
			res = s
		}
	}
	return res
}

// LastLayerDegreeBoundLog is log2 of the last layer degree bound, which is
// always a power of two.
func (p *FriParameters) LastLayerDegreeBoundLog() uint32 {
	if p.LastLayerDegreeBound == 0 {
		return 0
	}
	return uint32(bits.Len32(p.LastLayerDegreeBound) - 1)
}

type StarkParameters struct {
	Fri        FriParameters `json:"fri"`
	LogNCosets int32         `json:"log_n_cosets"`
}

type ProverParameters struct {
	Field             string          `json:"field"`
	Stark             StarkParameters `json:"stark"`
	UseExtensionField bool            `json:"use_extension_field"`
}

type CachedLdeConfig struct {
	StoreFullLde  bool `json:"store_full_lde" yaml:"store_full_lde"`
	UseFftForEval bool `json:"use_fft_for_eval" yaml:"use_fft_for_eval"`
}

type ProverConfig struct {
	CachedLdeConfig              CachedLdeConfig `json:"cached_lde_config" yaml:"cached_lde_config"`
	ConstraintPolynomialTaskSize int32           `json:"constraint_polynomial_task_size" yaml:"constraint_polynomial_task_size"`
	NOutOfMemoryMerkleLayers     int32           `json:"n_out_of_memory_merkle_layers" yaml:"n_out_of_memory_merkle_layers"`
	TableProverNTasksPerSegment  int32           `json:"table_prover_n_tasks_per_segment" yaml:"table_prover_n_tasks_per_segment"`
}

func DefaultProverConfig() ProverConfig {
	return ProverConfig{
		CachedLdeConfig: CachedLdeConfig{
			StoreFullLde:  false,
			UseFftForEval: false,
		},
		ConstraintPolynomialTaskSize: 256,
		NOutOfMemoryMerkleLayers:     1,
		TableProverNTasksPerSegment:  32,
	}
}
