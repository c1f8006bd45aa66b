package types

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

// Proof is the bundle written by the prover and read by verifiers.
type Proof struct {
	PrivateInput    AirPrivateInputSerializable `json:"private_input"`
	ProofHex        string                      `json:"proof_hex"`
	ProofParameters ProverParameters            `json:"proof_parameters"`
	ProverConfig    ProverConfig                `json:"prover_config"`
	PublicInput     PublicInput                 `json:"public_input"`
	SplitProofs     json.RawMessage             `json:"split_proofs,omitempty"`
}

// ProofBytes decodes ProofHex. The 0x prefix is optional.
func (p *Proof) ProofBytes() []byte {
	return common.FromHex(p.ProofHex)
}

// ProofAnnotations points at the files produced by running the verifier with
// --annotation_file and --extra_output_file.
type ProofAnnotations struct {
	AnnotationFile  string `json:"annotation_file"`
	ExtraOutputFile string `json:"extra_output_file"`
}
