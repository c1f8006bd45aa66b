package prover

import (
	"context"

	"github.com/wormhole-foundation/stone-prover-sdk/command"
	"github.com/wormhole-foundation/stone-prover-sdk/types"
)

// Verifier drives the Stone verifier executable.
type Verifier struct {
	// Binary defaults to DefaultVerifierBinary.
	Binary string
}

func (v *Verifier) binary() string {
	if v.Binary == "" {
		return DefaultVerifierBinary
	}
	return v.Binary
}

func verifierArgs(inFile, annotationFile, extraOutputFile string) []string {
	args := []string{"--in_file", inFile}
	if annotationFile != "" {
		args = append(args, "--annotation_file", annotationFile)
	}
	if extraOutputFile != "" {
		args = append(args, "--extra_output_file", extraOutputFile)
	}
	return args
}

// Verify checks the proof in inFile. A rejected proof is a *command.Error.
func (v *Verifier) Verify(ctx context.Context, inFile string) error {
	_, err := command.Run(ctx, v.binary(), verifierArgs(inFile, "", "")...)
	return err
}

// VerifyWithAnnotations checks the proof in inFile and has the verifier write
// the annotations needed to split the proof for on-chain verification.
func (v *Verifier) VerifyWithAnnotations(ctx context.Context, inFile, annotationFile, extraOutputFile string) (types.ProofAnnotations, error) {
	if _, err := command.Run(ctx, v.binary(), verifierArgs(inFile, annotationFile, extraOutputFile)...); err != nil {
		return types.ProofAnnotations{}, err
	}
	return types.ProofAnnotations{
		AnnotationFile:  annotationFile,
		ExtraOutputFile: extraOutputFile,
	}, nil
}
