package types

import (
	"github.com/pkg/errors"
)

var ErrUnknownVerifier = errors.New("unknown verifier")

// Verifier selects the parameter policy matching the program that will
// eventually check the proof.
type Verifier int

const (
	// VerifierStone is the Stone reference verifier (cpu_air_verifier).
	VerifierStone Verifier = iota
	// VerifierL1 is the on-chain Solidity verifier. It only accepts FRI steps
	// in {0, 1, 2} and requires the first step to be 0.
	VerifierL1
)

func ParseVerifier(s string) (Verifier, error) {
	switch s {
	case "stone":
		return VerifierStone, nil
	case "l1":
		return VerifierL1, nil
	}
	return 0, errors.Wrapf(ErrUnknownVerifier, "%q", s)
}

func (v Verifier) String() string {
	switch v {
	case VerifierStone:
		return "stone"
	case VerifierL1:
		return "l1"
	}
	return "unknown"
}

func (v Verifier) MarshalText() ([]byte, error) {
	switch v {
	case VerifierStone, VerifierL1:
		return []byte(v.String()), nil
	}
	return nil, errors.Wrapf(ErrUnknownVerifier, "%d", int(v))
}

func (v *Verifier) UnmarshalText(text []byte) error {
	parsed, err := ParseVerifier(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
