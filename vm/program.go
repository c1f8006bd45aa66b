package vm

import (
	"encoding/json"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/pkg/errors"
)

var (
	ErrInvalidPrime       = errors.New("program prime does not match the Cairo field")
	ErrMissingEntrypoint  = errors.New("entrypoint not found")
	ErrUnknownBuiltin     = errors.New("unknown builtin")
	ErrInvalidProgramJSON = errors.New("invalid program json")
)

// maxAliasDepth bounds alias resolution so that cyclic aliases fail instead
// of looping.
const maxAliasDepth = 32

var knownBuiltins = map[string]struct{}{
	"output":        {},
	"pedersen":      {},
	"range_check":   {},
	"ecdsa":         {},
	"bitwise":       {},
	"ec_op":         {},
	"keccak":        {},
	"poseidon":      {},
	"range_check96": {},
	"add_mod":       {},
	"mul_mod":       {},
}

type Identifier struct {
	Type        string          `json:"type"`
	Pc          *uint64         `json:"pc,omitempty"`
	Destination string          `json:"destination,omitempty"`
	Value       json.RawMessage `json:"value,omitempty"`
	Decorators  []string        `json:"decorators,omitempty"`
}

type programJSON struct {
	Prime           string                     `json:"prime"`
	Data            []string                   `json:"data"`
	Builtins        []string                   `json:"builtins"`
	Hints           map[string]json.RawMessage `json:"hints"`
	Identifiers     map[string]Identifier      `json:"identifiers"`
	MainScope       string                     `json:"main_scope"`
	CompilerVersion string                     `json:"compiler_version"`
}

// Program is a compiled Cairo program ready to be run.
type Program struct {
	Data            []Felt
	Builtins        []string
	Hints           map[string]json.RawMessage
	Identifiers     map[string]Identifier
	MainScope       string
	CompilerVersion string
	Entrypoint      string
	// Main is the pc of the entrypoint.
	Main uint64

	raw []byte
}

// Raw returns the compiled program exactly as it was loaded.
func (p *Program) Raw() []byte {
	return p.raw
}

// ParseProgram loads a compiled program and resolves entrypoint in its main
// scope.
func ParseProgram(raw []byte, entrypoint string) (*Program, error) {
	var parsed programJSON
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, errors.Wrap(ErrInvalidProgramJSON, err.Error())
	}

	prime, ok := new(big.Int).SetString(parsed.Prime, 0)
	if !ok || prime.Cmp(fp.Modulus()) != 0 {
		return nil, errors.Wrapf(ErrInvalidPrime, "got %q", parsed.Prime)
	}

	data := make([]Felt, len(parsed.Data))
	for i, word := range parsed.Data {
		felt, err := ParseFelt(word)
		if err != nil {
			return nil, errors.Wrapf(err, "data[%d]", i)
		}
		data[i] = felt
	}

	for _, builtin := range parsed.Builtins {
		if _, ok := knownBuiltins[builtin]; !ok {
			return nil, errors.Wrapf(ErrUnknownBuiltin, "%q", builtin)
		}
	}

	mainScope := parsed.MainScope
	if mainScope == "" {
		mainScope = "__main__"
	}

	program := &Program{
		Data:            data,
		Builtins:        parsed.Builtins,
		Hints:           parsed.Hints,
		Identifiers:     parsed.Identifiers,
		MainScope:       mainScope,
		CompilerVersion: parsed.CompilerVersion,
		Entrypoint:      entrypoint,
		raw:             raw,
	}

	pc, err := program.resolveFunction(mainScope + "." + entrypoint)
	if err != nil {
		return nil, err
	}
	if pc >= uint64(len(data)) {
		return nil, errors.Wrapf(ErrMissingEntrypoint, "%s: pc %d is outside the program", entrypoint, pc)
	}
	program.Main = pc

	return program, nil
}

func (p *Program) resolveFunction(name string) (uint64, error) {
	current := name
	for depth := 0; depth < maxAliasDepth; depth++ {
		identifier, ok := p.Identifiers[current]
		if !ok {
			return 0, errors.Wrapf(ErrMissingEntrypoint, "%s", current)
		}
		switch identifier.Type {
		case "alias":
			current = identifier.Destination
		case "function":
			if identifier.Pc == nil {
				return 0, errors.Wrapf(ErrMissingEntrypoint, "%s has no pc", current)
			}
			return *identifier.Pc, nil
		default:
			return 0, errors.Wrapf(ErrMissingEntrypoint, "%s is a %s, not a function", current, identifier.Type)
		}
	}
	return 0, errors.Wrapf(ErrMissingEntrypoint, "%s: alias chain too long", name)
}
