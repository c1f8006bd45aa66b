package types

import (
	"encoding/json"

	"github.com/pkg/errors"
)

var ErrUnknownLayout = errors.New("unknown layout")

// Layout names one of the machine configurations (builtin sets and ratios)
// known to both the VM and the prover.
type Layout int

const (
	LayoutPlain Layout = iota
	LayoutSmall
	LayoutDex
	LayoutRecursive
	LayoutStarknet
	LayoutRecursiveLargeOutput
	LayoutAllCairo
	LayoutAllSolidity
	LayoutStarknetWithKeccak
)

var layoutNames = [...]string{
	LayoutPlain:                "plain",
	LayoutSmall:                "small",
	LayoutDex:                  "dex",
	LayoutRecursive:            "recursive",
	LayoutStarknet:             "starknet",
	LayoutRecursiveLargeOutput: "recursive_large_output",
	LayoutAllCairo:             "all_cairo",
	LayoutAllSolidity:          "all_solidity",
	LayoutStarknetWithKeccak:   "starknet_with_keccak",
}

// Layouts lists every layout in declaration order.
func Layouts() []Layout {
	res := make([]Layout, len(layoutNames))
	for i := range layoutNames {
		res[i] = Layout(i)
	}
	return res
}

func ParseLayout(s string) (Layout, error) {
	for i, name := range layoutNames {
		if name == s {
			return Layout(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownLayout, "%q", s)
}

func (l Layout) valid() bool {
	return l >= 0 && int(l) < len(layoutNames)
}

func (l Layout) String() string {
	if !l.valid() {
		return "unknown"
	}
	return layoutNames[l]
}

func (l Layout) MarshalText() ([]byte, error) {
	if !l.valid() {
		return nil, errors.Wrapf(ErrUnknownLayout, "%d", int(l))
	}
	return []byte(layoutNames[l]), nil
}

func (l *Layout) UnmarshalText(text []byte) error {
	parsed, err := ParseLayout(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// A layout is always a JSON string, never its ordinal.
func (l Layout) MarshalJSON() ([]byte, error) {
	text, err := l.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

func (l *Layout) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "layout must be a string")
	}
	return l.UnmarshalText([]byte(s))
}
