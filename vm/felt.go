package vm

import (
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// FeltBytes is the width of an encoded field element.
const FeltBytes = fp.Bytes

var ErrInvalidFelt = errors.New("invalid field element")

// Felt is an element of the Cairo field, which is the STARK curve base
// field (p = 2^251 + 17 * 2^192 + 1).
type Felt = fp.Element

// ParseFelt parses a 0x-prefixed hex or decimal string. Values outside
// [0, p) are rejected rather than reduced.
func ParseFelt(s string) (Felt, error) {
	var f Felt
	s = strings.TrimSpace(s)
	negative := strings.HasPrefix(s, "-")
	v, ok := new(big.Int).SetString(strings.TrimPrefix(s, "-"), 0)
	if !ok {
		return f, errors.Wrapf(ErrInvalidFelt, "%q", s)
	}
	if v.Cmp(fp.Modulus()) >= 0 {
		return f, errors.Wrapf(ErrInvalidFelt, "%q is not below the field prime", s)
	}
	f.SetBigInt(v)
	if negative {
		f.Neg(&f)
	}
	return f, nil
}

// FeltHex renders f as lowercase 0x-prefixed hex without leading zeros.
func FeltHex(f *Felt) string {
	return hexutil.EncodeBig(f.BigInt(new(big.Int)))
}

// FeltLE returns the canonical little-endian encoding of f.
func FeltLE(f *Felt) [FeltBytes]byte {
	b := f.Bytes()
	reverse(b[:])
	return b
}

// FeltFromLE decodes a canonical little-endian field element.
func FeltFromLE(b []byte) (Felt, error) {
	var f Felt
	if len(b) != FeltBytes {
		return f, errors.Wrapf(ErrInvalidFelt, "expected %d bytes, got %d", FeltBytes, len(b))
	}
	var be [FeltBytes]byte
	copy(be[:], b)
	reverse(be[:])
	v := new(big.Int).SetBytes(be[:])
	if v.Cmp(fp.Modulus()) >= 0 {
		return f, errors.Wrap(ErrInvalidFelt, "value is not below the field prime")
	}
	f.SetBigInt(v)
	return f, nil
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
