package vm

import (
	"encoding/binary"
	"sort"

	"github.com/pkg/errors"
)

const (
	// MemoryRecordSize is the size of one encoded memory cell: an 8-byte
	// address followed by a 32-byte value, both little-endian.
	MemoryRecordSize = 8 + FeltBytes
	// TraceRecordSize is the size of one encoded trace entry: ap, fp and pc
	// as 8-byte little-endian integers, in that order.
	TraceRecordSize = 3 * 8
)

var (
	ErrMalformedMemory = errors.New("malformed memory file")
	ErrMalformedTrace  = errors.New("malformed trace file")
)

type MemoryCell struct {
	Address uint64
	Value   Felt
}

// Memory is a relocated memory: populated cells only, in strictly ascending
// address order.
type Memory []MemoryCell

// NewMemory builds a Memory from an address to value mapping.
func NewMemory(cells map[uint64]Felt) Memory {
	memory := make(Memory, 0, len(cells))
	for address, value := range cells {
		memory = append(memory, MemoryCell{Address: address, Value: value})
	}
	sort.Slice(memory, func(i, j int) bool { return memory[i].Address < memory[j].Address })
	return memory
}

func (m Memory) Get(address uint64) (Felt, bool) {
	i := sort.Search(len(m), func(i int) bool { return m[i].Address >= address })
	if i < len(m) && m[i].Address == address {
		return m[i].Value, true
	}
	return Felt{}, false
}

// TraceEntry is one relocated register snapshot.
type TraceEntry struct {
	Pc uint64
	Ap uint64
	Fp uint64
}

// DecodeMemory parses a relocated memory file.
func DecodeMemory(data []byte) (Memory, error) {
	if len(data)%MemoryRecordSize != 0 {
		return nil, errors.Wrapf(ErrMalformedMemory, "size %d is not a multiple of %d", len(data), MemoryRecordSize)
	}

	memory := make(Memory, 0, len(data)/MemoryRecordSize)
	for offset := 0; offset < len(data); offset += MemoryRecordSize {
		address := binary.LittleEndian.Uint64(data[offset : offset+8])
		value, err := FeltFromLE(data[offset+8 : offset+MemoryRecordSize])
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedMemory, "address %d: %v", address, err)
		}
		if n := len(memory); n > 0 && memory[n-1].Address >= address {
			return nil, errors.Wrapf(ErrMalformedMemory, "address %d follows %d", address, memory[n-1].Address)
		}
		memory = append(memory, MemoryCell{Address: address, Value: value})
	}
	return memory, nil
}

// DecodeTrace parses a relocated trace file.
func DecodeTrace(data []byte) ([]TraceEntry, error) {
	if len(data)%TraceRecordSize != 0 {
		return nil, errors.Wrapf(ErrMalformedTrace, "size %d is not a multiple of %d", len(data), TraceRecordSize)
	}

	trace := make([]TraceEntry, 0, len(data)/TraceRecordSize)
	for offset := 0; offset < len(data); offset += TraceRecordSize {
		trace = append(trace, TraceEntry{
			Ap: binary.LittleEndian.Uint64(data[offset : offset+8]),
			Fp: binary.LittleEndian.Uint64(data[offset+8 : offset+16]),
			Pc: binary.LittleEndian.Uint64(data[offset+16 : offset+24]),
		})
	}
	return trace, nil
}
