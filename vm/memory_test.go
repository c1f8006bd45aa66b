package vm

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func memoryRecord(address uint64, value uint64) []byte {
	record := make([]byte, MemoryRecordSize)
	binary.LittleEndian.PutUint64(record[:8], address)
	binary.LittleEndian.PutUint64(record[8:16], value)
	return record
}

func traceRecord(ap, fp, pc uint64) []byte {
	record := make([]byte, TraceRecordSize)
	binary.LittleEndian.PutUint64(record[0:8], ap)
	binary.LittleEndian.PutUint64(record[8:16], fp)
	binary.LittleEndian.PutUint64(record[16:24], pc)
	return record
}

func TestDecodeMemory(t *testing.T) {
	var data []byte
	data = append(data, memoryRecord(1, 0x40780017fff7fff)...)
	data = append(data, memoryRecord(2, 7)...)
	data = append(data, memoryRecord(10, 0)...)

	memory, err := DecodeMemory(data)
	require.NoError(t, err)
	require.Len(t, memory, 3)
	require.Equal(t, uint64(10), memory[2].Address)

	value, ok := memory.Get(2)
	require.True(t, ok)
	require.Equal(t, "0x7", FeltHex(&value))

	_, ok = memory.Get(3)
	require.False(t, ok)
}

func TestDecodeMemoryRejectsMalformedInput(t *testing.T) {
	_, err := DecodeMemory(make([]byte, MemoryRecordSize+1))
	require.ErrorIs(t, err, ErrMalformedMemory)

	var unordered []byte
	unordered = append(unordered, memoryRecord(5, 1)...)
	unordered = append(unordered, memoryRecord(5, 2)...)
	_, err = DecodeMemory(unordered)
	require.ErrorIs(t, err, ErrMalformedMemory)
}

func TestNewMemorySortsByAddress(t *testing.T) {
	var a, b Felt
	a.SetUint64(1)
	b.SetUint64(2)

	memory := NewMemory(map[uint64]Felt{9: b, 3: a})
	require.Equal(t, uint64(3), memory[0].Address)
	require.Equal(t, uint64(9), memory[1].Address)
}

func TestDecodeTrace(t *testing.T) {
	var data []byte
	data = append(data, traceRecord(100, 100, 1)...)
	data = append(data, traceRecord(102, 100, 3)...)

	trace, err := DecodeTrace(data)
	require.NoError(t, err)
	require.Equal(t, []TraceEntry{
		{Pc: 1, Ap: 100, Fp: 100},
		{Pc: 3, Ap: 102, Fp: 100},
	}, trace)

	_, err = DecodeTrace(data[:len(data)-1])
	require.ErrorIs(t, err, ErrMalformedTrace)
}
