package artifacts

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/wormhole-foundation/stone-prover-sdk/vm"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteEncodedMemoryLayout(t *testing.T) {
	var buf bytes.Buffer
	err := WriteEncodedMemory(&buf, vm.Memory{
		{Address: 1, Value: felt(t, "0x40780017fff7fff")},
		{Address: 258, Value: felt(t, "-1")},
	})
	require.NoError(t, err)

	out := buf.Bytes()
	require.Len(t, out, 2*vm.MemoryRecordSize)

	require.Equal(t, uint64(1), binary.LittleEndian.Uint64(out[0:8]))
	require.Equal(t, uint64(0x40780017fff7fff), binary.LittleEndian.Uint64(out[8:16]))
	require.Equal(t, make([]byte, 24), out[16:40])

	second := out[vm.MemoryRecordSize:]
	require.Equal(t, []byte{0x02, 0x01, 0, 0, 0, 0, 0, 0}, second[:8])
	// p - 1 = 0x0800000000000011 << 192, little-endian.
	expected := make([]byte, 32)
	expected[24] = 0x11
	expected[31] = 0x08
	require.Equal(t, expected, second[8:40])
}

func TestWriteEncodedMemorySortsInput(t *testing.T) {
	memory := vm.Memory{
		{Address: 9, Value: felt(t, "0x9")},
		{Address: 3, Value: felt(t, "0x3")},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteEncodedMemory(&buf, memory))

	decoded, err := vm.DecodeMemory(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, uint64(3), decoded[0].Address)
	require.Equal(t, uint64(9), decoded[1].Address)
	// The caller's slice is left alone.
	require.Equal(t, uint64(9), memory[0].Address)
}

func TestMemoryDecodeEncodeIdentity(t *testing.T) {
	var data []byte
	for _, address := range []uint64{1, 2, 3, 7, 1 << 40} {
		record := make([]byte, vm.MemoryRecordSize)
		binary.LittleEndian.PutUint64(record[:8], address)
		binary.LittleEndian.PutUint64(record[8:16], address*31+5)
		record[30] = byte(address)
		data = append(data, record...)
	}

	memory, err := vm.DecodeMemory(data)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteEncodedMemory(&buf, memory))
	require.Equal(t, data, buf.Bytes())
}

func TestTraceDecodeEncodeIdentity(t *testing.T) {
	trace := []vm.TraceEntry{
		{Pc: 1, Ap: 38, Fp: 38},
		{Pc: 3, Ap: 39, Fp: 38},
		{Pc: 5, Ap: 41, Fp: 41},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteEncodedTrace(&buf, trace))

	out := buf.Bytes()
	require.Equal(t, uint64(38), binary.LittleEndian.Uint64(out[0:8]))
	require.Equal(t, uint64(38), binary.LittleEndian.Uint64(out[8:16]))
	require.Equal(t, uint64(1), binary.LittleEndian.Uint64(out[16:24]))

	decoded, err := vm.DecodeTrace(out)
	require.NoError(t, err)
	require.Equal(t, trace, decoded)

	var again bytes.Buffer
	require.NoError(t, WriteEncodedTrace(&again, decoded))
	require.Equal(t, out, again.Bytes())
}

func TestWriteEncodedFailures(t *testing.T) {
	err := WriteEncodedMemory(failingWriter{}, vm.Memory{{Address: 1}})
	require.EqualError(t, err, "disk full")

	err = WriteEncodedTrace(failingWriter{}, []vm.TraceEntry{{Pc: 1}})
	require.EqualError(t, err, "disk full")
}
