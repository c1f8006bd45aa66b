package artifacts

import (
	"bufio"
	"encoding/binary"
	"io"
	"sort"

	"github.com/pkg/errors"
	"github.com/wormhole-foundation/stone-prover-sdk/vm"
)

var ErrDuplicateAddress = errors.New("duplicate memory address")

// WriteEncodedMemory writes every cell as an 8-byte little-endian address
// followed by the 32-byte little-endian value, in ascending address order.
func WriteEncodedMemory(w io.Writer, memory vm.Memory) error {
	if !sort.SliceIsSorted(memory, func(i, j int) bool { return memory[i].Address < memory[j].Address }) {
		sorted := make(vm.Memory, len(memory))
		copy(sorted, memory)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Address < sorted[j].Address })
		memory = sorted
	}

	bw := bufio.NewWriter(w)
	var record [vm.MemoryRecordSize]byte
	for i := range memory {
		if i > 0 && memory[i-1].Address == memory[i].Address {
			return errors.Wrapf(ErrDuplicateAddress, "%d", memory[i].Address)
		}
		binary.LittleEndian.PutUint64(record[:8], memory[i].Address)
		value := vm.FeltLE(&memory[i].Value)
		copy(record[8:], value[:])
		if _, err := bw.Write(record[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteEncodedTrace writes every entry as ap, fp and pc, each an 8-byte
// little-endian integer, in execution order.
func WriteEncodedTrace(w io.Writer, trace []vm.TraceEntry) error {
	bw := bufio.NewWriter(w)
	var record [vm.TraceRecordSize]byte
	for _, entry := range trace {
		binary.LittleEndian.PutUint64(record[0:8], entry.Ap)
		binary.LittleEndian.PutUint64(record[8:16], entry.Fp)
		binary.LittleEndian.PutUint64(record[16:24], entry.Pc)
		if _, err := bw.Write(record[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
