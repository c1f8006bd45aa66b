package vm

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"math/big"
	"path"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/pkg/errors"
)

const (
	pieMetadataFile           = "metadata.json"
	pieMemoryFile             = "memory.bin"
	pieAdditionalDataFile     = "additional_data.json"
	pieExecutionResourcesFile = "execution_resources.json"
	pieVersionFile            = "version.json"

	// Relocatable values are tagged by their top bit, followed by 16 bits
	// of segment index; the remaining bits hold the offset.
	segmentBits    = 16
	addressBits    = 8 * 8
	addressOffBits = addressBits - 1 - segmentBits
	valueBits      = 8 * FeltBytes
	valueOffBits   = valueBits - 1 - segmentBits
)

var (
	ErrInvalidPie      = errors.New("invalid cairo pie")
	ErrMissingPieEntry = errors.New("cairo pie entry missing")
)

// Relocatable is an address inside a memory segment.
type Relocatable struct {
	Segment uint16
	Offset  uint64
}

// MaybeRelocatable is either a felt or a relocatable value.
type MaybeRelocatable struct {
	Relocatable *Relocatable
	Felt        Felt
}

func (m MaybeRelocatable) IsRelocatable() bool {
	return m.Relocatable != nil
}

type PieMemoryEntry struct {
	Address Relocatable
	Value   MaybeRelocatable
}

type SegmentInfo struct {
	Index int    `json:"index"`
	Size  uint64 `json:"size"`
}

type StrippedProgram struct {
	Prime    string   `json:"prime"`
	Data     []string `json:"data"`
	Builtins []string `json:"builtins"`
	Main     uint64   `json:"main"`
}

type PieMetadata struct {
	Program          StrippedProgram        `json:"program"`
	ProgramSegment   SegmentInfo            `json:"program_segment"`
	ExecutionSegment SegmentInfo            `json:"execution_segment"`
	RetFpSegment     SegmentInfo            `json:"ret_fp_segment"`
	RetPcSegment     SegmentInfo            `json:"ret_pc_segment"`
	BuiltinSegments  map[string]SegmentInfo `json:"builtin_segments"`
	ExtraSegments    []SegmentInfo          `json:"extra_segments"`
}

type ExecutionResources struct {
	NSteps                 uint64            `json:"n_steps"`
	NMemoryHoles           uint64            `json:"n_memory_holes"`
	BuiltinInstanceCounter map[string]uint64 `json:"builtin_instance_counter"`
}

type PieVersion struct {
	CairoPie string `json:"cairo_pie"`
}

// CairoPie is a position independent execution snapshot of a finished run.
type CairoPie struct {
	Metadata           PieMetadata
	Memory             []PieMemoryEntry
	AdditionalData     map[string]json.RawMessage
	ExecutionResources ExecutionResources
	Version            PieVersion

	raw []byte
}

// Raw returns the zip archive exactly as it was loaded.
func (p *CairoPie) Raw() []byte {
	return p.raw
}

// ParseCairoPie loads a Cairo PIE zip archive.
func ParseCairoPie(raw []byte) (*CairoPie, error) {
	archive, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPie, err.Error())
	}

	entries := make(map[string]*zip.File, len(archive.File))
	for _, f := range archive.File {
		entries[path.Base(f.Name)] = f
	}

	pie := &CairoPie{raw: raw}

	if err := readPieJSON(entries, pieMetadataFile, true, &pie.Metadata); err != nil {
		return nil, err
	}
	if err := readPieJSON(entries, pieAdditionalDataFile, false, &pie.AdditionalData); err != nil {
		return nil, err
	}
	if err := readPieJSON(entries, pieExecutionResourcesFile, false, &pie.ExecutionResources); err != nil {
		return nil, err
	}
	if err := readPieJSON(entries, pieVersionFile, false, &pie.Version); err != nil {
		return nil, err
	}

	prime, ok := new(big.Int).SetString(pie.Metadata.Program.Prime, 0)
	if !ok || prime.Cmp(fp.Modulus()) != 0 {
		return nil, errors.Wrapf(ErrInvalidPrime, "pie program prime %q", pie.Metadata.Program.Prime)
	}

	memory, err := readPieEntry(entries, pieMemoryFile, true)
	if err != nil {
		return nil, err
	}
	pie.Memory, err = decodePieMemory(memory)
	if err != nil {
		return nil, err
	}

	return pie, nil
}

func readPieEntry(entries map[string]*zip.File, name string, required bool) ([]byte, error) {
	f, ok := entries[name]
	if !ok {
		if required {
			return nil, errors.Wrap(ErrMissingPieEntry, name)
		}
		return nil, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPie, "open %s: %v", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPie, "read %s: %v", name, err)
	}
	return data, nil
}

func readPieJSON(entries map[string]*zip.File, name string, required bool, v interface{}) error {
	data, err := readPieEntry(entries, name, required)
	if err != nil || data == nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(ErrInvalidPie, "decode %s: %v", name, err)
	}
	return nil
}

func decodePieMemory(data []byte) ([]PieMemoryEntry, error) {
	if len(data)%MemoryRecordSize != 0 {
		return nil, errors.Wrapf(ErrInvalidPie, "memory size %d is not a multiple of %d", len(data), MemoryRecordSize)
	}

	memory := make([]PieMemoryEntry, 0, len(data)/MemoryRecordSize)
	for offset := 0; offset < len(data); offset += MemoryRecordSize {
		rawAddress := binary.LittleEndian.Uint64(data[offset : offset+8])
		if rawAddress>>(addressBits-1) == 0 {
			return nil, errors.Wrapf(ErrInvalidPie, "memory record %d: address is not relocatable", offset/MemoryRecordSize)
		}
		address := Relocatable{
			Segment: uint16(rawAddress >> addressOffBits),
			Offset:  rawAddress & (1<<addressOffBits - 1),
		}

		value, err := decodeMaybeRelocatable(data[offset+8 : offset+MemoryRecordSize])
		if err != nil {
			return nil, errors.Wrapf(err, "memory record %d", offset/MemoryRecordSize)
		}
		memory = append(memory, PieMemoryEntry{Address: address, Value: value})
	}
	return memory, nil
}

func decodeMaybeRelocatable(le []byte) (MaybeRelocatable, error) {
	if le[len(le)-1]&0x80 == 0 {
		felt, err := FeltFromLE(le)
		if err != nil {
			return MaybeRelocatable{}, errors.Wrap(ErrInvalidPie, err.Error())
		}
		return MaybeRelocatable{Felt: felt}, nil
	}

	be := make([]byte, len(le))
	copy(be, le)
	reverse(be)
	v := new(big.Int).SetBytes(be)

	offset := new(big.Int).And(v, new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), valueOffBits), big.NewInt(1)))
	if !offset.IsUint64() {
		return MaybeRelocatable{}, errors.Wrap(ErrInvalidPie, "relocatable offset overflows 64 bits")
	}
	segment := new(big.Int).Rsh(v, valueOffBits).Uint64() & (1<<segmentBits - 1)

	return MaybeRelocatable{
		Relocatable: &Relocatable{Segment: uint16(segment), Offset: offset.Uint64()},
	}, nil
}
