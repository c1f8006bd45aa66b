package types

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type MemorySegmentAddresses struct {
	BeginAddr uint32 `json:"begin_addr"`
	StopPtr   uint32 `json:"stop_ptr"`
}

type PublicMemoryEntry struct {
	Address uint32 `json:"address"`
	// Value is the felt in 0x-prefixed hex, exactly as the VM printed it.
	Value string `json:"value"`
	Page  uint32 `json:"page"`
}

type PublicInput struct {
	Layout         Layout                            `json:"layout"`
	RcMin          uint32                            `json:"rc_min"`
	RcMax          uint32                            `json:"rc_max"`
	NSteps         uint32                            `json:"n_steps"`
	MemorySegments map[string]MemorySegmentAddresses `json:"memory_segments"`
	PublicMemory   []PublicMemoryEntry               `json:"public_memory"`
	DynamicParams  map[string]uint32                 `json:"dynamic_params"`
}

var publicInputFields = map[string]struct{}{
	"layout":          {},
	"rc_min":          {},
	"rc_max":          {},
	"n_steps":         {},
	"memory_segments": {},
	"public_memory":   {},
	"dynamic_params":  {},
}

// PublicInputFromView converts the VM's opaque public input into PublicInput.
//
// The VM does not expose the members of its public input, only a JSON
// rendering of it, so the conversion serializes the view and parses the text
// back. Upstream fields with no counterpart here are dropped and logged.
func PublicInputFromView(view json.Marshaler) (*PublicInput, error) {
	raw, err := view.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "serialize public input view")
	}
	return ParsePublicInput(raw)
}

func ParsePublicInput(raw []byte) (*PublicInput, error) {
	var publicInput PublicInput
	if err := json.Unmarshal(raw, &publicInput); err != nil {
		return nil, errors.Wrap(err, "parse public input")
	}

	if dropped := droppedPublicInputFields(raw); len(dropped) > 0 {
		log.Warn().Strs("fields", dropped).Msg("public input fields not carried over")
	}

	return &publicInput, nil
}

func droppedPublicInputFields(raw []byte) []string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	var dropped []string
	for name := range fields {
		if _, ok := publicInputFields[name]; !ok {
			dropped = append(dropped, name)
		}
	}
	sort.Strings(dropped)
	return dropped
}

// SegmentNames returns the memory segment names in lexical order.
func (p *PublicInput) SegmentNames() []string {
	names := make([]string, 0, len(p.MemorySegments))
	for name := range p.MemorySegments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
