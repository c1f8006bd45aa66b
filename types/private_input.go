package types

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// AirPrivateInput is the VM's private input: builtin name to that builtin's
// witness entries. It is passed through to the prover untouched.
type AirPrivateInput map[string]json.RawMessage

// AirPrivateInputSerializable is the file form the prover reads: the
// builtin entries plus the paths of the trace and memory files.
type AirPrivateInputSerializable struct {
	TracePath  string
	MemoryPath string
	Builtins   AirPrivateInput
}

func (p AirPrivateInput) ToSerializable(tracePath, memoryPath string) AirPrivateInputSerializable {
	return AirPrivateInputSerializable{
		TracePath:  tracePath,
		MemoryPath: memoryPath,
		Builtins:   p,
	}
}

func (s AirPrivateInputSerializable) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(s.Builtins)+2)
	for name, entries := range s.Builtins {
		out[name] = entries
	}
	out["trace_path"] = s.TracePath
	out["memory_path"] = s.MemoryPath
	return json.Marshal(out)
}

func (s *AirPrivateInputSerializable) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := unmarshalOptionalString(raw, "trace_path", &s.TracePath); err != nil {
		return err
	}
	if err := unmarshalOptionalString(raw, "memory_path", &s.MemoryPath); err != nil {
		return err
	}
	delete(raw, "trace_path")
	delete(raw, "memory_path")
	s.Builtins = raw
	return nil
}

func unmarshalOptionalString(raw map[string]json.RawMessage, key string, dst *string) error {
	value, ok := raw[key]
	if !ok {
		return nil
	}
	return errors.Wrap(json.Unmarshal(value, dst), key)
}
