package types

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

const publicInputFixture = "../testdata/fibonacci/air_public_input.json"

func TestPublicInputRoundTrip(t *testing.T) {
	raw, err := os.ReadFile(publicInputFixture)
	require.NoError(t, err)

	publicInput, err := ParsePublicInput(raw)
	require.NoError(t, err)
	require.Equal(t, LayoutStarknetWithKeccak, publicInput.Layout)
	require.Equal(t, uint32(32768), publicInput.NSteps)
	require.Equal(t, uint32(32762), publicInput.RcMin)
	require.Equal(t, uint32(32769), publicInput.RcMax)
	require.Len(t, publicInput.MemorySegments, 10)
	require.Equal(t, MemorySegmentAddresses{BeginAddr: 73, StopPtr: 75}, publicInput.MemorySegments["output"])
	require.Len(t, publicInput.PublicMemory, 6)
	require.Equal(t, PublicMemoryEntry{Address: 74, Value: "0x90", Page: 0}, publicInput.PublicMemory[5])

	reencoded, err := json.Marshal(publicInput)
	require.NoError(t, err)
	require.JSONEq(t, string(raw), string(reencoded))
}

func TestPublicInputFromView(t *testing.T) {
	raw, err := os.ReadFile(publicInputFixture)
	require.NoError(t, err)

	publicInput, err := PublicInputFromView(json.RawMessage(raw))
	require.NoError(t, err)

	expected, err := ReadPublicInput(publicInputFixture)
	require.NoError(t, err)
	require.Equal(t, expected, publicInput)
}

func TestPublicInputDynamicParams(t *testing.T) {
	raw := []byte(`{
		"layout": "recursive",
		"rc_min": 0,
		"rc_max": 10,
		"n_steps": 16,
		"memory_segments": {},
		"public_memory": [],
		"dynamic_params": {"cpu_component_step": 1}
	}`)
	publicInput, err := ParsePublicInput(raw)
	require.NoError(t, err)
	require.Equal(t, map[string]uint32{"cpu_component_step": 1}, publicInput.DynamicParams)

	reencoded, err := json.Marshal(publicInput)
	require.NoError(t, err)
	require.JSONEq(t, string(raw), string(reencoded))
}

func TestDroppedPublicInputFields(t *testing.T) {
	dropped := droppedPublicInputFields([]byte(`{"layout": "plain", "zeta": 1, "alpha": []}`))
	require.Equal(t, []string{"alpha", "zeta"}, dropped)

	require.Empty(t, droppedPublicInputFields([]byte(`{"layout": "plain", "n_steps": 1}`)))
}

func TestParsePublicInputErrors(t *testing.T) {
	_, err := ParsePublicInput([]byte(`{"layout": "starknet_with_poseidon"}`))
	require.ErrorIs(t, err, ErrUnknownLayout)

	_, err = ParsePublicInput([]byte(`{"n_steps": "many"}`))
	require.Error(t, err)
}

func TestSegmentNames(t *testing.T) {
	publicInput, err := ReadPublicInput(publicInputFixture)
	require.NoError(t, err)

	names := publicInput.SegmentNames()
	require.Len(t, names, 10)
	require.Equal(t, "bitwise", names[0])
	require.Equal(t, "range_check", names[9])
}
